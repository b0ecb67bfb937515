// Package fs abstracts the file operations LocalStore performs when writing
// blobs, so tests can inject failures.
//
//   - [LocalFS] is the production implementation backed by package os.
//   - [FaultyFS] wraps another FileSystem and fails writes, syncs, closes or
//     renames of files whose name contains a configured pattern.
//
// Reads go through internal/mmap and are not covered here.
package fs
