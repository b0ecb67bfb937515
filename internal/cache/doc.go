// Package cache provides a generic LRU keyed cache whose entries are charged
// against a resource.Controller memory budget.
package cache
