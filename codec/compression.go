package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the algorithm of a compressed frame.
type Compression uint8

const (
	// CompressionNone leaves data untouched.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses zstd (better ratio).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// ParseCompression maps "none", "" , "lz4" or "zstd" to a Compression.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return CompressionNone, fmt.Errorf("codec: unknown compression %q", name)
	}
}

// ErrCorruptFrame is returned when a compressed frame cannot be decoded.
var ErrCorruptFrame = errors.New("codec: corrupt compressed frame")

// Frame layout:
//
//	[magic 3][type 1][uncompressed u32][compressed u32][data...]
//
// compressed == 0 means data is stored raw.
var frameMagic = []byte{'G', 'M', 'Z'}

const frameHeaderSize = 12

const (
	// maxFrameSize bounds the uncompressed size a frame may declare.
	maxFrameSize = 1 << 30

	// lz4MaxRatio is the largest expansion an LZ4 block can encode.
	lz4MaxRatio = 255

	// zstdPrealloc caps the output buffer reserved up front, as a multiple of
	// the compressed size; the decoder grows it when the data needs more.
	zstdPrealloc = 16
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxFrameSize))
	return dec
}

// IsCompressed reports whether data starts with a compression frame.
func IsCompressed(data []byte) bool {
	return len(data) >= frameHeaderSize && bytes.Equal(data[:len(frameMagic)], frameMagic)
}

// Compress wraps data in a frame compressed with c. CompressionNone returns
// data unchanged. Incompressible data is framed raw.
func Compress(data []byte, c Compression) ([]byte, error) {
	if c == CompressionNone {
		return data, nil
	}

	var compressed []byte
	switch c {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n]
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("codec: unsupported compression %v", c)
	}

	raw := len(compressed) == 0 || len(compressed) >= len(data)
	payload := compressed
	if raw {
		payload = data
	}

	out := make([]byte, frameHeaderSize+len(payload))
	copy(out, frameMagic)
	out[3] = byte(c)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(data)))
	if !raw {
		binary.LittleEndian.PutUint32(out[8:], uint32(len(compressed)))
	}
	copy(out[frameHeaderSize:], payload)
	return out, nil
}

// Decompress unwraps a frame produced by Compress. Data without a frame is
// returned unchanged.
func Decompress(data []byte) ([]byte, error) {
	if !IsCompressed(data) {
		return data, nil
	}

	c := Compression(data[3])
	size := binary.LittleEndian.Uint32(data[4:])
	compressedSize := binary.LittleEndian.Uint32(data[8:])
	body := data[frameHeaderSize:]

	if size > maxFrameSize {
		return nil, fmt.Errorf("%w: declared size %d exceeds %d", ErrCorruptFrame, size, maxFrameSize)
	}
	if compressedSize == 0 {
		if uint32(len(body)) != size {
			return nil, ErrCorruptFrame
		}
		return body, nil
	}
	if uint32(len(body)) != compressedSize {
		return nil, ErrCorruptFrame
	}

	switch c {
	case CompressionLZ4:
		if uint64(size) > uint64(len(body))*lz4MaxRatio {
			return nil, fmt.Errorf("%w: declared size %d for %d compressed bytes", ErrCorruptFrame, size, len(body))
		}
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptFrame, err)
		}
		if uint32(n) != size {
			return nil, ErrCorruptFrame
		}
		return out, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(body, make([]byte, 0, min(int(size), len(body)*zstdPrealloc)))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptFrame, err)
		}
		if uint32(len(out)) != size {
			return nil, ErrCorruptFrame
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrCorruptFrame, c)
	}
}
