package codec

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Nodes map[string]string `json:"Nodes"`
}

func TestCodecs_Interchangeable(t *testing.T) {
	v := payload{Nodes: map[string]string{"1": "-12.0,-77.0", "2": "-12.1,-77.1"}}

	for _, name := range []string{"json", "go-json"} {
		t.Run(name, func(t *testing.T) {
			c, ok := ByName(name)
			require.True(t, ok)
			assert.Equal(t, name, c.Name())

			data := MustMarshal(c, v)
			for _, other := range []Codec{JSON{}, GoJSON{}} {
				var got payload
				require.NoError(t, other.Unmarshal(data, &got))
				assert.Equal(t, v, got)
			}
		})
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
	assert.Equal(t, "go-json", Default.Name())
}

func TestCompression_RoundTrip(t *testing.T) {
	text := bytes.Repeat([]byte(`{"Edges":{"1,2":"120.5,50"}}`), 200)
	noise := make([]byte, 4096)
	_, _ = rand.Read(noise)

	for _, c := range []Compression{CompressionLZ4, CompressionZSTD} {
		for name, data := range map[string][]byte{"text": text, "noise": noise, "empty": {}} {
			t.Run(c.String()+"/"+name, func(t *testing.T) {
				framed, err := Compress(data, c)
				require.NoError(t, err)
				assert.True(t, IsCompressed(framed))

				back, err := Decompress(framed)
				require.NoError(t, err)
				assert.Equal(t, len(data), len(back))
				assert.True(t, bytes.Equal(data, back))
			})
		}
	}

	framed, err := Compress(text, CompressionZSTD)
	require.NoError(t, err)
	assert.Less(t, len(framed), len(text)/4)
}

func TestCompression_None(t *testing.T) {
	data := []byte(`{"a":1}`)

	out, err := Compress(data, CompressionNone)
	require.NoError(t, err)
	assert.Equal(t, data, out)

	plain, err := Decompress(data)
	require.NoError(t, err)
	assert.Equal(t, data, plain)
	assert.False(t, IsCompressed(data))
}

func TestDecompress_Corrupt(t *testing.T) {
	framed, err := Compress(bytes.Repeat([]byte("abc"), 100), CompressionLZ4)
	require.NoError(t, err)

	_, err = Decompress(framed[:len(framed)-3])
	assert.ErrorIs(t, err, ErrCorruptFrame)

	framed[3] = 9
	_, err = Decompress(framed)
	assert.ErrorIs(t, err, ErrCorruptFrame)
}

func TestDecompress_DeclaredSize(t *testing.T) {
	frame := func(c Compression, size uint32, body []byte) []byte {
		out := make([]byte, frameHeaderSize+len(body))
		copy(out, frameMagic)
		out[3] = byte(c)
		binary.LittleEndian.PutUint32(out[4:], size)
		binary.LittleEndian.PutUint32(out[8:], uint32(len(body)))
		copy(out[frameHeaderSize:], body)
		return out
	}

	zframed, err := Compress(bytes.Repeat([]byte("lima"), 256), CompressionZSTD)
	require.NoError(t, err)
	zbody := zframed[frameHeaderSize:]

	tests := []struct {
		name string
		data []byte
	}{
		{"LZ4Huge", frame(CompressionLZ4, math.MaxUint32, []byte{0x40, 'a', 'b', 'c', 'd'})},
		{"LZ4BeyondRatio", frame(CompressionLZ4, 5*lz4MaxRatio+1, []byte{0x40, 'a', 'b', 'c', 'd'})},
		{"ZSTDHuge", frame(CompressionZSTD, maxFrameSize+1, zbody)},
		{"ZSTDWrongSize", frame(CompressionZSTD, maxFrameSize, zbody)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decompress(tt.data)
			assert.ErrorIs(t, err, ErrCorruptFrame)
		})
	}
}

func TestParseCompression(t *testing.T) {
	for in, want := range map[string]Compression{"": CompressionNone, "none": CompressionNone, "LZ4": CompressionLZ4, "zstd": CompressionZSTD} {
		got, err := ParseCompression(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseCompression("brotli")
	assert.Error(t, err)
}
