package frame

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

// maxDecodedSize bounds the memory a hostile carrier can make a decoder
// allocate; the length header itself is limited to 4 GiB.
const maxDecodedSize = 1 << 30

const (
	// magic, frame header descriptor, window descriptor, the largest frame
	// content size field and the content checksum
	zstdFrameOverhead = 4 + 1 + 1 + 8 + 4
	zstdBlockHeader   = 3
	zstdMaxBlockSize  = 128 << 10
)

// zstdBound is the largest frame compressZstd can return for n bytes.
// Incompressible input is stored in raw blocks.
func zstdBound(n int) int {
	blocks := n/zstdMaxBlockSize + 1
	return n + zstdFrameOverhead + blocks*zstdBlockHeader
}

func mustNewZstdEncoder() *zstd.Encoder {
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		panic(err)
	}
	return enc
}

func mustNewZstdDecoder() *zstd.Decoder {
	dec, err := zstd.NewReader(
		nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxDecodedSize),
	)
	if err != nil {
		panic(err)
	}
	return dec
}

var zstdEncPool = sync.Pool{
	New: func() any {
		return mustNewZstdEncoder()
	},
}

var zstdDecPool = sync.Pool{
	New: func() any {
		return mustNewZstdDecoder()
	},
}

func compressZstd(data []byte) []byte {
	enc := zstdEncPool.Get().(*zstd.Encoder)
	out := enc.EncodeAll(data, nil)
	zstdEncPool.Put(enc)
	return out
}

func decompressZstd(data []byte) ([]byte, error) {
	dec := zstdDecPool.Get().(*zstd.Decoder)
	out, err := dec.DecodeAll(data, nil)
	zstdDecPool.Put(dec)
	return out, err
}
