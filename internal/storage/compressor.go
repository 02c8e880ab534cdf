package storage

import (
	"fmt"
	"snappy/internal/storage/interfaces"

	"github.com/klauspost/compress/zstd"
)

// Upper bound for a decompressed run artifact.
const maxArtifactBytes = 64 << 20

// zstdCompressor compresses run artifacts for size rather than speed.
type zstdCompressor struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxArtifactBytes),
	)
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &zstdCompressor{encoder: encoder, decoder: decoder}, nil
}

func (z *zstdCompressor) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, nil), nil
}

func (z *zstdCompressor) Decompress(val []byte) ([]byte, error) {
	out, err := z.decoder.DecodeAll(val, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress artifact: %w", err)
	}
	return out, nil
}

func (z *zstdCompressor) Close() {
	_ = z.encoder.Close()
	z.decoder.Close()
}
