// Package zstdcodec provides a zstd compression codec.
//
// Snapshots are small, so whole-buffer calls go through one shared encoder
// and decoder instead of a stream per call.
package zstdcodec

import (
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/discochess/chessboard/internal/codec"
)

// Compile-time check that Codec implements codec.BlockCodec.
var _ codec.BlockCodec = (*Codec)(nil)

// Codec implements zstd compression. It is safe for concurrent use.
type Codec struct {
	level zstd.EncoderLevel

	once    sync.Once
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	initErr error
}

// New returns a codec at zstd.SpeedFastest; on snapshot-sized input the
// higher levels gain next to nothing.
func New() *Codec {
	return NewLevel(zstd.SpeedFastest)
}

// NewLevel returns a codec at the given encoder level.
func NewLevel(level zstd.EncoderLevel) *Codec {
	return &Codec{level: level}
}

func (c *Codec) init() error {
	c.once.Do(func() {
		c.encoder, c.initErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(c.level))
		if c.initErr != nil {
			return
		}
		c.decoder, c.initErr = zstd.NewReader(nil)
	})
	return c.initErr
}

// EncodeAll compresses src in one call.
func (c *Codec) EncodeAll(src []byte) []byte {
	if err := c.init(); err != nil {
		// Only an invalid level fails, and NewLevel takes a typed level.
		panic(fmt.Sprintf("zstdcodec: %v", err))
	}
	return c.encoder.EncodeAll(src, make([]byte, 0, len(src)))
}

// DecodeAll decompresses src in one call.
func (c *Codec) DecodeAll(src []byte) ([]byte, error) {
	if err := c.init(); err != nil {
		return nil, err
	}
	return c.decoder.DecodeAll(src, nil)
}

// Reader wraps r to decompress a zstd stream.
func (c *Codec) Reader(r io.Reader) (io.ReadCloser, error) {
	d, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return d.IOReadCloser(), nil
}

// Writer wraps w to compress a zstd stream.
func (c *Codec) Writer(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w, zstd.WithEncoderLevel(c.level), zstd.WithEncoderConcurrency(1))
}

// Extension returns "zst".
func (c *Codec) Extension() string {
	return "zst"
}
