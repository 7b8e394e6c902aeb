// Package gzipcodec provides a gzip codec for stores whose readers expect
// plain gzip, such as objects served with Content-Encoding: gzip.
package gzipcodec

import (
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/discochess/chessboard/internal/codec"
)

var _ codec.Codec = (*Codec)(nil)

// Codec compresses with gzip at a fixed level.
type Codec struct {
	level int
}

// New returns a codec at gzip.BestSpeed.
func New() *Codec {
	return &Codec{level: gzip.BestSpeed}
}

// NewLevel returns a codec at level, one of the gzip level constants.
func NewLevel(level int) *Codec {
	return &Codec{level: level}
}

func (c *Codec) Reader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func (c *Codec) Writer(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriterLevel(w, c.level)
}

func (c *Codec) Extension() string { return "gz" }
