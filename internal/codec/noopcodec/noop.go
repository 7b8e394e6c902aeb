// Package noopcodec stores snapshots as plain JSON, which keeps them
// readable with ordinary tools.
package noopcodec

import (
	"bytes"
	"io"

	"github.com/discochess/chessboard/internal/codec"
)

var _ codec.BlockCodec = Codec{}

// Codec passes data through unchanged.
type Codec struct{}

// New returns a pass-through codec.
func New() Codec {
	return Codec{}
}

// EncodeAll returns a copy of src.
func (Codec) EncodeAll(src []byte) []byte { return bytes.Clone(src) }

// DecodeAll returns a copy of src.
func (Codec) DecodeAll(src []byte) ([]byte, error) { return bytes.Clone(src), nil }

// Reader returns r. Closing it leaves r open.
func (Codec) Reader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

// Writer returns w. Closing it leaves w open.
func (Codec) Writer(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

// Extension is empty: snapshots keep the plain .json name.
func (Codec) Extension() string { return "" }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
