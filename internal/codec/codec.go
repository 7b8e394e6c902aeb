// Package codec provides compression and decompression for persisted
// snapshots.
package codec

import (
	"bytes"
	"fmt"
	"io"
)

// Codec provides compression and decompression functionality.
type Codec interface {
	// Reader wraps r to decompress data read from it.
	Reader(r io.Reader) (io.ReadCloser, error)
	// Writer wraps w to compress data written to it.
	Writer(w io.Writer) (io.WriteCloser, error)
	// Extension returns the file extension without dot (e.g., "zst", "gz").
	// Returns empty string for no compression.
	Extension() string
}

// BlockCodec is implemented by codecs that can compress a whole buffer
// at once. Compress and Decompress use it when available.
type BlockCodec interface {
	Codec
	EncodeAll(src []byte) []byte
	DecodeAll(src []byte) ([]byte, error)
}

// Compress encodes data with c.
func Compress(c Codec, data []byte) ([]byte, error) {
	if bc, ok := c.(BlockCodec); ok {
		return bc.EncodeAll(data), nil
	}

	var buf bytes.Buffer
	w, err := c.Writer(&buf)
	if err != nil {
		return nil, fmt.Errorf("creating compressor: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("compressing: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("flushing compressor: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress reads everything from r through c.
func Decompress(c Codec, r io.Reader) ([]byte, error) {
	if bc, ok := c.(BlockCodec); ok {
		src, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading compressed data: %w", err)
		}
		data, err := bc.DecodeAll(src)
		if err != nil {
			return nil, fmt.Errorf("decompressing: %w", err)
		}
		return data, nil
	}

	reader, err := c.Reader(r)
	if err != nil {
		return nil, fmt.Errorf("creating decompressor: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("decompressing: %w", err)
	}
	return data, nil
}
