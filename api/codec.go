package api

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Compression wraps an exported file.
type Compression uint8

const (
	CompNone Compression = iota
	CompZlib
	CompZstd
)

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompZlib:
		return "zlib"
	case CompZstd:
		return "zstd"
	}
	return fmt.Sprintf("Compression(%d)", uint8(c))
}

// CompressionForPath picks the codec from the file extension.
func CompressionForPath(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CompZstd
	case ".zz", ".zlib":
		return CompZlib
	}
	return CompNone
}

// Compress encodes data with comp. CompNone returns data unchanged.
func Compress(data []byte, comp Compression) ([]byte, error) {
	switch comp {
	case CompNone:
		return data, nil
	case CompZlib:
		var buf bytes.Buffer
		zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if err != nil {
			return nil, err
		}
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	}
	return nil, fmt.Errorf("unsupported compression: %v", comp)
}

// Decompress reverses Compress.
func Decompress(data []byte, comp Compression) ([]byte, error) {
	switch comp {
	case CompNone:
		return data, nil
	case CompZlib:
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case CompZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	}
	return nil, fmt.Errorf("unsupported compression: %v", comp)
}
