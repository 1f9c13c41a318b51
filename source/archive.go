package source

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pierrec/lz4"
)

// openReader opens path for reading, transparently decompressing
// .gz and .lz4 files and extracting the largest entry of a .zip. The
// original file is never modified.
func openReader(path string) (io.ReadCloser, error) {
	switch filepath.Ext(path) {
	case ".zip":
		return openZip(path)
	case ".gz":
		return openGzip(path)
	case ".lz4":
		return openLZ4(path)
	default:
		return os.Open(path)
	}
}

type wrappedReader struct {
	io.Reader
	closers []io.Closer
}

func (w *wrappedReader) Close() error {
	var first error
	for _, c := range w.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func openGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	gr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &wrappedReader{Reader: gr, closers: []io.Closer{gr, f}}, nil
}

func openLZ4(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &wrappedReader{Reader: lz4.NewReader(f), closers: []io.Closer{f}}, nil
}

// openZip streams the largest regular file in the archive, which for
// data drops is the payload next to readmes and manifests.
func openZip(path string) (io.ReadCloser, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	var largest *zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if largest == nil || f.UncompressedSize64 > largest.UncompressedSize64 {
			largest = f
		}
	}
	if largest == nil {
		r.Close()
		return nil, fmt.Errorf("zip archive %s contains no files", path)
	}
	rc, err := largest.Open()
	if err != nil {
		r.Close()
		return nil, err
	}
	return &wrappedReader{Reader: rc, closers: []io.Closer{rc, r}}, nil
}
