package main

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
)

var errEmptyArchive = errors.New("archive holds no files")

// openInput opens a table file, "-" meaning stdin. Compressed inputs are
// unpacked on the fly.
func openInput(filePath string) (io.ReadCloser, error) {
	if filePath == "" || filePath == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	r, err := unpackArchive(filePath, file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

// unpackArchive picks the decoder by extension. The returned reader closes
// src as well.
func unpackArchive(name string, src io.ReadCloser) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zip":
		return unpackZipArchive(src)
	case ".gz":
		return unpackGzipArchive(src)
	case ".lz4":
		return readCloser{Reader: lz4.NewReader(src), closers: []io.Closer{src}}, nil
	}
	return src, nil
}

// unpackZipArchive returns the largest file of the archive.
func unpackZipArchive(src io.ReadCloser) (io.ReadCloser, error) {
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("error opening zip: %w", err)
	}

	var largestFile *zip.File
	var largestSize uint64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if largestFile == nil || f.UncompressedSize64 > largestSize {
			largestFile = f
			largestSize = f.UncompressedSize64
		}
	}
	if largestFile == nil {
		return nil, errEmptyArchive
	}
	return largestFile.Open()
}

func unpackGzipArchive(src io.ReadCloser) (io.ReadCloser, error) {
	gr, err := gzip.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("error opening gzip: %w", err)
	}
	return readCloser{Reader: gr, closers: []io.Closer{gr, src}}, nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r readCloser) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
