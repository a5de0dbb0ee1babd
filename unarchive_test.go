package main

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = "<table><tr><th>0</th><td>1</td></tr></table>"

func writeFile(t *testing.T, name string, write func(w io.Writer)) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	var buf bytes.Buffer
	write(&buf)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestOpenInput(t *testing.T) {
	tests := []struct {
		name  string
		write func(w io.Writer)
	}{
		{"table.html", func(w io.Writer) {
			io.WriteString(w, sampleHTML)
		}},
		{"table.html.gz", func(w io.Writer) {
			gw := gzip.NewWriter(w)
			io.WriteString(gw, sampleHTML)
			gw.Close()
		}},
		{"table.html.lz4", func(w io.Writer) {
			lw := lz4.NewWriter(w)
			io.WriteString(lw, sampleHTML)
			lw.Close()
		}},
		{"table.ZIP", func(w io.Writer) {
			zw := zip.NewWriter(w)
			small, _ := zw.Create("readme.txt")
			io.WriteString(small, "hi")
			big, _ := zw.Create("data/table.html")
			io.WriteString(big, sampleHTML)
			zw.Close()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := openInput(writeFile(t, tt.name, tt.write))
			require.NoError(t, err)
			defer r.Close()

			b, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, sampleHTML, string(b))
		})
	}
}

func TestOpenInputErrors(t *testing.T) {
	_, err := openInput(filepath.Join(t.TempDir(), "missing.html"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := writeFile(t, "empty.zip", func(w io.Writer) {
		zip.NewWriter(w).Close()
	})
	_, err = openInput(empty)
	assert.ErrorIs(t, err, errEmptyArchive)

	broken := writeFile(t, "broken.gz", func(w io.Writer) {
		io.WriteString(w, "not gzip")
	})
	_, err = openInput(broken)
	assert.Error(t, err)
}
