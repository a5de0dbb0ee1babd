package main

import (
	"bytes"
	"errors"
	"html/template"
	"io"
	"net/http"
	"time"

	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"

	"github.com/pivolan/frame_preview/datatable"
	"github.com/pivolan/frame_preview/dtype"
)

const maxUploadSize = 32 << 20

var uploadForm = template.Must(template.New("upload").Parse(`<!DOCTYPE html>
<html>
<head><title>frame preview</title></head>
<body>
<form action="/render" method="post" enctype="multipart/form-data">
  <input type="file" name="file" accept=".html,.htm,.csv,.tsv,.gz,.lz4,.zip">
  <label><input type="checkbox" name="finalize" value="1"{{if .Finalize}} checked{{end}}> static images</label>
  <button type="submit">Preview</button>
</form>
</body>
</html>
`))

type server struct {
	opts  datatable.Options
	types map[string]string
}

func newServer(opts datatable.Options, types map[string]string) *server {
	return &server{opts: opts, types: types}
}

func (s *server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleForm)
	mux.HandleFunc("/render", s.handleRender)
	return mux
}

func (s *server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *server) handleForm(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	err := uploadForm.Execute(w, s.opts)
	if err != nil {
		http.Error(w, "Error rendering upload form", http.StatusInternalServerError)
	}
}

// handleRender previews the uploaded table and answers with the enhanced
// HTML.
func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requestID := uuid.NewV4().String()
	logger := log.WithField("request", requestID)
	w.Header().Set("X-Request-Id", requestID)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error uploading file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	input, err := unpackArchive(header.Filename, file)
	if err != nil {
		logger.WithError(err).Warn("cannot unpack upload")
		http.Error(w, "Error unpacking file", http.StatusBadRequest)
		return
	}
	defer input.Close()

	opts := s.opts
	opts.Logger = logger
	if r.FormValue("finalize") != "" {
		opts.Finalize = true
	}

	var src io.Reader = input
	if isCSV(header.Filename) {
		if src, err = csvToTable(input); err != nil {
			logger.WithError(err).Warn("cannot read csv upload")
			http.Error(w, "Error reading csv", http.StatusBadRequest)
			return
		}
	}

	p, err := enhance(src, opts, s.types)
	if err != nil {
		logger.WithError(err).WithField("file", header.Filename).Warn("cannot preview table")
		status := http.StatusInternalServerError
		if errors.Is(err, datatable.ErrNoTable) || errors.Is(err, datatable.ErrColumnOutOfRange) ||
			errors.Is(err, dtype.ErrUnknownTypeTag) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return
	}

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		logger.WithError(err).Error("cannot render preview")
		http.Error(w, "Error rendering preview", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
	logger.WithFields(log.Fields{"file": header.Filename, "rows": p.Table.NumRows()}).Info("table previewed")
}
