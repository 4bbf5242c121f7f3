package handlers

import (
	"io"
	"net/http"

	"github.com/voguesoftware/projectdash/internal/api"
)

// formFiles opens every uploaded file under the given field for
// forwarding to the backend. The returned closer releases them once the
// gateway call is done.
func formFiles(r *http.Request, field string) ([]api.FilePart, func(), error) {
	noop := func() {}
	if r.MultipartForm == nil {
		return nil, noop, nil
	}
	headers := r.MultipartForm.File[field]
	parts := make([]api.FilePart, 0, len(headers))
	closers := make([]io.Closer, 0, len(headers))
	closeAll := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, noop, err
		}
		closers = append(closers, f)
		parts = append(parts, api.FilePart{FileName: fh.Filename, Reader: f})
	}
	return parts, closeAll, nil
}
