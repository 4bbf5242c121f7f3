package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// FilePart is one raw file attached to a multipart request.
type FilePart struct {
	FileName string
	Reader   io.Reader
}

// postMultipart sends fields plus raw file parts (all under the "files"
// field, matching the backend contract) and decodes the response into out.
func (c *Client) postMultipart(ctx context.Context, path string, fields map[string]string, files []FilePart, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("multipart field %s: %w", k, err)
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.FileName)
		if err != nil {
			return fmt.Errorf("multipart file %s: %w", f.FileName, err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return fmt.Errorf("multipart file %s: %w", f.FileName, err)
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, out)
}
