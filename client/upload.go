package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type UploadResult struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname"`
	Size         int64  `json:"size"`
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// UploadImage sends r as the "image" part of a multipart form. contentType
// is declared on the part; the server rejects anything that is not image/*.
func (c *Client) UploadImage(ctx context.Context, name, contentType string, r io.Reader) (*UploadResult, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, quoteEscaper.Replace(name)))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, &Error{Message: err.Error(), Err: err}
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, &Error{Message: fmt.Sprintf("read image: %v", err), Err: err}
	}
	if err := w.Close(); err != nil {
		return nil, &Error{Message: err.Error(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload/image", &body)
	if err != nil {
		return nil, &Error{Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var result UploadResult
	if _, err := c.send(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UploadFile uploads the file at path, declaring the type its content
// sniffs as.
func (c *Client) UploadFile(ctx context.Context, path string) (*UploadResult, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("detect file type: %v", err), Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Message: err.Error(), Err: err}
	}
	defer f.Close()
	return c.UploadImage(ctx, filepath.Base(path), mtype.String(), f)
}
