package routes

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func fakePNG(size int) []byte {
	b := make([]byte, size)
	copy(b, pngHeader)
	return b
}

func uploadRequest(t *testing.T, field, filename, contentType string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func storedFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestUploadImage(t *testing.T) {
	s := newTestServer(t)
	content := fakePNG(4096)

	resp, env := s.send(t, uploadRequest(t, "image", "photo.png", "image/png", content))
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	assert.True(t, env.Success)
	assert.Equal(t, "File uploaded successfully", env.Message)

	result := decodeData[uploadResult](t, env)
	assert.Regexp(t, regexp.MustCompile(`^image-\d+-[0-9a-f-]{36}\.png$`), result.Filename)
	assert.Equal(t, "/uploads/"+result.Filename, result.URL)
	assert.Equal(t, "photo.png", result.OriginalName)
	assert.EqualValues(t, len(content), result.Size)
	assert.Equal(t, []string{result.Filename}, storedFiles(t, s.cfg.UploadDir))

	e := s.nextEvent(t)
	assert.Equal(t, models.ImageUploaded, e.Type)
	assert.Equal(t, result.Filename, e.Name)

	served, err := s.app.Test(httptest.NewRequest(http.MethodGet, result.URL, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, served.StatusCode)
	raw, err := io.ReadAll(served.Body)
	require.NoError(t, err)
	assert.Equal(t, content, raw)
}

func TestUploadRejected(t *testing.T) {
	testCases := []struct {
		name        string
		field       string
		filename    string
		contentType string
		content     []byte
		kind        string
		message     string
	}{
		{
			name:        "NotAnImage",
			field:       "image",
			filename:    "notes.txt",
			contentType: "text/plain",
			content:     []byte("just some text"),
			kind:        KindInvalidFileType,
		},
		{
			name:        "DisguisedAsImage",
			field:       "image",
			filename:    "notes.png",
			contentType: "image/png",
			content:     []byte("just some text"),
			kind:        KindInvalidFileType,
		},
		{
			name:        "TooLarge",
			field:       "image",
			filename:    "huge.png",
			contentType: "image/png",
			content:     fakePNG(3 << 20),
			kind:        KindPayloadTooLarge,
			message:     "File size must not exceed 2MB",
		},
		{
			name:        "WrongField",
			field:       "file",
			filename:    "photo.png",
			contentType: "image/png",
			content:     fakePNG(64),
			kind:        KindValidation,
			message:     "No file uploaded",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t)

			resp, env := s.send(t, uploadRequest(t, tc.field, tc.filename, tc.contentType, tc.content))
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.False(t, env.Success)
			assert.Equal(t, tc.kind, env.Error)
			if tc.message != "" {
				assert.Equal(t, tc.message, env.Message)
			}
			assert.Empty(t, storedFiles(t, s.cfg.UploadDir))
		})
	}
}

func TestImageFilename(t *testing.T) {
	now := testTime()
	a := imageFilename("image", "cat.JPG", now)
	b := imageFilename("image", "cat.JPG", now)

	assert.NotEqual(t, a, b)
	assert.Equal(t, ".JPG", filepath.Ext(a))
	assert.Regexp(t, fmt.Sprintf(`^image-%d-`, now.UnixMilli()), a)
	assert.Regexp(t, `^image-\d+-[0-9a-f-]{36}$`, imageFilename("image", "noext", now))
}
