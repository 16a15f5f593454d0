// Package clients talks to the external ASR and diarization HTTP services.
// Both accept a multipart audio upload and answer with the JSON documents
// the rest of the pipeline consumes from disk.
package clients

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

type HTTP struct{ c *http.Client }

// NewHTTP returns a client with a timeout sized for model inference on
// podcast-length audio.
func NewHTTP() *HTTP { return &HTTP{c: &http.Client{Timeout: 10 * time.Minute}} }

// audioUpload builds a multipart body containing the audio file under the
// "file" form field.
func audioUpload(audioPath string) (*bytes.Buffer, string, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	fd, err := os.Open(audioPath)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", audioPath, err)
	}
	defer fd.Close()

	if _, err = io.Copy(fw, fd); err != nil {
		return nil, "", fmt.Errorf("copy audio: %w", err)
	}
	if err = w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &b, w.FormDataContentType(), nil
}

func httpError(stage string, resp *http.Response) error {
	const maxErr = 4096
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErr))
	return fmt.Errorf("%s %s: %s", stage, resp.Status, string(body))
}
