package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/podscope/podscope/transcript"
)

// Diarize uploads the audio to the diarization service and returns the
// speaker-labeled intervals.
func (h *HTTP) Diarize(ctx context.Context, url, audioPath string) (*transcript.Diarization, error) {
	body, contentType, err := audioUpload(audioPath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/diarize", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpError("diarize", resp)
	}

	var out transcript.Diarization
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("diarize decode: %w", err)
	}
	if out.AudioFile == "" {
		out.AudioFile = audioPath
	}
	return &out, nil
}
