package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/podscope/podscope/transcript"
)

// ASR uploads the audio to the transcription service and returns the
// word-level transcript. The service is expected to run Whisper (or a
// compatible model) with word timestamps enabled.
func (h *HTTP) ASR(ctx context.Context, url, audioPath string) (*transcript.Transcript, error) {
	body, contentType, err := audioUpload(audioPath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/transcribe", body)
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
		return nil, httpError("asr", resp)
	}

	var out transcript.Transcript
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("asr decode: %w", err)
	}
	if out.AudioFile == "" {
		out.AudioFile = audioPath
	}
	return &out, nil
}
