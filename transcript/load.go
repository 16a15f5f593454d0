package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadTranscript reads an ASR transcript JSON file.
func LoadTranscript(path string) (*Transcript, error) {
	var t Transcript
	if err := readJSON(path, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadDiarization reads a diarization JSON file.
func LoadDiarization(path string) (*Diarization, error) {
	var d Diarization
	if err := readJSON(path, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadMerged reads a speaker-labeled transcript JSON file.
func LoadMerged(path string) (*Merged, error) {
	var m Merged
	if err := readJSON(path, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// WriteJSON writes v as indented UTF-8 JSON, replacing the whole file. The
// parent directory is created if needed.
func WriteJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
