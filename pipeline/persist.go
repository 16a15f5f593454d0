package pipeline

import (
	"os"
	"path/filepath"
	"time"
)

// Canonical output file names inside a session directory.
const (
	FileTranscript    = "transcript_words.json"
	FileDiarization   = "diarization_segments.json"
	FileMerged        = "transcript_with_speakers.json"
	FileStats         = "basic_speaker_stats.json"
	FileTimeseries    = "speaking_rate_timeseries.json"
	FileInterruptions = "interruptions.json"
	FileTurns         = "turn_taking_stats.json"
)

func sessionDir(outputsRoot string) (string, string, error) {
	ts := time.Now().Format("20060102-150405")
	sid := "session_" + ts
	dir := filepath.Join(outputsRoot, sid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	return sid, dir, nil
}

func outputPath(dir, name string) string {
	return filepath.Join(dir, name)
}
