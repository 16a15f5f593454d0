// Package analysis computes descriptive conversation statistics from a
// speaker-labeled transcript: per-speaker totals, windowed speaking rate,
// interruption/backchannel detection and turn-taking patterns.
package analysis

import (
	"github.com/podscope/podscope/transcript"
)

// SpeakerStats aggregates one speaker's raw segment totals.
type SpeakerStats struct {
	TotalSpeakingTimeSec float64 `json:"total_speaking_time_sec"`
	TotalSpeakingTimeMin float64 `json:"total_speaking_time_min"`
	TotalWords           int     `json:"total_words"`
	NumSegments          int     `json:"num_segments"`
	WordsPerMinute       float64 `json:"words_per_minute"`
}

// BasicStats is the per-speaker summary document.
type BasicStats struct {
	AudioFile string                   `json:"audio_file,omitempty"`
	Speakers  map[string]*SpeakerStats `json:"speakers"`
}

// Basic sums speaking time, word count and segment count per speaker over
// the raw (unmerged) segments and derives words per minute. Zero speaking
// time yields a words-per-minute of 0 rather than a division by zero.
func Basic(m *transcript.Merged) *BasicStats {
	out := &BasicStats{AudioFile: m.AudioFile, Speakers: map[string]*SpeakerStats{}}
	for _, seg := range m.Segments {
		st := out.Speakers[seg.Speaker]
		if st == nil {
			st = &SpeakerStats{}
			out.Speakers[seg.Speaker] = st
		}
		st.TotalSpeakingTimeSec += seg.Duration()
		st.TotalWords += len(seg.Words)
		st.NumSegments++
	}
	for _, st := range out.Speakers {
		st.TotalSpeakingTimeMin = st.TotalSpeakingTimeSec / 60.0
		if st.TotalSpeakingTimeMin > 0 {
			st.WordsPerMinute = float64(st.TotalWords) / st.TotalSpeakingTimeMin
		}
	}
	return out
}
