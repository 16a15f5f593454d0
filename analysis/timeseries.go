package analysis

import (
	"sort"

	"github.com/podscope/podscope/transcript"
)

// WindowEntry is one (window, speaker) sample of the speaking-rate series.
type WindowEntry struct {
	WindowIndex    int     `json:"window_index"`
	WindowStart    float64 `json:"window_start"`
	WindowEnd      float64 `json:"window_end"`
	Speaker        string  `json:"speaker"`
	WordCount      int     `json:"word_count"`
	WordsPerMinute float64 `json:"words_per_minute"`
}

// RateSeries is the windowed speaking-rate document.
type RateSeries struct {
	AudioFile     string        `json:"audio_file,omitempty"`
	WindowSizeSec float64       `json:"window_size_sec"`
	StepSizeSec   float64       `json:"step_size_sec"`
	Timeseries    []WindowEntry `json:"timeseries"`
}

// SpeakingRate slices the conversation span into windows of windowSize
// seconds advancing by step seconds (step <= 0 means non-overlapping,
// step = windowSize) and counts each speaker's words per window. A word
// belongs to the window whose half-open interval [start, end) contains its
// start time. The final window is truncated to the conversation end.
func SpeakingRate(m *transcript.Merged, windowSize, step float64) *RateSeries {
	if step <= 0 {
		step = windowSize
	}
	out := &RateSeries{
		AudioFile:     m.AudioFile,
		WindowSizeSec: windowSize,
		StepSizeSec:   step,
		Timeseries:    []WindowEntry{},
	}
	if len(m.Segments) == 0 || windowSize <= 0 {
		return out
	}

	start := m.Segments[0].Start
	end := m.Segments[0].End
	for _, seg := range m.Segments {
		if seg.Start < start {
			start = seg.Start
		}
		if seg.End > end {
			end = seg.End
		}
	}

	speakers := make([]string, len(m.Speakers))
	copy(speakers, m.Speakers)
	if len(speakers) == 0 {
		speakers = transcript.UniqueSpeakers(m.Segments)
	}
	sort.Strings(speakers)

	index := 0
	for t0 := start; t0 < end; t0 += step {
		t1 := t0 + windowSize
		if t1 > end {
			t1 = end
		}
		for _, spk := range speakers {
			count := 0
			for _, seg := range m.Segments {
				if seg.Speaker != spk {
					continue
				}
				for _, w := range seg.Words {
					if w.Start >= t0 && w.Start < t1 {
						count++
					}
				}
			}
			wpm := 0.0
			if mins := (t1 - t0) / 60.0; mins > 0 {
				wpm = float64(count) / mins
			}
			out.Timeseries = append(out.Timeseries, WindowEntry{
				WindowIndex:    index,
				WindowStart:    t0,
				WindowEnd:      t1,
				Speaker:        spk,
				WordCount:      count,
				WordsPerMinute: wpm,
			})
		}
		index++
	}
	return out
}
