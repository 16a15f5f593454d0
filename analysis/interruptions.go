package analysis

import (
	"sort"

	"github.com/podscope/podscope/transcript"
)

// Interruption event types.
const (
	TypeOverlap       = "overlap"
	TypeQuickTakeover = "quick_takeover"
)

const excerptLen = 100

// InterruptionParams are the detector thresholds.
type InterruptionParams struct {
	MinOverlapSec             float64 `json:"min_overlap_sec"`
	MaxGapSec                 float64 `json:"max_gap_sec"`
	MinWordsInterrupter       int     `json:"min_words_interrupter"`
	MaxBackchannelDurationSec float64 `json:"max_backchannel_duration_sec"`
}

// DefaultInterruptionParams returns the thresholds tuned on real
// two-speaker podcast recordings.
func DefaultInterruptionParams() InterruptionParams {
	return InterruptionParams{
		MinOverlapSec:             0.2,
		MaxGapSec:                 0.15,
		MinWordsInterrupter:       3,
		MaxBackchannelDurationSec: 0.6,
	}
}

// Interruption is a genuine turn-stealing event between two speakers.
type Interruption struct {
	Time                    float64 `json:"time"`
	OverlapDuration         float64 `json:"overlap_duration"`
	Gap                     float64 `json:"gap"`
	Interrupter             string  `json:"interrupter"`
	Interrupted             string  `json:"interrupted"`
	InterrupterSegmentIndex int     `json:"interrupter_segment_index"`
	InterruptedSegmentIndex int     `json:"interrupted_segment_index"`
	InterrupterSegmentText  string  `json:"interrupter_segment_text"`
	InterruptedSegmentText  string  `json:"interrupted_segment_text"`
	Type                    string  `json:"type"`
	InterrupterWordCount    int     `json:"interrupter_word_count"`
	InterrupterDuration     float64 `json:"interrupter_duration"`
}

// Backchannel is a short interjection ("yeah", "right") that overlaps or
// quickly follows the other speaker without taking the turn.
type Backchannel struct {
	Time         float64 `json:"time"`
	Speaker      string  `json:"speaker"`
	SegmentIndex int     `json:"segment_index"`
	Text         string  `json:"text"`
	Duration     float64 `json:"duration"`
	WordCount    int     `json:"word_count"`
}

// SpeakerInterruptionStats tallies one speaker's events.
type SpeakerInterruptionStats struct {
	InterruptionsMade     int `json:"interruptions_made"`
	InterruptionsReceived int `json:"interruptions_received"`
	BackchannelsMade      int `json:"backchannels_made"`
}

// InterruptionStats summarizes the detector output.
type InterruptionStats struct {
	TotalInterruptions int                                  `json:"total_interruptions"`
	TotalBackchannels  int                                  `json:"total_backchannels"`
	PerSpeaker         map[string]*SpeakerInterruptionStats `json:"per_speaker"`
}

// InterruptionReport is the detector's output document.
type InterruptionReport struct {
	AudioFile     string             `json:"audio_file,omitempty"`
	Parameters    InterruptionParams `json:"parameters"`
	Interruptions []Interruption     `json:"interruptions"`
	Backchannels  []Backchannel      `json:"backchannels"`
	Stats         InterruptionStats  `json:"stats"`
}

// DetectInterruptions classifies each adjacent differing-speaker segment
// pair as no event, a real interruption or a backchannel. Segments are
// examined in start-time order. An overlap of at least MinOverlapSec makes
// the later-starting segment the interrupter; otherwise a gap within
// [0, MaxGapSec] makes the following segment a quick takeover. Candidates
// whose segment is both short on words and short in duration are
// backchannels rather than real interruptions.
func DetectInterruptions(m *transcript.Merged, p InterruptionParams) *InterruptionReport {
	segments := make([]transcript.MergedSegment, len(m.Segments))
	copy(segments, m.Segments)
	sort.SliceStable(segments, func(i, j int) bool { return segments[i].Start < segments[j].Start })

	report := &InterruptionReport{
		AudioFile:     m.AudioFile,
		Parameters:    p,
		Interruptions: []Interruption{},
		Backchannels:  []Backchannel{},
	}

	for i := 0; i+1 < len(segments); i++ {
		cur, next := segments[i], segments[i+1]
		if cur.Speaker == next.Speaker {
			continue
		}

		ov := segOverlap(cur, next)
		gap := next.Start - cur.End

		var eventType string
		switch {
		case ov >= p.MinOverlapSec:
			eventType = TypeOverlap
		case gap >= 0 && gap <= p.MaxGapSec:
			eventType = TypeQuickTakeover
		default:
			continue
		}

		// The interrupter is the segment that cut in: on overlap the one
		// that started later, on quick takeover always the following one.
		interrupterIdx, interruptedIdx := i+1, i
		if eventType == TypeOverlap && next.Start <= cur.Start {
			interrupterIdx, interruptedIdx = i, i+1
		}
		interrupter := segments[interrupterIdx]
		interrupted := segments[interruptedIdx]

		wordCount := len(interrupter.Words)
		duration := interrupter.Duration()

		if wordCount < p.MinWordsInterrupter && duration < p.MaxBackchannelDurationSec {
			report.Backchannels = append(report.Backchannels, Backchannel{
				Time:         interrupter.Start,
				Speaker:      interrupter.Speaker,
				SegmentIndex: interrupterIdx,
				Text:         interrupter.Text,
				Duration:     duration,
				WordCount:    wordCount,
			})
			continue
		}
		report.Interruptions = append(report.Interruptions, Interruption{
			Time:                    interrupter.Start,
			OverlapDuration:         ov,
			Gap:                     gap,
			Interrupter:             interrupter.Speaker,
			Interrupted:             interrupted.Speaker,
			InterrupterSegmentIndex: interrupterIdx,
			InterruptedSegmentIndex: interruptedIdx,
			InterrupterSegmentText:  excerpt(interrupter.Text),
			InterruptedSegmentText:  excerpt(interrupted.Text),
			Type:                    eventType,
			InterrupterWordCount:    wordCount,
			InterrupterDuration:     duration,
		})
	}

	perSpeaker := map[string]*SpeakerInterruptionStats{}
	for _, spk := range transcript.UniqueSpeakers(segments) {
		perSpeaker[spk] = &SpeakerInterruptionStats{}
	}
	for _, intr := range report.Interruptions {
		perSpeaker[intr.Interrupter].InterruptionsMade++
		perSpeaker[intr.Interrupted].InterruptionsReceived++
	}
	for _, bc := range report.Backchannels {
		perSpeaker[bc.Speaker].BackchannelsMade++
	}
	report.Stats = InterruptionStats{
		TotalInterruptions: len(report.Interruptions),
		TotalBackchannels:  len(report.Backchannels),
		PerSpeaker:         perSpeaker,
	}
	return report
}

func segOverlap(a, b transcript.MergedSegment) float64 {
	lo := a.Start
	if b.Start > lo {
		lo = b.Start
	}
	hi := a.End
	if b.End < hi {
		hi = b.End
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

func excerpt(s string) string {
	r := []rune(s)
	if len(r) <= excerptLen {
		return s
	}
	return string(r[:excerptLen]) + "..."
}
