package analysis

import (
	"sort"

	"github.com/podscope/podscope/transcript"
)

// Turn is a maximal stretch of consecutive same-speaker segments after
// tolerating gaps up to the merge threshold.
type Turn struct {
	Speaker      string  `json:"speaker"`
	Start        float64 `json:"start"`
	End          float64 `json:"end"`
	SegmentCount int     `json:"segment_count"`
}

func (t Turn) Duration() float64 { return t.End - t.Start }

// RunStats describes one speaker's runs, a run being a maximal consecutive
// stretch of turns held by that speaker.
type RunStats struct {
	NumRuns              int     `json:"num_runs"`
	AvgRunSegments       float64 `json:"avg_run_segments"`
	MaxRunSegments       int     `json:"max_run_segments"`
	AvgRunDurationSec    float64 `json:"avg_run_duration_sec"`
	MaxRunDurationSec    float64 `json:"max_run_duration_sec"`
	TotalSpeakingTimeSec float64 `json:"total_speaking_time_sec"`
}

// TurnMergeInfo records how much adjacency merging compacted the input.
type TurnMergeInfo struct {
	OriginalSegments     int     `json:"original_segments"`
	MergedSegments       int     `json:"merged_segments"`
	MergeGapThresholdSec float64 `json:"merge_gap_threshold_sec"`
}

// TurnReport is the turn-taking output document.
type TurnReport struct {
	AudioFile        string              `json:"audio_file,omitempty"`
	Speakers         []string            `json:"speakers"`
	Transitions      map[string]int      `json:"transitions"`
	TotalTransitions int                 `json:"total_transitions"`
	AlternationRate  float64             `json:"alternation_rate"`
	Runs             map[string]RunStats `json:"runs"`
	MergeInfo        TurnMergeInfo       `json:"merged_segments_info"`
}

// MergeTurns folds start-time-ordered segments into speaking turns,
// extending the open turn while the speaker stays the same and the gap to
// the previous segment is at most gapSec.
func MergeTurns(segments []transcript.MergedSegment, gapSec float64) []Turn {
	sorted := make([]transcript.MergedSegment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var turns []Turn
	for _, seg := range sorted {
		if n := len(turns); n > 0 &&
			turns[n-1].Speaker == seg.Speaker &&
			seg.Start-turns[n-1].End <= gapSec {
			turns[n-1].End = seg.End
			turns[n-1].SegmentCount++
			continue
		}
		turns = append(turns, Turn{
			Speaker:      seg.Speaker,
			Start:        seg.Start,
			End:          seg.End,
			SegmentCount: 1,
		})
	}
	return turns
}

// TurnTaking merges segments into turns, then derives the speaker
// transition matrix, the alternation rate and per-speaker run statistics.
// Empty input yields zero turns, an all-zero transition matrix and an
// alternation rate of 0.
func TurnTaking(m *transcript.Merged, gapSec float64) *TurnReport {
	turns := MergeTurns(m.Segments, gapSec)

	speakerSet := map[string]bool{}
	for _, t := range turns {
		speakerSet[t.Speaker] = true
	}
	speakers := make([]string, 0, len(speakerSet))
	for spk := range speakerSet {
		speakers = append(speakers, spk)
	}
	sort.Strings(speakers)

	transitions := map[string]int{}
	for _, a := range speakers {
		for _, b := range speakers {
			transitions[a+"->"+b] = 0
		}
	}

	totalTransitions := 0
	alternations := 0
	for i := 0; i+1 < len(turns); i++ {
		transitions[turns[i].Speaker+"->"+turns[i+1].Speaker]++
		totalTransitions++
		if turns[i].Speaker != turns[i+1].Speaker {
			alternations++
		}
	}
	alternationRate := 0.0
	if totalTransitions > 0 {
		alternationRate = float64(alternations) / float64(totalTransitions)
	}

	report := &TurnReport{
		AudioFile:        m.AudioFile,
		Speakers:         speakers,
		Transitions:      transitions,
		TotalTransitions: totalTransitions,
		AlternationRate:  alternationRate,
		Runs:             runStats(turns, speakers),
		MergeInfo: TurnMergeInfo{
			OriginalSegments:     len(m.Segments),
			MergedSegments:       len(turns),
			MergeGapThresholdSec: gapSec,
		},
	}
	return report
}

type run struct {
	speaker  string
	turns    int
	duration float64
}

// runStats walks the turn sequence tracking run boundaries. A run's
// duration spans from its first turn's start to its last turn's end.
func runStats(turns []Turn, speakers []string) map[string]RunStats {
	var runs []run
	for i := 0; i < len(turns); {
		j := i
		for j+1 < len(turns) && turns[j+1].Speaker == turns[i].Speaker {
			j++
		}
		runs = append(runs, run{
			speaker:  turns[i].Speaker,
			turns:    j - i + 1,
			duration: turns[j].End - turns[i].Start,
		})
		i = j + 1
	}

	out := map[string]RunStats{}
	for _, spk := range speakers {
		out[spk] = RunStats{}
	}
	bySpeaker := map[string][]run{}
	for _, r := range runs {
		bySpeaker[r.speaker] = append(bySpeaker[r.speaker], r)
	}
	for spk, rs := range bySpeaker {
		var st RunStats
		st.NumRuns = len(rs)
		sumTurns := 0
		for _, r := range rs {
			sumTurns += r.turns
			st.TotalSpeakingTimeSec += r.duration
			if r.turns > st.MaxRunSegments {
				st.MaxRunSegments = r.turns
			}
			if r.duration > st.MaxRunDurationSec {
				st.MaxRunDurationSec = r.duration
			}
		}
		st.AvgRunSegments = float64(sumTurns) / float64(len(rs))
		st.AvgRunDurationSec = st.TotalSpeakingTimeSec / float64(len(rs))
		out[spk] = st
	}
	return out
}
