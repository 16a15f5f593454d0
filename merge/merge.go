// Package merge combines a word-level ASR transcript with speaker
// diarization intervals into a speaker-labeled transcript. Each word goes
// to the diarization interval with the largest temporal overlap; the
// intervals then act as the segment boundaries of the merged output.
package merge

import (
	"sort"
	"strings"

	"github.com/podscope/podscope/transcript"
)

// AssignSpeaker returns the speaker of the diarization interval with the
// strictly largest overlap against the word, or "" when no interval
// overlaps it at all. Ties keep the first interval in input order.
func AssignSpeaker(w transcript.Word, intervals []transcript.DiarSegment) string {
	best := ""
	bestOverlap := 0.0
	for _, seg := range intervals {
		ov := overlap(w.Start, w.End, seg.Start, seg.End)
		if ov > bestOverlap {
			bestOverlap = ov
			best = seg.Speaker
		}
	}
	return best
}

func overlap(aStart, aEnd, bStart, bEnd float64) float64 {
	lo := aStart
	if bStart > lo {
		lo = bStart
	}
	hi := aEnd
	if bEnd < hi {
		hi = bEnd
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

type assignedWord struct {
	transcript.Word
	speaker string
}

// Merge assigns every transcript word to a diarization speaker and regroups
// the words into one segment per diarization interval. Words overlapping no
// interval are dropped; intervals collecting no words emit no segment.
// Empty inputs yield an empty (never nil-segmented) result.
func Merge(t *transcript.Transcript, d *transcript.Diarization) *transcript.Merged {
	words := collectWords(t)

	assigned := make([]assignedWord, 0, len(words))
	for _, w := range words {
		if spk := AssignSpeaker(w, d.Segments); spk != "" {
			assigned = append(assigned, assignedWord{Word: w, speaker: spk})
		}
	}

	segments := make([]transcript.MergedSegment, 0, len(d.Segments))
	for _, diar := range d.Segments {
		var segWords []transcript.Word
		for _, aw := range assigned {
			if aw.speaker != diar.Speaker {
				continue
			}
			if overlap(aw.Start, aw.End, diar.Start, diar.End) > 0 {
				segWords = append(segWords, aw.Word)
			}
		}
		if len(segWords) == 0 {
			continue
		}
		sort.SliceStable(segWords, func(i, j int) bool { return segWords[i].Start < segWords[j].Start })

		texts := make([]string, len(segWords))
		for i, w := range segWords {
			texts[i] = w.Word
		}
		segments = append(segments, transcript.MergedSegment{
			Speaker: diar.Speaker,
			Start:   diar.Start,
			End:     diar.End,
			Text:    strings.Join(texts, " "),
			Words:   segWords,
		})
	}

	return &transcript.Merged{
		AudioFile:  t.AudioFile,
		SampleRate: t.SampleRate,
		Speakers:   transcript.UniqueSpeakers(segments),
		Segments:   segments,
	}
}

// collectWords flattens the transcript into its word stream, trimming word
// text and skipping words that are empty after trimming.
func collectWords(t *transcript.Transcript) []transcript.Word {
	var out []transcript.Word
	for _, seg := range t.Segments {
		for _, w := range seg.Words {
			text := strings.TrimSpace(w.Word)
			if text == "" {
				continue
			}
			out = append(out, transcript.Word{Start: w.Start, End: w.End, Word: text})
		}
	}
	return out
}
