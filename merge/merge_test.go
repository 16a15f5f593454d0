package merge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podscope/podscope/transcript"
)

func word(start, end float64, text string) transcript.Word {
	return transcript.Word{Start: start, End: end, Word: text}
}

func diar(speaker string, start, end float64) transcript.DiarSegment {
	return transcript.DiarSegment{Speaker: speaker, Start: start, End: end}
}

func TestAssignSpeaker(t *testing.T) {
	intervals := []transcript.DiarSegment{
		diar("Alice", 0, 10),
		diar("Bob", 10, 20),
	}

	tests := []struct {
		name string
		w    transcript.Word
		want string
	}{
		{"fully inside first", word(2, 3, "hi"), "Alice"},
		{"fully inside second", word(12, 13, "yo"), "Bob"},
		{"straddles, mostly first", word(9, 10.5, "uh"), "Alice"},
		{"straddles, mostly second", word(9.5, 12, "well"), "Bob"},
		{"no overlap at all", word(25, 26, "lost"), ""},
		{"zero-length word", word(5, 5, "blip"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssignSpeaker(tt.w, intervals))
		})
	}
}

func TestAssignSpeakerTieKeepsFirstInterval(t *testing.T) {
	// The word overlaps both intervals by exactly 0.5s; the first interval
	// in input order wins.
	intervals := []transcript.DiarSegment{
		diar("Alice", 0, 1.5),
		diar("Bob", 1.5, 3),
	}
	assert.Equal(t, "Alice", AssignSpeaker(word(1, 2, "split"), intervals))

	// Same intervals in the opposite order flip the winner.
	reversed := []transcript.DiarSegment{intervals[1], intervals[0]}
	assert.Equal(t, "Bob", AssignSpeaker(word(1, 2, "split"), reversed))
}

func TestMergeRoundTrip(t *testing.T) {
	// Ten words wholly inside one diarization interval of the same range
	// come back as exactly one segment containing all ten.
	words := make([]transcript.Word, 0, 10)
	for i := 0; i < 10; i++ {
		start := float64(i)
		words = append(words, word(start, start+0.8, "w"+string(rune('a'+i))))
	}
	tr := &transcript.Transcript{
		AudioFile: "podcast.wav",
		Segments:  []transcript.Segment{{Start: 0, End: 10, Text: "ignored", Words: words}},
	}
	d := &transcript.Diarization{Segments: []transcript.DiarSegment{diar("Alice", 0, 10)}}

	m := Merge(tr, d)
	require.Len(t, m.Segments, 1)
	seg := m.Segments[0]
	assert.Equal(t, "Alice", seg.Speaker)
	assert.Equal(t, 0.0, seg.Start)
	assert.Equal(t, 10.0, seg.End)
	require.Len(t, seg.Words, 10)
	assert.Equal(t, []string{"Alice"}, m.Speakers)
	assert.Equal(t, "podcast.wav", m.AudioFile)

	texts := make([]string, len(seg.Words))
	for i, w := range seg.Words {
		texts[i] = w.Word
	}
	assert.Equal(t, strings.Join(texts, " "), seg.Text)
}

func TestMergeWordsSortedByStart(t *testing.T) {
	tr := &transcript.Transcript{
		Segments: []transcript.Segment{{
			Start: 0, End: 5,
			Words: []transcript.Word{word(3, 4, "later"), word(1, 2, "earlier")},
		}},
	}
	d := &transcript.Diarization{Segments: []transcript.DiarSegment{diar("Alice", 0, 5)}}

	m := Merge(tr, d)
	require.Len(t, m.Segments, 1)
	assert.Equal(t, "earlier later", m.Segments[0].Text)
	for i := 1; i < len(m.Segments[0].Words); i++ {
		assert.LessOrEqual(t, m.Segments[0].Words[i-1].Start, m.Segments[0].Words[i].Start)
	}
}

func TestMergeDropsUncoveredWords(t *testing.T) {
	tr := &transcript.Transcript{
		Segments: []transcript.Segment{{
			Start: 0, End: 20,
			Words: []transcript.Word{
				word(1, 2, "covered"),
				word(14, 15, "gap"), // true silence between intervals
			},
		}},
	}
	d := &transcript.Diarization{Segments: []transcript.DiarSegment{
		diar("Alice", 0, 10),
		diar("Bob", 20, 30),
	}}

	m := Merge(tr, d)
	require.Len(t, m.Segments, 1)
	assert.Equal(t, "covered", m.Segments[0].Text)

	total := 0
	for _, s := range m.Segments {
		total += len(s.Words)
	}
	assert.LessOrEqual(t, total, 2, "words must be dropped, never duplicated")
}

func TestMergeSkipsEmptyIntervals(t *testing.T) {
	tr := &transcript.Transcript{
		Segments: []transcript.Segment{{
			Start: 0, End: 10,
			Words: []transcript.Word{word(1, 2, "hello")},
		}},
	}
	d := &transcript.Diarization{Segments: []transcript.DiarSegment{
		diar("Alice", 0, 10),
		diar("Bob", 10, 20), // no words land here
	}}

	m := Merge(tr, d)
	require.Len(t, m.Segments, 1)
	assert.Equal(t, []string{"Alice"}, m.Speakers)
}

func TestMergeSkipsBlankWords(t *testing.T) {
	tr := &transcript.Transcript{
		Segments: []transcript.Segment{{
			Start: 0, End: 10,
			Words: []transcript.Word{
				word(1, 2, "  real  "),
				word(3, 4, "   "),
			},
		}},
	}
	d := &transcript.Diarization{Segments: []transcript.DiarSegment{diar("Alice", 0, 10)}}

	m := Merge(tr, d)
	require.Len(t, m.Segments, 1)
	assert.Equal(t, "real", m.Segments[0].Text)
	assert.Len(t, m.Segments[0].Words, 1)
}

func TestMergeEmptyInputs(t *testing.T) {
	m := Merge(&transcript.Transcript{}, &transcript.Diarization{})
	assert.Empty(t, m.Segments)
	assert.Empty(t, m.Speakers)
	assert.NotNil(t, m.Segments)
}

func TestMergeSpeakersSorted(t *testing.T) {
	tr := &transcript.Transcript{
		Segments: []transcript.Segment{{
			Start: 0, End: 20,
			Words: []transcript.Word{word(1, 2, "one"), word(11, 12, "two")},
		}},
	}
	d := &transcript.Diarization{Segments: []transcript.DiarSegment{
		diar("Zed", 0, 10),
		diar("Amy", 10, 20),
	}}

	m := Merge(tr, d)
	assert.Equal(t, []string{"Amy", "Zed"}, m.Speakers)
}
