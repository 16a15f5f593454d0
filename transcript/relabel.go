package transcript

import (
	"sort"
	"strings"
)

// RelabelResult reports what a relabeling pass did.
type RelabelResult struct {
	Before  map[string]int `json:"before"`
	After   map[string]int `json:"after"`
	Changed int            `json:"changed"`
}

// RelabelDiarization rewrites speaker labels in place using the given
// old→new mapping. Labels absent from the mapping pass through untouched.
func RelabelDiarization(d *Diarization, labels map[string]string) RelabelResult {
	res := RelabelResult{Before: map[string]int{}, After: map[string]int{}}
	for i := range d.Segments {
		res.Before[d.Segments[i].Speaker]++
		if to, ok := labelFor(labels, d.Segments[i].Speaker); ok && to != d.Segments[i].Speaker {
			d.Segments[i].Speaker = to
			res.Changed++
		}
		res.After[d.Segments[i].Speaker]++
	}
	return res
}

// RelabelMerged rewrites speaker labels in a merged transcript, both in the
// segments and in the top-level speakers list.
func RelabelMerged(m *Merged, labels map[string]string) RelabelResult {
	res := RelabelResult{Before: map[string]int{}, After: map[string]int{}}
	for i := range m.Segments {
		res.Before[m.Segments[i].Speaker]++
		if to, ok := labelFor(labels, m.Segments[i].Speaker); ok && to != m.Segments[i].Speaker {
			m.Segments[i].Speaker = to
			res.Changed++
		}
		res.After[m.Segments[i].Speaker]++
	}
	m.Speakers = UniqueSpeakers(m.Segments)
	return res
}

// labelFor resolves a speaker against the mapping, falling back to a
// case-insensitive match. Config loaders may lowercase map keys, so "S0"
// in the data must still find an "s0" mapping entry.
func labelFor(labels map[string]string, speaker string) (string, bool) {
	if to, ok := labels[speaker]; ok {
		return to, true
	}
	for from, to := range labels {
		if strings.EqualFold(from, speaker) {
			return to, true
		}
	}
	return "", false
}

// UniqueSpeakers returns the sorted distinct speaker labels of segs.
func UniqueSpeakers(segs []MergedSegment) []string {
	seen := map[string]bool{}
	out := make([]string, 0, 2)
	for _, s := range segs {
		if !seen[s.Speaker] {
			seen[s.Speaker] = true
			out = append(out, s.Speaker)
		}
	}
	sort.Strings(out)
	return out
}
