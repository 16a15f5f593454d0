package clients

import (
	"fmt"

	"github.com/podscope/podscope/transcript"
)

// MockTranscript builds a deterministic low-fidelity transcript without
// touching any model: fixed-cadence placeholder segments across the given
// duration. It exists as the documented fallback for the transcription
// stage when the ASR service is unavailable and mocking is allowed, so the
// rest of the pipeline can still be exercised end to end.
func MockTranscript(audioPath string, durationSec float64) *transcript.Transcript {
	const segLen = 5.0
	const wordLen = 0.4

	t := &transcript.Transcript{
		AudioFile: audioPath,
		Language:  "en",
	}
	for start := 0.0; start < durationSec; start += segLen {
		end := start + segLen
		if end > durationSec {
			end = durationSec
		}
		var words []transcript.Word
		text := ""
		for ws := start; ws+wordLen <= end; ws += wordLen {
			w := fmt.Sprintf("mock%d", len(words)+1)
			words = append(words, transcript.Word{Start: ws, End: ws + wordLen, Word: w})
			if text != "" {
				text += " "
			}
			text += w
		}
		t.Segments = append(t.Segments, transcript.Segment{
			Start: start,
			End:   end,
			Text:  text,
			Words: words,
		})
	}
	return t
}
