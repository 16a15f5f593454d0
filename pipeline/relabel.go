package pipeline

import (
	"fmt"

	"github.com/podscope/podscope/transcript"
)

// RelabelFile applies the configured speaker label mapping to a
// diarization ("diarization") or merged transcript ("merged") file and
// writes the result to outPath, which may equal path. The original file is
// only replaced after a successful rewrite of the whole document.
func (p *Pipeline) RelabelFile(path, outPath, kind string) (transcript.RelabelResult, error) {
	labels := p.cfg.Speakers.Labels
	if len(labels) == 0 {
		return transcript.RelabelResult{}, fmt.Errorf("relabel: no speaker label mapping configured")
	}

	var (
		res transcript.RelabelResult
		doc any
	)
	switch kind {
	case "diarization":
		d, err := transcript.LoadDiarization(path)
		if err != nil {
			return res, fmt.Errorf("relabel: %w", err)
		}
		res = transcript.RelabelDiarization(d, labels)
		doc = d
	case "merged":
		m, err := transcript.LoadMerged(path)
		if err != nil {
			return res, fmt.Errorf("relabel: %w", err)
		}
		res = transcript.RelabelMerged(m, labels)
		doc = m
	default:
		return res, fmt.Errorf("relabel: unknown kind %q (want diarization or merged)", kind)
	}

	if err := transcript.WriteJSON(outPath, doc); err != nil {
		return res, fmt.Errorf("relabel: %w", err)
	}
	p.log.WithField("changed", res.Changed).Info("speaker labels rewritten")
	return res, nil
}
