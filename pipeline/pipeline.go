// Package pipeline wires the stages together: fetch ASR and diarization
// results, merge them into a speaker-labeled transcript and run the
// analysis passes, each stage reading and writing whole JSON files.
package pipeline

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/podscope/podscope/analysis"
	"github.com/podscope/podscope/clients"
	"github.com/podscope/podscope/config"
	"github.com/podscope/podscope/merge"
	"github.com/podscope/podscope/transcript"
)

// mockDurationSec is the synthetic audio length used when the ASR fallback
// kicks in; long enough to produce several analysis windows.
const mockDurationSec = 65.0

type Pipeline struct {
	cfg  *config.Root
	log  *logrus.Logger
	http *clients.HTTP
}

func New(cfg *config.Root, log *logrus.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, log: log, http: clients.NewHTTP()}
}

// Transcribe sends the audio to the ASR service and writes the word-level
// transcript JSON. When the service fails (or no URL is configured) and
// mocking is allowed, a deterministic placeholder transcript is written
// instead so downstream stages stay runnable.
func (p *Pipeline) Transcribe(ctx context.Context, audioPath, outPath string) error {
	var (
		t   *transcript.Transcript
		err error
	)
	if url := p.cfg.Services.ASR.URL; url != "" {
		t, err = p.http.ASR(ctx, url, audioPath)
	} else {
		err = fmt.Errorf("no ASR service URL configured")
	}
	if err != nil {
		if !p.cfg.Services.ASR.AllowMock {
			return fmt.Errorf("transcribe: %w", err)
		}
		p.log.WithError(err).Warn("ASR unavailable, falling back to mock transcript")
		t = clients.MockTranscript(audioPath, mockDurationSec)
	}

	if err := transcript.WriteJSON(outPath, t); err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}
	p.log.WithFields(logrus.Fields{
		"segments": len(t.Segments),
		"path":     outPath,
	}).Info("transcript written")
	return nil
}

// Diarize sends the audio to the diarization service and writes the
// speaker interval JSON. The configured speaker label mapping, if any, is
// applied before writing.
func (p *Pipeline) Diarize(ctx context.Context, audioPath, outPath string) error {
	url := p.cfg.Services.Diarization.URL
	if url == "" {
		return fmt.Errorf("diarize: no diarization service URL configured")
	}
	d, err := p.http.Diarize(ctx, url, audioPath)
	if err != nil {
		return fmt.Errorf("diarize: %w", err)
	}
	if len(p.cfg.Speakers.Labels) > 0 {
		res := transcript.RelabelDiarization(d, p.cfg.Speakers.Labels)
		p.log.WithField("relabeled", res.Changed).Info("applied speaker label mapping")
	}
	if err := transcript.WriteJSON(outPath, d); err != nil {
		return fmt.Errorf("diarize: %w", err)
	}
	p.log.WithFields(logrus.Fields{
		"segments": len(d.Segments),
		"path":     outPath,
	}).Info("diarization written")
	return nil
}

// Merge combines the transcript and diarization files into the
// speaker-labeled transcript and writes it to outPath.
func (p *Pipeline) Merge(transcriptPath, diarPath, outPath string) (*transcript.Merged, error) {
	t, err := transcript.LoadTranscript(transcriptPath)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	d, err := transcript.LoadDiarization(diarPath)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}

	m := merge.Merge(t, d)
	if err := transcript.WriteJSON(outPath, m); err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	p.log.WithFields(logrus.Fields{
		"speakers": m.Speakers,
		"segments": len(m.Segments),
		"path":     outPath,
	}).Info("merged transcript written")
	return m, nil
}

// Stats computes the per-speaker totals from a merged transcript file.
func (p *Pipeline) Stats(mergedPath, outPath string) error {
	m, err := transcript.LoadMerged(mergedPath)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	return p.writeStats(m, outPath)
}

// Timeseries computes the windowed speaking-rate series from a merged
// transcript file.
func (p *Pipeline) Timeseries(mergedPath, outPath string) error {
	m, err := transcript.LoadMerged(mergedPath)
	if err != nil {
		return fmt.Errorf("timeseries: %w", err)
	}
	return p.writeTimeseries(m, outPath)
}

// Interruptions runs the interruption/backchannel detector on a merged
// transcript file.
func (p *Pipeline) Interruptions(mergedPath, outPath string) error {
	m, err := transcript.LoadMerged(mergedPath)
	if err != nil {
		return fmt.Errorf("interruptions: %w", err)
	}
	return p.writeInterruptions(m, outPath)
}

// Turns runs the turn-taking analyzer on a merged transcript file.
func (p *Pipeline) Turns(mergedPath, outPath string) error {
	m, err := transcript.LoadMerged(mergedPath)
	if err != nil {
		return fmt.Errorf("turns: %w", err)
	}
	return p.writeTurns(m, outPath)
}

func (p *Pipeline) writeStats(m *transcript.Merged, outPath string) error {
	stats := analysis.Basic(m)
	if err := transcript.WriteJSON(outPath, stats); err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	p.log.WithFields(logrus.Fields{
		"speakers": len(stats.Speakers),
		"path":     outPath,
	}).Info("basic speaker stats written")
	return nil
}

func (p *Pipeline) writeTimeseries(m *transcript.Merged, outPath string) error {
	ts := p.cfg.Analysis.Timeseries
	series := analysis.SpeakingRate(m, ts.WindowSizeSec, ts.StepSizeSec)
	if err := transcript.WriteJSON(outPath, series); err != nil {
		return fmt.Errorf("timeseries: %w", err)
	}
	p.log.WithFields(logrus.Fields{
		"entries": len(series.Timeseries),
		"window":  ts.WindowSizeSec,
		"path":    outPath,
	}).Info("speaking rate series written")
	return nil
}

func (p *Pipeline) writeInterruptions(m *transcript.Merged, outPath string) error {
	params := analysis.InterruptionParams{
		MinOverlapSec:             p.cfg.Analysis.Interruptions.MinOverlapSec,
		MaxGapSec:                 p.cfg.Analysis.Interruptions.MaxGapSec,
		MinWordsInterrupter:       p.cfg.Analysis.Interruptions.MinWordsInterrupter,
		MaxBackchannelDurationSec: p.cfg.Analysis.Interruptions.MaxBackchannelDurationSec,
	}
	report := analysis.DetectInterruptions(m, params)
	if err := transcript.WriteJSON(outPath, report); err != nil {
		return fmt.Errorf("interruptions: %w", err)
	}
	p.log.WithFields(logrus.Fields{
		"interruptions": report.Stats.TotalInterruptions,
		"backchannels":  report.Stats.TotalBackchannels,
		"path":          outPath,
	}).Info("interruption report written")
	return nil
}

func (p *Pipeline) writeTurns(m *transcript.Merged, outPath string) error {
	report := analysis.TurnTaking(m, p.cfg.Analysis.Turns.MergeGapSec)
	if err := transcript.WriteJSON(outPath, report); err != nil {
		return fmt.Errorf("turns: %w", err)
	}
	p.log.WithFields(logrus.Fields{
		"turns":       report.MergeInfo.MergedSegments,
		"alternation": report.AlternationRate,
		"path":        outPath,
	}).Info("turn-taking report written")
	return nil
}

// Analyze runs the full analysis chain on a transcript/diarization pair,
// writing every output into outDir. When outDir is empty a fresh
// timestamped session directory under the configured outputs root is used.
// Returns the directory the results were written to.
func (p *Pipeline) Analyze(transcriptPath, diarPath, outDir string) (string, error) {
	if outDir == "" {
		_, dir, err := sessionDir(p.cfg.Paths.Outputs)
		if err != nil {
			return "", fmt.Errorf("analyze: %w", err)
		}
		outDir = dir
	}

	m, err := p.Merge(transcriptPath, diarPath, outputPath(outDir, FileMerged))
	if err != nil {
		return "", err
	}
	if err := p.writeStats(m, outputPath(outDir, FileStats)); err != nil {
		return "", err
	}
	if err := p.writeTimeseries(m, outputPath(outDir, FileTimeseries)); err != nil {
		return "", err
	}
	if err := p.writeInterruptions(m, outputPath(outDir, FileInterruptions)); err != nil {
		return "", err
	}
	if err := p.writeTurns(m, outputPath(outDir, FileTurns)); err != nil {
		return "", err
	}
	p.log.WithField("dir", outDir).Info("analysis complete")
	return outDir, nil
}
