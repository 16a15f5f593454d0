package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// File pair naming inside a watched directory: <name>.transcript.json and
// <name>.diarization.json. The pair is analyzed once both halves exist.
const (
	suffixTranscript  = ".transcript.json"
	suffixDiarization = ".diarization.json"
)

// settleDelay gives the producer time to finish writing before we read.
const settleDelay = 200 * time.Millisecond

// Watch monitors dir for transcript/diarization JSON pairs and runs the
// full analysis for each completed pair, writing the results to a
// per-pair directory under the configured outputs root. Pairs already
// present when the watch starts are processed first. Blocks until ctx is
// cancelled.
func (p *Pipeline) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	p.log.WithField("dir", dir).Info("watching for transcript/diarization pairs")

	processed := map[string]bool{}

	// Sweep anything already sitting in the directory.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	for _, e := range entries {
		p.tryPair(filepath.Join(dir, e.Name()), processed)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watch: event channel closed")
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			time.Sleep(settleDelay)
			p.tryPair(event.Name, processed)
		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watch: error channel closed")
			}
			p.log.WithError(err).Warn("watcher error")
		}
	}
}

// tryPair checks whether path belongs to a pair whose other half already
// exists, and if so analyzes the pair once.
func (p *Pipeline) tryPair(path string, processed map[string]bool) {
	base, ok := pairBase(path)
	if !ok || processed[base] {
		return
	}
	tPath := base + suffixTranscript
	dPath := base + suffixDiarization
	if !fileExists(tPath) || !fileExists(dPath) {
		return
	}
	processed[base] = true

	name := filepath.Base(base)
	outDir := filepath.Join(p.cfg.Paths.Outputs, name)
	p.log.WithField("pair", name).Info("pair complete, analyzing")
	if _, err := p.Analyze(tPath, dPath, outDir); err != nil {
		// The pair stays marked processed; rewriting either file does not
		// retrigger it.
		p.log.WithError(err).WithField("pair", name).Error("analysis failed")
	}
}

func pairBase(path string) (string, bool) {
	switch {
	case strings.HasSuffix(path, suffixTranscript):
		return strings.TrimSuffix(path, suffixTranscript), true
	case strings.HasSuffix(path, suffixDiarization):
		return strings.TrimSuffix(path, suffixDiarization), true
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
