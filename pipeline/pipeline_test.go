package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podscope/podscope/config"
	"github.com/podscope/podscope/transcript"
)

func testPipeline(t *testing.T) (*Pipeline, *config.Root) {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.Outputs = t.TempDir()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(cfg, log), cfg
}

// writePair drops a small but realistic transcript/diarization pair into
// dir and returns both paths.
func writePair(t *testing.T, dir, base string) (string, string) {
	t.Helper()
	tr := &transcript.Transcript{
		AudioFile: "podcast.wav",
		Segments: []transcript.Segment{
			{Start: 0, End: 4, Text: "hello and welcome back", Words: []transcript.Word{
				{Start: 0.0, End: 0.5, Word: "hello"},
				{Start: 0.6, End: 1.0, Word: "and"},
				{Start: 1.1, End: 1.8, Word: "welcome"},
				{Start: 1.9, End: 2.4, Word: "back"},
			}},
			{Start: 4.5, End: 7, Text: "thanks for having me", Words: []transcript.Word{
				{Start: 4.5, End: 4.9, Word: "thanks"},
				{Start: 5.0, End: 5.3, Word: "for"},
				{Start: 5.4, End: 5.9, Word: "having"},
				{Start: 6.0, End: 6.4, Word: "me"},
			}},
		},
	}
	d := &transcript.Diarization{
		Segments: []transcript.DiarSegment{
			{Speaker: "Host", Start: 0, End: 4.2},
			{Speaker: "Guest", Start: 4.2, End: 7},
		},
	}
	tPath := filepath.Join(dir, base+suffixTranscript)
	dPath := filepath.Join(dir, base+suffixDiarization)
	require.NoError(t, transcript.WriteJSON(tPath, tr))
	require.NoError(t, transcript.WriteJSON(dPath, d))
	return tPath, dPath
}

func TestAnalyzeWritesAllOutputs(t *testing.T) {
	p, cfg := testPipeline(t)
	tPath, dPath := writePair(t, t.TempDir(), "episode")

	outDir, err := p.Analyze(tPath, dPath, "")
	require.NoError(t, err)
	assert.Contains(t, outDir, cfg.Paths.Outputs)

	for _, name := range []string{FileMerged, FileStats, FileTimeseries, FileInterruptions, FileTurns} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, "missing %s", name)
	}

	m, err := transcript.LoadMerged(filepath.Join(outDir, FileMerged))
	require.NoError(t, err)
	assert.Equal(t, []string{"Guest", "Host"}, m.Speakers)
	require.Len(t, m.Segments, 2)
	assert.Equal(t, "hello and welcome back", m.Segments[0].Text)
	assert.Equal(t, "thanks for having me", m.Segments[1].Text)
}

func TestAnalyzeMissingInputWritesNothing(t *testing.T) {
	p, cfg := testPipeline(t)
	_, dPath := writePair(t, t.TempDir(), "episode")

	_, err := p.Analyze(filepath.Join(t.TempDir(), "absent.json"), dPath, "")
	require.Error(t, err)

	// The failed stage writes no partial results beyond the session dir.
	entries, err := os.ReadDir(cfg.Paths.Outputs)
	require.NoError(t, err)
	for _, e := range entries {
		files, err := os.ReadDir(filepath.Join(cfg.Paths.Outputs, e.Name()))
		require.NoError(t, err)
		assert.Empty(t, files)
	}
}

func TestTranscribeMockFallback(t *testing.T) {
	p, cfg := testPipeline(t)
	cfg.Services.ASR.AllowMock = true

	out := filepath.Join(t.TempDir(), "transcript.json")
	require.NoError(t, p.Transcribe(context.Background(), "episode.wav", out))

	tr, err := transcript.LoadTranscript(out)
	require.NoError(t, err)
	assert.Equal(t, "episode.wav", tr.AudioFile)
	assert.NotEmpty(t, tr.Segments)
	assert.NotEmpty(t, tr.Segments[0].Words)
}

func TestTranscribeNoServiceNoMock(t *testing.T) {
	p, _ := testPipeline(t)
	out := filepath.Join(t.TempDir(), "transcript.json")

	require.Error(t, p.Transcribe(context.Background(), "episode.wav", out))
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err), "failed stage must write nothing")
}

func TestRelabelFile(t *testing.T) {
	p, cfg := testPipeline(t)
	cfg.Speakers.Labels = map[string]string{"s0": "Host", "s1": "Guest"}

	path := filepath.Join(t.TempDir(), "diar.json")
	require.NoError(t, transcript.WriteJSON(path, &transcript.Diarization{
		Segments: []transcript.DiarSegment{
			{Speaker: "S0", Start: 0, End: 5},
			{Speaker: "S1", Start: 5, End: 9},
		},
	}))

	res, err := p.RelabelFile(path, path, "diarization")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Changed)

	d, err := transcript.LoadDiarization(path)
	require.NoError(t, err)
	assert.Equal(t, "Host", d.Segments[0].Speaker)
	assert.Equal(t, "Guest", d.Segments[1].Speaker)
}

func TestRelabelFileUnknownKind(t *testing.T) {
	p, cfg := testPipeline(t)
	cfg.Speakers.Labels = map[string]string{"s0": "Host"}
	_, err := p.RelabelFile("in.json", "out.json", "bogus")
	require.Error(t, err)
}

func TestWatchProcessesExistingPair(t *testing.T) {
	p, cfg := testPipeline(t)
	watchDir := t.TempDir()
	writePair(t, watchDir, "episode42")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Watch(ctx, watchDir) }()

	mergedPath := filepath.Join(cfg.Paths.Outputs, "episode42", FileMerged)
	require.Eventually(t, func() bool {
		_, err := os.Stat(mergedPath)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond, "pre-existing pair should be analyzed")

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop on cancel")
	}
}
