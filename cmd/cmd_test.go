package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podscope/podscope/transcript"
)

// runCommand executes the root command with args, capturing stdout and
// stderr separately so tests can assert where output lands.
func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errBuf bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errBuf)
	log.SetOutput(io.Discard)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		log.SetOutput(os.Stderr)
	})
	// Flag variables survive across Execute calls; reset the ones these
	// tests touch so one run cannot leak into the next.
	cfgFile = ""
	relabelOut = ""
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errBuf.String(), err
}

func TestAnalyzePrintsSessionDirToStdout(t *testing.T) {
	dir := t.TempDir()
	tPath := filepath.Join(dir, "transcript.json")
	dPath := filepath.Join(dir, "diarization.json")
	outDir := filepath.Join(dir, "session")
	require.NoError(t, transcript.WriteJSON(tPath, &transcript.Transcript{
		Segments: []transcript.Segment{{Start: 0, End: 2, Text: "hello there", Words: []transcript.Word{
			{Start: 0, End: 1, Word: "hello"},
			{Start: 1, End: 2, Word: "there"},
		}}},
	}))
	require.NoError(t, transcript.WriteJSON(dPath, &transcript.Diarization{
		Segments: []transcript.DiarSegment{{Speaker: "S0", Start: 0, End: 2}},
	}))

	stdout, stderr, err := runCommand(t, "analyze", "-t", tPath, "-d", dPath, "--out-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, stdout, outDir)
	assert.Empty(t, stderr)
}

func TestRelabelPrintsCountsToStdout(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "podscope.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("speakers:\n  labels:\n    S0: Host\n"), 0o644))
	diarPath := filepath.Join(dir, "diarization.json")
	require.NoError(t, transcript.WriteJSON(diarPath, &transcript.Diarization{
		Segments: []transcript.DiarSegment{{Speaker: "S0", Start: 0, End: 5}},
	}))

	stdout, stderr, err := runCommand(t, "relabel", diarPath, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Host: 1 segments")
	assert.Contains(t, stdout, "changed 1 segment labels")
	assert.Empty(t, stderr)
}
