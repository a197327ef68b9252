package dispatch

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"atlas/wikipedia/dump/corpus"
)

// Entropies of the fixture dumps, computed over the same texts the analyzer
// sees (latest revisions, main namespace, non-empty).
const (
	deEntropy = 4.21921395764756
	eoEntropy = 4.1851874331489505
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testScheduler(dumpDir string) *Scheduler {
	return &Scheduler{
		DumpDir:       dumpDir,
		WikiToISO:     map[string]string{"de": "deu", "eo": "epo"},
		ReferenceWiki: "de",
		Workers:       2,
		Analyzer:      &corpus.Analyzer{Threshold: 450},
		Log:           testLogger(),
	}
}

func TestDiscover(t *testing.T) {
	tasks, err := Discover(filepath.Join("testdata", "dumps"))
	require.NoError(t, err)

	require.Len(t, tasks, 2)
	require.Equal(t, "de", tasks[0].WikiCode)
	require.Equal(t, "eo", tasks[1].WikiCode)
	for _, task := range tasks {
		require.NotEmpty(t, task.ArchivePath)
		require.NotEmpty(t, task.IndexPath)
	}
}

func TestDiscoverUnpairedFiles(t *testing.T) {
	dir := t.TempDir()
	touch := func(name string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	touch("frwiki-20240901-pages-articles-multistream.xml.bz2")
	touch("itwiki-20240901-pages-articles-multistream-index.txt.bz2")
	touch("notadump.txt")

	tasks, err := Discover(dir)
	require.NoError(t, err)

	// Archive without index stays (the analyzer reports the missing index),
	// index without archive is dropped.
	require.Len(t, tasks, 1)
	require.Equal(t, "fr", tasks[0].WikiCode)
	require.Empty(t, tasks[0].IndexPath)
}

func TestDiscoverMissingDir(t *testing.T) {
	_, err := Discover(filepath.Join("testdata", "nope"))
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	s := testScheduler(filepath.Join("testdata", "dumps"))

	results, err := s.Run(context.Background())
	require.NoError(t, err)

	m := results.Manifest
	require.NotEmpty(t, m.RunID)
	require.Equal(t, "de", m.ReferenceWiki)
	require.False(t, m.ReferenceFallback)
	require.InDelta(t, deEntropy, m.ReferenceEntropy, 1e-9)
	require.Len(t, m.Languages, 2)
	require.False(t, m.FinishedAt.Before(m.StartedAt))

	// Reference language: factor pinned to 1.0, lengths 780 and 680, both
	// real at threshold 450.
	require.Equal(t, 2, results.ArticleCounts["deu"])
	require.InDelta(t, 730, results.AvgLengths["deu"], 1e-9)
	require.InDelta(t, 730, results.MedianLengths["deu"], 1e-9)
	require.InDelta(t, 1.0, results.RealRatios["deu"], 1e-12)
	require.InDelta(t, 1460, results.AdjustedSizes["deu"], 1e-9)
	require.InDelta(t, deEntropy, results.EntropyValues["deu"], 1e-9)

	// Esperanto: lengths 567 and 8 scaled by de/eo entropy; only the long
	// article clears the threshold.
	factor := deEntropy / eoEntropy
	require.Equal(t, 2, results.ArticleCounts["epo"])
	require.InDelta(t, (567+8)*factor/2, results.AvgLengths["epo"], 1e-9)
	require.InDelta(t, 0.5, results.RealRatios["epo"], 1e-12)
	require.InDelta(t, 567*factor, results.AdjustedSizes["epo"], 1e-9)
	require.InDelta(t, eoEntropy, results.EntropyValues["epo"], 1e-9)
}

func TestRunReferenceMissing(t *testing.T) {
	// Only the Esperanto pair: phase 1 has nothing to analyze and commits the
	// fallback entropy of 1.0.
	dir := t.TempDir()
	for _, name := range []string{
		"eowiki-20240901-pages-articles-multistream.xml.bz2",
		"eowiki-20240901-pages-articles-multistream-index.txt.bz2",
	} {
		data, err := os.ReadFile(filepath.Join("testdata", "dumps", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
	}

	s := testScheduler(dir)

	results, err := s.Run(context.Background())
	require.NoError(t, err)

	require.True(t, results.Manifest.ReferenceFallback)
	require.Equal(t, 1.0, results.Manifest.ReferenceEntropy)

	// Factor degrades to 1.0/ownEntropy, which shrinks every article below
	// the real threshold.
	factor := 1.0 / eoEntropy
	require.InDelta(t, (567+8)*factor/2, results.AvgLengths["epo"], 1e-9)
	require.Zero(t, results.RealRatios["epo"])
	require.Zero(t, results.AdjustedSizes["epo"])
}

func TestRunUnmappedWiki(t *testing.T) {
	s := testScheduler(filepath.Join("testdata", "dumps"))
	s.WikiToISO = map[string]string{"de": "deu"}

	results, err := s.Run(context.Background())
	require.NoError(t, err)

	require.Contains(t, results.ArticleCounts, "Unknown")
	require.Equal(t, 2, results.ArticleCounts["Unknown"])
}

func TestLoadWikiToISO(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wiki_code_to_iso_code.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"de": "deu", "eo": "epo"}`), 0644))

	m := LoadWikiToISO(path, testLogger())
	require.Equal(t, map[string]string{"de": "deu", "eo": "epo"}, m)

	// Missing and malformed files degrade to an empty map.
	require.Empty(t, LoadWikiToISO(filepath.Join(dir, "nope.json"), testLogger()))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0644))
	require.Empty(t, LoadWikiToISO(bad, testLogger()))
}

func TestWorkerCount(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		tasks   int
		want    int
	}{
		{"configured", 4, 10, 4},
		{"capped by tasks", 8, 3, 3},
		{"zero tasks still one worker", 4, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Scheduler{Workers: tt.workers}
			require.Equal(t, tt.want, s.workerCount(tt.tasks))
		})
	}
}

func TestWriteOutputs(t *testing.T) {
	s := testScheduler(filepath.Join("testdata", "dumps"))

	results, err := s.Run(context.Background())
	require.NoError(t, err)

	dir := t.TempDir()
	outDir := filepath.Join(dir, "dicts")
	require.NoError(t, results.WriteOutputs(outDir))

	for _, name := range []string{
		CountsFile, AvgLengthsFile, MedianLengthsFile,
		RealRatiosFile, AdjustedSizesFile, EntropyFile, ManifestFile,
	} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err)
		require.True(t, json.Valid(data), name)
	}

	var counts map[string]int
	data, err := os.ReadFile(filepath.Join(outDir, CountsFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &counts))
	require.Equal(t, map[string]int{"deu": 2, "epo": 2}, counts)
}
