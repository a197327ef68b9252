// Package dispatch schedules per-language corpus analysis in two phases. The
// reference language runs alone first because every other language's
// normalization consumes its entropy; only after that value is committed does
// the fan-out start. This is an ordering dependency, not an optimization.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"atlas/debugger"
	"atlas/wikipedia/dump/corpus"
)

// The committed entropy when the reference archive is missing or empty.
// Normalization degrades to raw lengths; the run never dies over it.
const fallbackEntropy = 1.0

type Scheduler struct {
	DumpDir string
	// WikiToISO maps wiki language codes to ISO 639-3 codes; results are keyed
	// by the ISO code, "Unknown" when unmapped.
	WikiToISO map[string]string

	ReferenceWiki string
	Workers       int

	Analyzer *corpus.Analyzer
	Log      *slog.Logger
	Debugger *debugger.Debugger
}

// LoadWikiToISO reads the wiki_code_to_iso_code.json mapping. A missing file
// is a warning, not an error; every wiki then keys as "Unknown".
func LoadWikiToISO(path string, log *slog.Logger) map[string]string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("wiki-to-iso mapping unavailable", "path", path, "err", err)
		return map[string]string{}
	}

	m := make(map[string]string)
	if err := json.Unmarshal(data, &m); err != nil {
		log.Warn("wiki-to-iso mapping unreadable", "path", path, "err", err)
		return map[string]string{}
	}
	return m
}

func (s *Scheduler) isoCode(wikiCode string) string {
	if iso, ok := s.WikiToISO[wikiCode]; ok && iso != "" {
		return iso
	}
	return "Unknown"
}

// Run discovers the archives and executes both phases. Per-language failures
// are recorded in the manifest and skipped; the aggregation below is the only
// place results are written, after each task reports.
func (s *Scheduler) Run(ctx context.Context) (*Results, error) {
	tasks, err := Discover(s.DumpDir)
	if err != nil {
		return nil, err
	}

	results := newResults()
	results.Manifest = &Manifest{
		RunID:         uuid.NewString(),
		StartedAt:     time.Now().UTC(),
		ReferenceWiki: s.ReferenceWiki,
	}

	var refTask *Task
	rest := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.WikiCode == s.ReferenceWiki {
			ref := t
			refTask = &ref
			continue
		}
		rest = append(rest, t)
	}

	// Phase 1: the reference language, synchronously.
	refEntropy := s.referencePhase(refTask, results)
	results.Manifest.ReferenceEntropy = refEntropy

	// Phase 2: everyone else, unordered completion over a bounded pool.
	outcomes := make(chan taskOutcome, len(rest))

	grp, grpctx := errgroup.WithContext(ctx)
	grp.SetLimit(s.workerCount(len(rest)))

	for _, t := range rest {
		t := t
		grp.Go(func() error {
			select {
			case <-grpctx.Done():
				return grpctx.Err()
			default:
			}

			start := time.Now()
			stats, err := s.Analyzer.AnalyzeArchive(t.ArchivePath, t.IndexPath, t.WikiCode, refEntropy, false)
			outcomes <- taskOutcome{task: t, stats: stats, err: err, took: time.Since(start)}
			// A failed language yields no stats, never a failed run.
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}
	close(outcomes)

	for out := range outcomes {
		s.record(out, results)
	}

	results.Manifest.FinishedAt = time.Now().UTC()

	return results, nil
}

type taskOutcome struct {
	task  Task
	stats *corpus.Stats
	err   error
	took  time.Duration
}

func (s *Scheduler) referencePhase(ref *Task, results *Results) float64 {
	if ref == nil {
		s.Log.Warn("reference dump not found, using fallback entropy",
			"wiki", s.ReferenceWiki, "entropy", fallbackEntropy)
		results.Manifest.ReferenceFallback = true
		return fallbackEntropy
	}

	start := time.Now()
	stats, err := s.Analyzer.AnalyzeArchive(ref.ArchivePath, ref.IndexPath, ref.WikiCode, 0, true)
	out := taskOutcome{task: *ref, stats: stats, err: err, took: time.Since(start)}
	s.record(out, results)

	if err != nil {
		s.Log.Warn("reference analysis failed, using fallback entropy",
			"wiki", s.ReferenceWiki, "entropy", fallbackEntropy, "err", err)
		results.Manifest.ReferenceFallback = true
		return fallbackEntropy
	}

	return stats.Entropy
}

// record folds one task's outcome into the result maps. Runs only on the
// orchestrating goroutine.
func (s *Scheduler) record(out taskOutcome, results *Results) {
	iso := s.isoCode(out.task.WikiCode)

	outcome := Outcome{
		WikiCode: out.task.WikiCode,
		ISOCode:  iso,
		Duration: out.took,
	}

	if out.err != nil {
		outcome.Err = out.err.Error()
		if errors.Is(out.err, corpus.ErrNoArticles) {
			s.Log.Warn("no articles", "wiki", out.task.WikiCode)
		} else {
			s.Log.Warn("language skipped", "wiki", out.task.WikiCode, "err", out.err)
		}
		results.Manifest.Languages = append(results.Manifest.Languages, outcome)
		return
	}

	stats := out.stats
	stats.ISOCode = iso
	outcome.Articles = stats.ArticleCount
	outcome.Indexed = stats.IndexedArticles

	results.ArticleCounts[iso] = stats.ArticleCount
	results.AvgLengths[iso] = stats.AvgLength
	results.MedianLengths[iso] = stats.MedianLength
	results.RealRatios[iso] = stats.RealRatio
	results.AdjustedSizes[iso] = stats.AdjustedSize
	results.EntropyValues[iso] = stats.Entropy

	results.Manifest.Languages = append(results.Manifest.Languages, outcome)

	s.Log.Info("language analyzed",
		"wiki", out.task.WikiCode,
		"iso", iso,
		"articles", stats.ArticleCount,
		"entropy", stats.Entropy,
		"skippedBlocks", stats.SkippedBlocks,
		"took", out.took)
}

func (s *Scheduler) workerCount(tasks int) int {
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if tasks > 0 && workers > tasks {
		workers = tasks
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
