// Command atlas runs the language feature-table pipeline: "analyze" mines the
// Wikipedia multistream dumps into per-language statistics, "reconcile" merges
// every source table into the master CSV, "all" chains both with the fresh
// statistics feeding the merge.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"atlas/config"
	"atlas/debugger"
	"atlas/reconcile"
	"atlas/wikipedia/dump/corpus"
	"atlas/wikipedia/dump/dispatch"
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: atlas <analyze|reconcile|all>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := config.NewLogger(cfg)

	runID := uuid.NewString()
	dbg, err := debugger.NewDebugger(cfg.OutDir, runID)
	if err != nil {
		log.Error("trace file unavailable", "err", err)
		os.Exit(1)
	}
	defer dbg.Close()

	switch args[0] {
	case "analyze":
		if _, err := analyze(cfg, log, dbg); err != nil {
			log.Error("analyze failed", "err", err)
			os.Exit(1)
		}
	case "reconcile":
		if err := reconcileMaster(cfg, log, reconcile.DefaultPaths(cfg.DataDir)); err != nil {
			log.Error("reconcile failed", "err", err)
			os.Exit(1)
		}
	case "all":
		if _, err := analyze(cfg, log, dbg); err != nil {
			log.Error("analyze failed", "err", err)
			os.Exit(1)
		}
		paths := reconcile.DefaultPaths(cfg.DataDir)
		// The merge consumes this run's statistics instead of stale copies.
		paths.JSONFeatures = freshFeatures(cfg.OutDir, paths.JSONFeatures)
		if err := reconcileMaster(cfg, log, paths); err != nil {
			log.Error("reconcile failed", "err", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		os.Exit(2)
	}
}

func analyze(cfg *config.Config, log *slog.Logger, dbg *debugger.Debugger) (*dispatch.Results, error) {
	sched := &dispatch.Scheduler{
		DumpDir: cfg.DumpDir,
		WikiToISO: dispatch.LoadWikiToISO(
			filepath.Join(cfg.DataDir, "wiki_code_to_iso_code.json"), log),
		ReferenceWiki: cfg.ReferenceWiki,
		Workers:       cfg.Workers,
		Analyzer: &corpus.Analyzer{
			Threshold:   cfg.RealArticleThreshold,
			StripMarkup: cfg.StripMarkup,
			Debugger:    dbg,
		},
		Log:      log,
		Debugger: dbg,
	}

	results, err := sched.Run(context.Background())
	if err != nil {
		return nil, err
	}
	if err := results.WriteOutputs(cfg.OutDir); err != nil {
		return nil, err
	}

	log.Info("analysis done",
		"languages", len(results.EntropyValues),
		"out", cfg.OutDir,
		"trace", dbg.Path())

	return results, nil
}

func reconcileMaster(cfg *config.Config, log *slog.Logger, paths reconcile.Paths) error {
	engine := reconcile.NewEngine(log, paths)

	rows, err := engine.WriteMaster(
		filepath.Join(cfg.OutDir, "master_features_by_code.csv"),
		filepath.Join(cfg.OutDir, "data_codes.json"),
	)
	if err != nil {
		return err
	}

	log.Info("reconcile done", "rows", rows)

	return nil
}

// freshFeatures repoints the merge's JSON features at this run's outputs
// where the analyzer produces them.
func freshFeatures(outDir string, features []reconcile.JSONFeature) []reconcile.JSONFeature {
	produced := map[string]string{
		"adjustedwpsize":    dispatch.AdjustedSizesFile,
		"articles":          dispatch.CountsFile,
		"realtotalratio":    dispatch.RealRatiosFile,
		"avggoodpagelength": dispatch.AvgLengthsFile,
	}

	out := make([]reconcile.JSONFeature, len(features))
	copy(out, features)
	for i, feat := range out {
		if name, ok := produced[feat.Name]; ok {
			out[i].Path = filepath.Join(outDir, name)
		}
	}
	return out
}
