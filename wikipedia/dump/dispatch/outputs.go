package dispatch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Output file names, kept exactly as the downstream table builder expects.
const (
	CountsFile        = "iso_article_counts.json"
	AvgLengthsFile    = "iso_avg_article_lengths.json"
	MedianLengthsFile = "iso_median_article_lengths.json"
	RealRatiosFile    = "iso_real_ratios.json"
	AdjustedSizesFile = "iso_adjusted_wikipedia_sizes.json"
	EntropyFile       = "iso_entropy_values.json"
	ManifestFile      = "run_manifest.json"
)

// WriteOutputs persists one JSON mapping per statistic plus the run manifest.
func (r *Results) WriteOutputs(outDir string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	files := []struct {
		name string
		v    any
	}{
		{CountsFile, r.ArticleCounts},
		{AvgLengthsFile, r.AvgLengths},
		{MedianLengthsFile, r.MedianLengths},
		{RealRatiosFile, r.RealRatios},
		{AdjustedSizesFile, r.AdjustedSizes},
		{EntropyFile, r.EntropyValues},
		{ManifestFile, r.Manifest},
	}

	for _, file := range files {
		if err := writeJSON(filepath.Join(outDir, file.name), file.v); err != nil {
			return fmt.Errorf("write %s: %w", file.name, err)
		}
	}

	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
