// Package corpus turns one language's multistream archive into comparable
// article-size statistics. Raw character counts are not comparable across
// orthographies, so lengths get scaled by the ratio of the reference
// language's character entropy to the language's own.
package corpus

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"atlas/debugger"
	"atlas/wikipedia/dump/articles"
	"atlas/wikipedia/dump/multistream"
)

// ErrNoArticles marks an archive that parsed but held no article text. The
// caller skips the language, it is not a failure of the run.
var ErrNoArticles = errors.New("no articles in archive")

type Analyzer struct {
	// Threshold is the adjusted length an article needs to count as real
	// content rather than a stub.
	Threshold float64

	// StripMarkup runs texts through the wikitext parser first. Off by
	// default, the dataset's numbers are over raw wikitext.
	StripMarkup bool

	Debugger *debugger.Debugger
}

// AnalyzeArchive runs index -> blocks -> articles -> stats for one archive.
// refEntropy is the committed phase-1 value; isReference pins the
// normalization factor to 1.0.
func (a *Analyzer) AnalyzeArchive(archivePath, indexPath, wikiCode string, refEntropy float64, isReference bool) (*Stats, error) {
	ix, err := multistream.ReadIndex(indexPath)
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w", indexPath, err)
	}
	if ix.Skipped > 0 {
		a.Debugger.Debugf("%s: %d malformed index lines skipped", wikiCode, ix.Skipped)
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", archivePath, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat archive %s: %w", archivePath, err)
	}

	stats := &Stats{WikiCode: wikiCode, IndexedArticles: ix.Lines}
	acc := NewAccumulator()

	for _, block := range ix.Blocks(fi.Size()) {
		stats.Blocks++

		data, err := multistream.ExtractBlock(f, block)
		if err != nil {
			stats.SkippedBlocks++
			a.Debugger.Debugf("%s: corrupt block at %d (%d bytes): %v", wikiCode, block.Start, block.Size(), err)
			continue
		}

		res := articles.Parse(data)
		if res.Truncated {
			a.Debugger.Debugf("%s: block at %d truncated by parse error", wikiCode, block.Start)
		}

		stats.ArticleCount += len(res.Articles)
		for _, art := range res.Articles {
			text := art.Text
			if a.StripMarkup {
				text = plainText(art.Title, text)
			}
			if text == "" {
				continue
			}
			stats.RawLengths = append(stats.RawLengths, acc.Add(text))
		}
	}

	if len(stats.RawLengths) == 0 {
		return nil, fmt.Errorf("%s: %w", wikiCode, ErrNoArticles)
	}

	stats.Entropy = acc.Entropy()
	stats.Factor = Factor(refEntropy, stats.Entropy, isReference)
	a.finalize(stats)

	return stats, nil
}

// finalize derives the adjusted statistics once entropy and factor are set.
func (a *Analyzer) finalize(s *Stats) {
	s.AdjustedLengths = make([]float64, 0, len(s.RawLengths))

	var sum, realSum float64
	for _, raw := range s.RawLengths {
		adj := float64(raw) * s.Factor
		s.AdjustedLengths = append(s.AdjustedLengths, adj)
		sum += adj
		if adj >= a.Threshold {
			s.RealArticles++
			realSum += adj
		}
	}

	total := len(s.AdjustedLengths)
	if total > 0 {
		s.AvgLength = sum / float64(total)
		s.MedianLength = median(s.AdjustedLengths)
		s.RealRatio = float64(s.RealArticles) / float64(total)
	}
	s.AdjustedSize = realSum
}

func median(vals []float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
