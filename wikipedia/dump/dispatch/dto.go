package dispatch

import "time"

// Task is one language's archive/index pair found in the dump directory.
type Task struct {
	WikiCode    string
	ArchivePath string
	IndexPath   string
}

// Results aggregates per-language statistics keyed by ISO 639-3 code, one map
// per statistic, mirroring the dataset's output files.
type Results struct {
	ArticleCounts map[string]int     `json:"articleCounts"`
	AvgLengths    map[string]float64 `json:"avgLengths"`
	MedianLengths map[string]float64 `json:"medianLengths"`
	RealRatios    map[string]float64 `json:"realRatios"`
	AdjustedSizes map[string]float64 `json:"adjustedSizes"`
	EntropyValues map[string]float64 `json:"entropyValues"`

	Manifest *Manifest `json:"manifest"`
}

func newResults() *Results {
	return &Results{
		ArticleCounts: make(map[string]int),
		AvgLengths:    make(map[string]float64),
		MedianLengths: make(map[string]float64),
		RealRatios:    make(map[string]float64),
		AdjustedSizes: make(map[string]float64),
		EntropyValues: make(map[string]float64),
	}
}

// Manifest records what one run did, for the trace left next to the outputs.
type Manifest struct {
	RunID      string    `json:"runId"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`

	ReferenceWiki    string  `json:"referenceWiki"`
	ReferenceEntropy float64 `json:"referenceEntropy"`
	// ReferenceFallback is set when the reference archive was missing or empty
	// and the default entropy of 1.0 was committed instead.
	ReferenceFallback bool `json:"referenceFallback"`

	Languages []Outcome `json:"languages"`
}

// Outcome is one language's fate in the run.
type Outcome struct {
	WikiCode string `json:"wikiCode"`
	ISOCode  string `json:"isoCode"`
	Articles int    `json:"articles,omitempty"`
	// Indexed is the wiki's index line count, its own article tally.
	Indexed  int           `json:"indexedArticles,omitempty"`
	Duration time.Duration `json:"duration"`
	Err      string        `json:"error,omitempty"`
}
