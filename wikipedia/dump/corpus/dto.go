package corpus

// Stats holds everything computed for one language's archive. Lengths are in
// characters (runes); adjusted values are in reference-language-equivalent
// character units.
type Stats struct {
	WikiCode string `json:"wikiCode"`
	ISOCode  string `json:"isoCode"`

	// ArticleCount counts every main-namespace page, empty ones included.
	ArticleCount int `json:"articleCount"`

	// IndexedArticles is the raw index line count, the wiki's own notion of
	// how many articles it holds. Differs from ArticleCount when the index
	// names pages outside the main namespace.
	IndexedArticles int `json:"indexedArticles"`

	RawLengths      []int     `json:"-"`
	AdjustedLengths []float64 `json:"-"`

	Entropy float64 `json:"entropy"`
	Factor  float64 `json:"factor"`

	RealArticles int     `json:"realArticles"`
	AvgLength    float64 `json:"avgLength"`
	MedianLength float64 `json:"medianLength"`
	RealRatio    float64 `json:"realRatio"`
	AdjustedSize float64 `json:"adjustedSize"`

	// Scan accounting.
	Blocks        int `json:"blocks"`
	SkippedBlocks int `json:"skippedBlocks"`
}
