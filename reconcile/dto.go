package reconcile

import "path/filepath"

// Entity is one canonical language row of the master table. Code is chosen
// with priority ISO 639-3 > Glottocode > raw source code.
type Entity struct {
	Code       string
	ISO        string
	Glottocode string
}

// JSONFeature is one code-keyed JSON dict merged into the master table.
type JSONFeature struct {
	Name string
	Path string
}

// Paths locates every input of the engine. Any missing file contributes
// nothing; it never fails the build.
type Paths struct {
	ISORegistry string
	Glottolog   string

	JSONFeatures []JSONFeature

	Ethnologue string
	WALS       string
	JW         string
	OSSupport  string
	Tatoeba    string
}

// DefaultPaths wires the dataset's conventional file names under dataDir.
func DefaultPaths(dataDir string) Paths {
	j := func(name string) string { return filepath.Join(dataDir, name) }
	return Paths{
		ISORegistry: j("iso-639-3.tab"),
		Glottolog:   j("glottolog_languages.csv"),
		JSONFeatures: []JSONFeature{
			{Name: "adjustedwpsize", Path: j("iso_adjusted_wikipedia_sizes.json")},
			{Name: "articles", Path: j("Articles.json")},
			{Name: "wpincubatornew", Path: j("WPincubatornew.json")},
			{Name: "wpsizeinchars", Path: j("WPsizeinchars.json")},
			{Name: "realtotalratio", Path: j("Realtotalratio.json")},
			{Name: "avggoodpagelength", Path: j("Avggoodpagelength.json")},
		},
		Ethnologue: j("ethnologue_language_data.csv"),
		WALS:       j("wals_languages.csv"),
		JW:         j("jw_availability_by_iso.csv"),
		OSSupport:  j("os_support_windows.csv"),
		Tatoeba:    j("tatoeba_sentences_by_language.csv"),
	}
}

// Header fixes the master table's column order.
var Header = []string{
	"code", "iso639_3", "glottocode",
	"adjustedwpsize", "articles", "wpincubatornew", "wpsizeinchars", "realtotalratio", "avggoodpagelength",
	"Population Size", "Institutional (%)", "Stable (%)", "Endangered (%)", "Extinct (%)", "Digital Support",
	"has_glottolog", "Does_have_bible", "os_supported", "tatoeba_sentences", "has_wals",
}
