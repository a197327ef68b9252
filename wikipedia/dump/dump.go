package dump

import "regexp"

// The main/content namespace. Talk, User, Template etc. are all > 0.
const MainNamespace = 0

// Dump file naming, as published on the Wikimedia mirrors:
//
//	<code>wiki-<YYYYMMDD>-pages-articles-multistream.xml.bz2
//	<code>wiki-<YYYYMMDD>-pages-articles-multistream-index.txt.bz2
var (
	ArchivePattern = regexp.MustCompile(`^([a-z]{2,3})wiki-.*-pages-articles-multistream\.xml\.bz2$`)
	IndexPattern   = regexp.MustCompile(`^([a-z]{2,3})wiki-.*-multistream-index\.txt\.bz2$`)
)

// Conventions of the upstream dataset. Both are overridable through config,
// their derivation is undocumented there as well.
const (
	DefaultReferenceWiki        = "de"
	DefaultRealArticleThreshold = 450
)
