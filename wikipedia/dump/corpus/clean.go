package corpus

import (
	"github.com/m-m-f/gowiki"
)

// plainText strips wiki markup before length and entropy accounting. The
// dataset's convention is raw wikitext, so this only runs when StripMarkup is
// enabled. Unparseable markup falls back to the raw text; a stub or vandalized
// page must not lose its length contribution.
func plainText(title, text string) string {
	if text == "" {
		return text
	}

	article, err := gowiki.ParseArticle(title, text, &gowiki.DummyPageGetter{})
	if err != nil {
		return text
	}

	plain := article.GetText()
	if plain == "" {
		return text
	}
	return plain
}
