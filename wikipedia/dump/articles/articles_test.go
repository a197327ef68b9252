package articles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseNamespaceFilter(t *testing.T) {
	block := []byte(`<page><title>Alpha</title><ns>0</ns><revision><text>alpha body</text></revision></page>` +
		`<page><title>Talk:Alpha</title><ns>1</ns><revision><text>talk body</text></revision></page>` +
		`<page><title>Template:T</title><ns>10</ns><revision><text>tpl</text></revision></page>`)

	res := Parse(block)

	require.Equal(t, 3, res.Pages)
	require.False(t, res.Truncated)
	require.Equal(t, []Article{{Title: "Alpha", Text: "alpha body"}}, res.Articles)
}

func TestParseFinalRevisionWins(t *testing.T) {
	block := []byte(`<page><title>Beta</title><ns>0</ns>` +
		`<revision><id>1</id><text>first draft</text></revision>` +
		`<revision><id>2</id><text>second draft</text></revision>` +
		`<revision><id>3</id><text>the keeper</text></revision>` +
		`</page>`)

	res := Parse(block)

	require.Len(t, res.Articles, 1)
	require.Equal(t, "the keeper", res.Articles[0].Text)
}

func TestParsePrefixedTags(t *testing.T) {
	// Export dumps qualify elements with the mediawiki namespace; matching on
	// the local name must still find them.
	block := []byte(`<mw:page xmlns:mw="http://www.mediawiki.org/xml/export-0.11/">` +
		`<mw:title>Gamma</mw:title><mw:ns>0</mw:ns>` +
		`<mw:revision><mw:text>gamma body</mw:text></mw:revision>` +
		`</mw:page>`)

	res := Parse(block)

	require.Equal(t, 1, res.Pages)
	require.Equal(t, []Article{{Title: "Gamma", Text: "gamma body"}}, res.Articles)
}

func TestParseMissingNamespace(t *testing.T) {
	// A page without an <ns> element cannot be confirmed as main namespace.
	block := []byte(`<page><title>NoNS</title><revision><text>body</text></revision></page>`)

	res := Parse(block)

	require.Equal(t, 1, res.Pages)
	require.Empty(t, res.Articles)
}

func TestParseEmptyText(t *testing.T) {
	block := []byte(`<page><title>Empty</title><ns>0</ns><revision><text></text></revision></page>`)

	res := Parse(block)

	require.Equal(t, 1, res.Pages)
	require.Equal(t, []Article{{Title: "Empty", Text: ""}}, res.Articles)
}

func TestParseTruncatedBlock(t *testing.T) {
	block := []byte(`<page><title>Whole</title><ns>0</ns><revision><text>kept</text></revision></page>` +
		`<page><title>Cut</title><ns>0</ns><revision><text>lost mid-el`)

	res := Parse(block)

	require.True(t, res.Truncated)
	require.Equal(t, []Article{{Title: "Whole", Text: "kept"}}, res.Articles)
}

func TestParseGarbage(t *testing.T) {
	res := Parse([]byte("\x00\x01 not xml at all"))

	require.True(t, res.Truncated)
	require.Empty(t, res.Articles)
	require.Equal(t, 0, res.Pages)
}

func TestParseEmptyBlock(t *testing.T) {
	res := Parse(nil)

	require.False(t, res.Truncated)
	require.Equal(t, 0, res.Pages)
	require.Empty(t, res.Articles)
}
