// Package articles incrementally parses the XML inside one decompressed
// multistream block. A block is a bare concatenation of <page> elements, not a
// full document, which is fine for a token walk.
package articles

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"atlas/wikipedia/dump"
)

// Article is one main-namespace page with the text of its latest revision.
// Earlier revisions are discarded without inspection.
type Article struct {
	Title string
	Text  string
}

// Result carries the articles of one block plus parse accounting.
type Result struct {
	Articles []Article

	// Pages counts every page element seen, any namespace.
	Pages int

	// Truncated is set when a parse error cut the block short. Whatever was
	// parsed before the error is still in Articles.
	Truncated bool
}

// Parse walks the block token by token. Only page, ns, and revision/text are
// inspected; element subtrees are released as soon as their value is read, so
// memory stays bounded by the largest single text, not the block.
//
// Tag names are compared on the local part only, namespace prefixes stripped.
func Parse(block []byte) *Result {
	res := new(Result)

	dec := xml.NewDecoder(bytes.NewReader(block))

	var (
		inPage     bool
		inRevision bool
		pageNS     int
		nsSeen     bool
		title      string
		text       string
	)

	for {
		tok, err := dec.Token()
		if err != nil {
			// io.EOF is the clean end; anything else truncates the block but
			// must not abort the archive scan.
			if err != io.EOF {
				res.Truncated = true
			}
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "page":
				inPage = true
				inRevision = false
				pageNS = 0
				nsSeen = false
				title = ""
				text = ""
			case "ns":
				if inPage && !inRevision {
					var raw string
					if err := dec.DecodeElement(&raw, &t); err != nil {
						res.Truncated = true
						return res
					}
					n, err := strconv.Atoi(strings.TrimSpace(raw))
					if err == nil {
						pageNS = n
						nsSeen = true
					}
				}
			case "title":
				if inPage && !inRevision {
					if err := dec.DecodeElement(&title, &t); err != nil {
						res.Truncated = true
						return res
					}
				}
			case "revision":
				inRevision = true
			case "text":
				if inRevision {
					// Overwriting on every revision keeps only the final one.
					if err := dec.DecodeElement(&text, &t); err != nil {
						res.Truncated = true
						return res
					}
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "revision":
				inRevision = false
			case "page":
				if inPage {
					res.Pages++
					if nsSeen && pageNS == dump.MainNamespace {
						res.Articles = append(res.Articles, Article{Title: title, Text: text})
					}
				}
				inPage = false
			}
		}
	}

	return res
}
