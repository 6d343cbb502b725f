// Package extract runs tree-mode queries over note markup:
//  1. Block extraction: every element carrying a data-block-id
//  2. Headline: the text of the first paragraph
package extract

import (
	"fmt"
	"strings"

	"github.com/LaffeyOvO/notesnook/core"
	"github.com/LaffeyOvO/notesnook/core/markup"
	"github.com/PuerkitoBio/goquery"
)

// blockSelector finds block-tagged elements at any depth, in document order.
const blockSelector = "[" + core.AttrBlockID + "]"

// BlockExtractor pulls blocks and headlines out of a parsed note.
type BlockExtractor struct {
	flattener core.Flattener
}

// New creates a BlockExtractor that flattens block content with f.
func New(f core.Flattener) *BlockExtractor {
	return &BlockExtractor{flattener: f}
}

// Blocks returns one ContentBlock per element with a non-empty block id.
// Duplicate ids are returned as they appear.
func (e *BlockExtractor) Blocks(html string) ([]core.ContentBlock, error) {
	doc, err := markup.ParseDocument(html)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	blocks := []core.ContentBlock{}
	var firstErr error
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr(core.AttrBlockID)
		if id == "" || firstErr != nil {
			return
		}
		outer, err := goquery.OuterHtml(s)
		if err != nil {
			firstErr = fmt.Errorf("serializing block %s: %w", id, err)
			return
		}
		blocks = append(blocks, core.ContentBlock{
			ID:      id,
			Type:    strings.ToLower(goquery.NodeName(s)),
			Content: e.flattener.Flatten(outer),
		})
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return blocks, nil
}

// Headline returns the whitespace-collapsed text of the first <p>, or ""
// when the note has no paragraph.
func (e *BlockExtractor) Headline(html string) string {
	doc, err := markup.ParseDocument(html)
	if err != nil {
		return ""
	}
	p := doc.Find("p").First()
	if p.Length() == 0 {
		return ""
	}
	return strings.Join(strings.Fields(p.Text()), " ")
}
