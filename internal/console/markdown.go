// ABOUTME: Markdown flattening for bot replies in the chat transcript
// ABOUTME: Goldmark AST walk producing plain wrapped terminal text

package console

import (
	"fmt"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// markdownParserInstance is initialized once and reused. The parser
// configuration never changes and the goldmark Parser is safe to
// share; actual parsing creates per-call state via Parse(reader).
var (
	markdownParserInstance goldmark.Markdown
	markdownParserOnce     sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownParserInstance
}

// flattenMarkdown converts a markdown bot reply into plain text for
// the transcript. Soft line breaks within paragraphs become spaces so
// hard-wrapped replies reflow at any terminal width; lists keep their
// bullets and code blocks keep their line structure. Inline emphasis
// markers are dropped rather than rendered.
func flattenMarkdown(input string) string {
	if input == "" {
		return ""
	}
	source := []byte(input)
	reader := text.NewReader(source)
	document := getMarkdownParser().Parser().Parse(reader)

	flattener := &markdownFlattener{source: source}
	ast.Walk(document, flattener.walk)

	return strings.TrimRight(flattener.output.String(), "\n")
}

// markdownFlattener walks a goldmark AST and accumulates plain text.
type markdownFlattener struct {
	source []byte
	output strings.Builder
	inline strings.Builder

	// List nesting state.
	listStack []flatListState
	// Pending bullet for the next flushed block.
	pendingBullet string
}

type flatListState struct {
	ordered bool
	counter int
}

// flushInline writes the accumulated inline content as one block,
// prefixed with any pending bullet.
func (f *markdownFlattener) flushInline() {
	content := f.inline.String()
	f.inline.Reset()
	if content == "" {
		return
	}
	if f.pendingBullet != "" {
		content = f.pendingBullet + content
		f.pendingBullet = ""
	}
	f.output.WriteString(content)
	f.output.WriteString("\n")
}

func (f *markdownFlattener) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {

	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			f.inline.Reset()
		} else {
			f.flushInline()
		}

	case ast.KindHeading:
		if entering {
			f.inline.Reset()
		} else {
			f.flushInline()
		}

	case ast.KindFencedCodeBlock, ast.KindCodeBlock:
		if entering {
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				segment := lines.At(i)
				f.output.Write(segment.Value(f.source))
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindList:
		if entering {
			list := node.(*ast.List)
			counter := 0
			if list.IsOrdered() {
				counter = list.Start
			}
			f.listStack = append(f.listStack, flatListState{
				ordered: list.IsOrdered(),
				counter: counter,
			})
		} else if len(f.listStack) > 0 {
			f.listStack = f.listStack[:len(f.listStack)-1]
		}

	case ast.KindListItem:
		if entering && len(f.listStack) > 0 {
			top := &f.listStack[len(f.listStack)-1]
			if top.ordered {
				f.pendingBullet = fmt.Sprintf("%d. ", top.counter)
				top.counter++
			} else {
				f.pendingBullet = "- "
			}
		}

	case ast.KindText:
		if entering {
			textNode := node.(*ast.Text)
			f.inline.Write(textNode.Segment.Value(f.source))
			if textNode.SoftLineBreak() {
				f.inline.WriteString(" ")
			}
			if textNode.HardLineBreak() {
				f.inline.WriteString("\n")
			}
		}

	case ast.KindString:
		if entering {
			f.inline.Write(node.(*ast.String).Value)
		}

	case ast.KindCodeSpan:
		if entering {
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if textNode, ok := child.(*ast.Text); ok {
					f.inline.Write(textNode.Segment.Value(f.source))
				}
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if !entering {
			url := string(node.(*ast.Link).Destination)
			if url != "" {
				f.inline.WriteString(" (" + url + ")")
			}
		}

	case ast.KindAutoLink:
		if entering {
			f.inline.Write(node.(*ast.AutoLink).URL(f.source))
		}
	}

	return ast.WalkContinue, nil
}
