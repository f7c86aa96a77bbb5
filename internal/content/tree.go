package content

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"rustbible/internal/slug"
)

// Node is a markdown tree node: either Text or Element.
type Node interface {
	isNode()
}

// Text is a run of literal text.
type Text struct {
	Value string
}

// Element is a tagged node with optional attributes and children.
type Element struct {
	Tag      string
	Attrs    map[string]string
	Children []Node
}

func (Text) isNode()    {}
func (Element) isNode() {}

// MarshalJSON encodes a Text as {"type":"text","value":...}.
func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{Type: "text", Value: t.Value})
}

// MarshalJSON encodes an Element as {"type":"element","tag":...}.
func (e Element) MarshalJSON() ([]byte, error) {
	children := e.Children
	if children == nil {
		children = []Node{}
	}
	return json.Marshal(struct {
		Type     string            `json:"type"`
		Tag      string            `json:"tag"`
		Attrs    map[string]string `json:"attrs,omitempty"`
		Children []Node            `json:"children"`
	}{Type: "element", Tag: e.Tag, Attrs: e.Attrs, Children: children})
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Tree parses body with goldmark and converts the AST into Text and Element
// nodes. Level 1-3 ATX headings take their "id" attribute from Headings, so
// every outline id is an anchor in the tree. Headings the outline does not
// list (setext, quoted, list-item) get no id.
func Tree(body []byte) []Node {
	doc := markdown.Parser().Parse(text.NewReader(body))
	b := &treeBuilder{source: body, outline: Headings(string(body))}
	return b.children(doc)
}

// PlainText concatenates the text content of nodes.
func PlainText(nodes ...Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		writeText(&sb, n)
	}
	return sb.String()
}

func writeText(sb *strings.Builder, n Node) {
	switch v := n.(type) {
	case Text:
		sb.WriteString(v.Value)
	case Element:
		for _, c := range v.Children {
			writeText(sb, c)
		}
	}
}

type treeBuilder struct {
	source  []byte
	outline []Heading
	next    int // First outline entry not yet assigned to a tree heading
}

// headingID returns the outline id of an ATX heading, consuming outline
// entries in document order.
func (b *treeBuilder) headingID(node *ast.Heading) (string, bool) {
	if !b.plainATX(node) {
		return "", false
	}
	base := slug.Text(b.lines(node))
	for i := b.next; i < len(b.outline); i++ {
		h := b.outline[i]
		if h.Level == node.Level && slug.Text(h.Text) == base {
			b.next = i + 1
			return h.ID, true
		}
	}
	return "", false
}

// plainATX reports whether node was written as "#" markers preceded only by
// spaces on its line, the form Headings recognizes.
func (b *treeBuilder) plainATX(node *ast.Heading) bool {
	lines := node.Lines()
	if lines.Len() == 0 {
		return false
	}
	start := lines.At(0).Start
	lineStart := bytes.LastIndexByte(b.source[:start], '\n') + 1
	prefix := b.source[lineStart:start]
	marker := bytes.IndexByte(prefix, '#')
	return marker >= 0 && len(bytes.TrimLeft(prefix[:marker], " ")) == 0
}

func (b *treeBuilder) children(n ast.Node) []Node {
	var out []Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, b.convert(c)...)
	}
	return out
}

// convert maps one goldmark node to tree nodes. Inline text nodes may expand
// to a text node followed by a line break element.
func (b *treeBuilder) convert(n ast.Node) []Node {
	switch node := n.(type) {
	case *ast.Text:
		out := []Node{Text{Value: string(node.Segment.Value(b.source))}}
		switch {
		case node.HardLineBreak():
			out = append(out, Element{Tag: "br"})
		case node.SoftLineBreak():
			out = append(out, Text{Value: " "})
		}
		return out

	case *ast.String:
		return []Node{Text{Value: string(node.Value)}}

	case *ast.Heading:
		el := Element{Tag: "h" + strconv.Itoa(node.Level), Children: b.children(node)}
		if node.Level <= 3 {
			if id, ok := b.headingID(node); ok {
				el.Attrs = map[string]string{"id": id}
			}
		}
		return []Node{el}

	case *ast.Paragraph, *ast.TextBlock:
		if _, tight := n.(*ast.TextBlock); tight {
			return b.children(node)
		}
		return []Node{Element{Tag: "p", Children: b.children(node)}}

	case *ast.Blockquote:
		return []Node{Element{Tag: "blockquote", Children: b.children(node)}}

	case *ast.List:
		tag := "ul"
		var attrs map[string]string
		if node.IsOrdered() {
			tag = "ol"
			if node.Start != 1 {
				attrs = map[string]string{"start": strconv.Itoa(node.Start)}
			}
		}
		return []Node{Element{Tag: tag, Attrs: attrs, Children: b.children(node)}}

	case *ast.ListItem:
		return []Node{Element{Tag: "li", Children: b.children(node)}}

	case *ast.FencedCodeBlock:
		el := Element{Tag: "pre", Children: []Node{Text{Value: b.lines(node)}}}
		if lang := string(node.Language(b.source)); lang != "" {
			el.Attrs = map[string]string{"lang": lang}
		}
		return []Node{el}

	case *ast.CodeBlock:
		return []Node{Element{Tag: "pre", Children: []Node{Text{Value: b.lines(node)}}}}

	case *ast.CodeSpan:
		return []Node{Element{Tag: "code", Children: b.children(node)}}

	case *ast.Emphasis:
		tag := "em"
		if node.Level >= 2 {
			tag = "strong"
		}
		return []Node{Element{Tag: tag, Children: b.children(node)}}

	case *ast.Link:
		return []Node{Element{
			Tag:      "a",
			Attrs:    map[string]string{"href": string(node.Destination)},
			Children: b.children(node),
		}}

	case *ast.AutoLink:
		url := string(node.URL(b.source))
		return []Node{Element{
			Tag:      "a",
			Attrs:    map[string]string{"href": url},
			Children: []Node{Text{Value: string(node.Label(b.source))}},
		}}

	case *ast.Image:
		return []Node{Element{
			Tag:      "img",
			Attrs:    map[string]string{"src": string(node.Destination)},
			Children: b.children(node),
		}}

	case *ast.ThematicBreak:
		return []Node{Element{Tag: "hr"}}

	case *ast.HTMLBlock:
		return []Node{Element{Tag: "html", Children: []Node{Text{Value: b.lines(node)}}}}

	case *ast.RawHTML:
		var sb strings.Builder
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			sb.Write(seg.Value(b.source))
		}
		return []Node{Element{Tag: "html", Children: []Node{Text{Value: sb.String()}}}}

	case *east.Table:
		return []Node{Element{Tag: "table", Children: b.children(node)}}

	case *east.TableHeader:
		return []Node{Element{Tag: "thead", Children: b.children(node)}}

	case *east.TableRow:
		return []Node{Element{Tag: "tr", Children: b.children(node)}}

	case *east.TableCell:
		return []Node{Element{Tag: "td", Children: b.children(node)}}

	case *east.Strikethrough:
		return []Node{Element{Tag: "del", Children: b.children(node)}}

	default:
		return []Node{Element{Tag: strings.ToLower(n.Kind().String()), Children: b.children(node)}}
	}
}

// lines joins the raw source lines of a block node.
func (b *treeBuilder) lines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(b.source))
	}
	return strings.TrimSpace(sb.String())
}
