// Package content extracts front matter, heading outlines, verses and a
// markdown node tree from one markdown document.
package content

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// frontMatterFormat accepts only YAML between "---" delimiter lines.
var frontMatterFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// Document is one markdown file split into front matter and body.
type Document struct {
	Path        string         // Path the document was read from
	RawFilename string         // Base file name, ordering prefix and extension included
	Frontmatter map[string]any // Empty when the document has no front matter block
	Body        string         // Markdown without the front matter block
}

// Parse splits raw into front matter and body. A document without a front
// matter block is valid; a block that is present but malformed is an error.
func Parse(path string, raw []byte) (*Document, error) {
	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta, frontMatterFormat)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter in %s: %w", path, err)
	}
	if meta == nil {
		meta = map[string]any{}
	}

	return &Document{
		Path:        path,
		RawFilename: filepath.Base(path),
		Frontmatter: meta,
		Body:        string(body),
	}, nil
}

// ReadFile reads and parses the markdown document at path.
func ReadFile(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return Parse(path, raw)
}

// Title returns the front matter "title" value when it is a non-empty string.
func (d *Document) Title() (string, bool) {
	title, ok := d.Frontmatter["title"].(string)
	return title, ok && title != ""
}

// Headings returns the document's level 1-3 heading outline.
func (d *Document) Headings() []Heading {
	return Headings(d.Body)
}

// Chapters returns the document's level-2 headings.
func (d *Document) Chapters() []Chapter {
	return Chapters(d.Body)
}

// Verses returns the document's verse units numbered by policy.
func (d *Document) Verses(policy VersePolicy) []Verse {
	return Verses(d.Body, policy)
}

// Tree returns the document body as a markdown node tree.
func (d *Document) Tree() []Node {
	return Tree([]byte(d.Body))
}
