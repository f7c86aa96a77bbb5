// Package sitemap renders sitemap.xml for the site's static pages.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rustbible/internal/navigation"
)

// DefaultBaseURL is the public origin of the site.
const DefaultBaseURL = "https://the-rust-bible.github.io"

const namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URLSet is the sitemap document root.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL is one sitemap entry.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Build lists home, every book, the lessons index, every lesson and every
// section. lastmod is the build date for all entries.
func Build(baseURL string, ix *navigation.Index, date time.Time) *URLSet {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	lastMod := date.UTC().Format(time.DateOnly)

	set := &URLSet{Xmlns: namespace}
	add := func(path, freq, priority string) {
		set.URLs = append(set.URLs, URL{
			Loc:        base + path,
			LastMod:    lastMod,
			ChangeFreq: freq,
			Priority:   priority,
		})
	}

	add(navigation.HomePath, "weekly", "1.0")
	for _, b := range ix.Books {
		add(b.URL(), "monthly", "0.8")
	}
	add(navigation.LessonsPath, "weekly", "0.9")
	for _, l := range ix.Lessons {
		add(l.URL(), "monthly", "0.8")
		for _, s := range l.Sections {
			add(navigation.SectionURL(l.Slug, s.Slug), "monthly", "0.7")
		}
	}
	return set
}

// Marshal renders the sitemap with an XML declaration and two-space indent.
func (s *URLSet) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sitemap: %w", err)
	}
	out := append([]byte(xml.Header), body...)
	return append(out, '\n'), nil
}

// WriteFile writes the sitemap to path, creating parent directories.
func WriteFile(path string, s *URLSet) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write sitemap %s: %w", path, err)
	}
	return nil
}
