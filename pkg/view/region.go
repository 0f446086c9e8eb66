// Package view holds the display targets the renderers write into: a
// replaceable results region and the submit/loading controls.
package view

import (
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// Region is a display area whose whole content is replaced on each render.
type Region interface {
	Replace(fragment string) error
}

// Decorator re-derives visual decorations on a freshly replaced document.
type Decorator func(doc *goquery.Document)

// MemoryRegion is an in-memory Region backed by a goquery document.
// Decorators run after every Replace and on Redecorate.
type MemoryRegion struct {
	mu         sync.Mutex
	doc        *goquery.Document
	decorators []Decorator
}

// NewMemoryRegion creates an empty region.
func NewMemoryRegion(decorators ...Decorator) *MemoryRegion {
	r := &MemoryRegion{decorators: decorators}
	_ = r.Replace("")
	return r
}

// Replace parses fragment as the new region content.
func (r *MemoryRegion) Replace(fragment string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fmt.Errorf("failed to parse fragment: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc = doc
	r.decorate()
	return nil
}

// Document returns the current document. Callers that mutate it should
// call Redecorate afterwards.
func (r *MemoryRegion) Document() *goquery.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doc
}

// Redecorate reruns the decorators against the current document.
func (r *MemoryRegion) Redecorate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decorate()
}

func (r *MemoryRegion) decorate() {
	for _, d := range r.decorators {
		d(r.doc)
	}
}

// HTML returns the region content as an HTML fragment.
func (r *MemoryRegion) HTML() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doc.Find("body").Html()
}

// Text returns the text content of the region.
func (r *MemoryRegion) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doc.Find("body").Text()
}

// iconGlyphs maps lucide icon names to the glyph shown server-side.
var iconGlyphs = map[string]string{
	"chevron-down":  "▾",
	"chevron-up":    "▴",
	"external-link": "↗",
}

// Icons renders every element carrying a data-lucide attribute as its glyph.
// Unknown icons are left untouched.
func Icons(doc *goquery.Document) {
	doc.Find("[data-lucide]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("data-lucide")
		if glyph, ok := iconGlyphs[name]; ok {
			s.SetText(glyph)
		}
	})
}
