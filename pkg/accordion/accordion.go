// Package accordion holds the per-claim expand/collapse state of the
// companion page and applies it to a rendered claims list.
package accordion

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// State is the visibility of one claim's detail panel.
type State int

const (
	Collapsed State = iota
	Expanded
)

func (s State) String() string {
	if s == Expanded {
		return "expanded"
	}
	return "collapsed"
}

// Next returns the state a click moves s to.
func Next(s State) State {
	if s == Expanded {
		return Collapsed
	}
	return Expanded
}

// Glyph returns the indicator icon name shown for s.
func Glyph(s State) string {
	if s == Expanded {
		return "chevron-up"
	}
	return "chevron-down"
}

// Controller tracks independent states per claim index. Every index starts
// collapsed; any number may be expanded at once.
type Controller struct {
	mu       sync.Mutex
	expanded map[int]bool
}

// NewController creates a controller with every claim collapsed.
func NewController() *Controller {
	return &Controller{expanded: make(map[int]bool)}
}

// State returns the state of claim index.
func (c *Controller) State(index int) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expanded[index] {
		return Expanded
	}
	return Collapsed
}

// Toggle moves claim index to its next state and returns it.
func (c *Controller) Toggle(index int) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	var cur State
	if c.expanded[index] {
		cur = Expanded
	}
	next := Next(cur)
	if next == Expanded {
		c.expanded[index] = true
	} else {
		delete(c.expanded, index)
	}
	return next
}

// Expanded returns the expanded indices in ascending order.
func (c *Controller) Expanded() []int {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]int, 0, len(c.expanded))
	for i := range c.expanded {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Encode returns the open query value for the current state.
func (c *Controller) Encode() string {
	return encode(c.Expanded())
}

// encodeToggled returns the open query value after toggling index, without
// changing the controller.
func (c *Controller) encodeToggled(index int) string {
	open := c.Expanded()
	out := open[:0:0]
	found := false
	for _, i := range open {
		if i == index {
			found = true
			continue
		}
		out = append(out, i)
	}
	if !found {
		out = append(out, index)
		sort.Ints(out)
	}
	return encode(out)
}

func encode(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ",")
}

// ParseOpen builds a controller from an open query value such as "0,2".
// Each listed index is toggled once, so a repeated index cancels out.
func ParseOpen(value string) (*Controller, error) {
	c := NewController()
	if strings.TrimSpace(value) == "" {
		return c, nil
	}
	for _, part := range strings.Split(value, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("invalid claim index %q", part)
		}
		c.Toggle(idx)
	}
	return c, nil
}

// Apply syncs a rendered claims list with the controller: the detail panel
// is hidden unless expanded, the chevron shows the matching glyph, and each
// header links to the state reached by clicking it.
func (c *Controller) Apply(doc *goquery.Document, basePath string) {
	doc.Find(".claim-item").Each(func(_ int, item *goquery.Selection) {
		raw, ok := item.Attr("data-index")
		if !ok {
			return
		}
		index, err := strconv.Atoi(raw)
		if err != nil {
			return
		}

		state := c.State(index)
		content := item.Find(fmt.Sprintf("#claim-content-%d", index))
		if state == Expanded {
			content.RemoveClass("hidden")
		} else {
			content.AddClass("hidden")
		}
		item.Find(fmt.Sprintf("#chevron-%d", index)).SetAttr("data-lucide", Glyph(state))

		href := basePath
		if open := c.encodeToggled(index); open != "" {
			href += "?open=" + open
		}
		item.Find(".claim-header").SetAttr("href", href)
	})
}
