package models

import (
	"math"
	"strings"
)

// Report is the verdict document returned by the fact-check API.
type Report struct {
	Summary        string          `json:"summary"`
	VerifiedClaims []VerifiedClaim `json:"verified_claims"`
	Stats          *Stats          `json:"stats,omitempty"`
}

// VerifiedClaim is one claim extracted from the submitted text and its verdict.
type VerifiedClaim struct {
	ClaimText string   `json:"claim_text"`
	Result    string   `json:"result"`
	Reasoning string   `json:"reasoning"`
	Sources   []Source `json:"sources"`
}

// Source is an evidence document backing a verdict.
type Source struct {
	URL           string `json:"url"`
	Title         string `json:"title,omitempty"`
	Text          string `json:"text,omitempty"`
	IsInfluential bool   `json:"is_influential,omitempty"`
}

// Stats holds verdict percentages, expected to sum to 100.
type Stats struct {
	Supported    float64 `json:"supported"`
	Refuted      float64 `json:"refuted"`
	Insufficient float64 `json:"insufficient"`
	Conflicting  float64 `json:"conflicting"`
}

// Segment is one slice of the verdict progress bar.
type Segment struct {
	Name  string
	Width float64
	Left  float64
}

// Valid reports whether the report carries a claims sequence at all.
// An empty sequence is valid; a missing one is not.
func (r *Report) Valid() bool {
	return r != nil && r.VerifiedClaims != nil
}

// Category returns the lower-cased first word of the verdict label.
// The label set is open, so the category is derived rather than enumerated.
func (c VerifiedClaim) Category() string {
	fields := strings.Fields(c.Result)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// LinkText returns the title, or "Source" when the source has none.
func (s Source) LinkText() string {
	if s.Title == "" {
		return "Source"
	}
	return s.Title
}

// Segments returns the four progress bar segments in their fixed order.
// Each segment starts where the previous ones end.
func (s Stats) Segments() []Segment {
	segments := []Segment{
		{Name: "supported", Width: s.Supported},
		{Name: "refuted", Width: s.Refuted},
		{Name: "insufficient", Width: s.Insufficient},
		{Name: "conflicting", Width: s.Conflicting},
	}

	var offset float64
	for i := range segments {
		segments[i].Left = offset
		offset += segments[i].Width
	}
	return segments
}

// ComputeStats derives verdict percentages from the claims, rounded to one
// decimal place. Used when the API omits stats.
func ComputeStats(claims []VerifiedClaim) Stats {
	if len(claims) == 0 {
		return Stats{}
	}

	var supported, refuted, insufficient, conflicting int
	for _, c := range claims {
		switch c.Category() {
		case "supported":
			supported++
		case "refuted":
			refuted++
		case "insufficient":
			insufficient++
		case "conflicting":
			conflicting++
		}
	}

	total := float64(len(claims))
	pct := func(n int) float64 {
		return math.Round(float64(n)/total*1000) / 10
	}

	return Stats{
		Supported:    pct(supported),
		Refuted:      pct(refuted),
		Insufficient: pct(insufficient),
		Conflicting:  pct(conflicting),
	}
}

// StatsOrComputed returns the API stats when present, otherwise derived ones.
func (r *Report) StatsOrComputed() Stats {
	if r.Stats != nil {
		return *r.Stats
	}
	return ComputeStats(r.VerifiedClaims)
}

// TopSources returns up to n sources across all claims, in claim order.
func (r *Report) TopSources(n int) []Source {
	var out []Source
	for _, c := range r.VerifiedClaims {
		for _, s := range c.Sources {
			if len(out) == n {
				return out
			}
			out = append(out, s)
		}
	}
	return out
}
