// Package matching decides which runners get notified about a new order
// based on their stored preferences.
//
// Two preference representations exist in the database. The original MVP
// stored a flat JSON array of free-form tags; the current client writes a
// structured object with accepted order types and price bounds. The variant
// is discriminated once at load time, and the legacy form is deliberately
// inert: it never produces a match, so stale tag lists cannot spam runners.
package matching

import (
	"bytes"
	"encoding/json"
	"fmt"

	"campus-errand-api/models"
)

// Preferences is the decoded form of a user's stored preference blob.
type Preferences interface {
	// Matches reports whether the order satisfies every configured
	// criterion. Preferences with no criteria never match.
	Matches(order *models.Order) bool
}

// Legacy is the old flat tag-list format. Retained for backward
// compatibility but excluded from notification matching.
type Legacy struct {
	Tags []string
}

// Matches always reports false for legacy preferences.
func (Legacy) Matches(*models.Order) bool { return false }

// Structured is the current preference format. All fields are optional;
// tags are stored but do not participate in the match decision.
type Structured struct {
	Types    []string `json:"types,omitempty"`
	PriceMin *float64 `json:"priceMin,omitempty"`
	PriceMax *float64 `json:"priceMax,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// hasCriteria reports whether any matchable constraint is configured.
// Tags alone do not count.
func (p *Structured) hasCriteria() bool {
	return len(p.Types) > 0 || p.PriceMin != nil || p.PriceMax != nil
}

func (p *Structured) Matches(order *models.Order) bool {
	if !p.hasCriteria() {
		return false
	}
	if len(p.Types) > 0 && !contains(p.Types, string(order.Type)) {
		return false
	}
	if p.PriceMin != nil && order.Price < *p.PriceMin {
		return false
	}
	if p.PriceMax != nil && order.Price > *p.PriceMax {
		return false
	}
	return true
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Parse decodes a stored preference blob into its variant. An empty or null
// blob decodes to empty Structured preferences, which never match. A
// malformed blob returns an error; callers matching many candidates should
// skip the candidate rather than abort.
func Parse(raw []byte) (Preferences, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &Structured{}, nil
	}
	if trimmed[0] == '[' {
		var tags []string
		if err := json.Unmarshal(trimmed, &tags); err != nil {
			return nil, fmt.Errorf("parse legacy preferences: %w", err)
		}
		return Legacy{Tags: tags}, nil
	}
	var prefs Structured
	if err := json.Unmarshal(trimmed, &prefs); err != nil {
		return nil, fmt.Errorf("parse preferences: %w", err)
	}
	return &prefs, nil
}
