// Package analyzer inspects scanned layer trees and reports how a document
// is organized: totals, tag coverage, component categories, and layers that
// look like facial expressions despite missing tags.
package analyzer

import (
	"sort"
	"strings"

	"avatarforge/internal/layertree"
	"avatarforge/internal/pcs"
)

// expressionKeywords flag layers that likely hold facial expressions.
var expressionKeywords = []string{
	"mouth", "expression", "face", "emotion", "smile", "happy", "sad",
	"angry", "neutral", "open", "closed", "surprised", "shocked",
	"delighted", "smug", "annoyed", "sleepy", "laugh",
}

// componentKeywords categorize layers by what part of the character they
// draw. Order matters: the first category whose keyword matches wins.
var componentCategories = []struct {
	name     string
	keywords []string
}{
	{"hair", []string{"hair", "hairstyle", "wig", "bangs", "ponytail", "braid", "pigtail"}},
	{"clothing", []string{"costume", "outfit", "clothes", "dress", "uniform", "shirt", "top", "jacket", "coat", "vest", "sweater"}},
	{"bottom", []string{"pants", "skirt", "shorts", "trousers", "jeans", "leggings"}},
	{"shoes", []string{"shoes", "boots", "sandals", "sneakers", "heels", "footwear"}},
	{"accessories", []string{"accessories", "glasses", "hat", "cap", "crown", "jewelry", "necklace", "earrings", "bracelet", "ring", "bow", "ribbon"}},
	{"expression", []string{"expression", "face", "emotion", "mouth", "smile", "happy", "sad", "angry", "neutral", "surprised", "shocked", "delighted", "smug", "annoyed", "sleepy", "laugh"}},
	{"eyes", []string{"eyes", "eye", "wink", "blink", "eyelash", "eyebrow"}},
	{"body", []string{"body", "base", "skin", "torso", "chest", "bust", "arms", "legs", "hands"}},
	{"effects", []string{"effect", "glow", "sparkle", "shadow", "highlight", "aura", "magic"}},
	{"background", []string{"background", "bg", "backdrop", "scenery", "environment"}},
}

// OtherCategory collects layers no keyword category claims.
const OtherCategory = "other"

// ExpressionLayer is a layer whose name matched expression keywords.
type ExpressionLayer struct {
	Name     string
	Path     string
	Keywords []string
	Visible  bool
	Bounds   pcs.Box
}

// Analysis summarizes the structure of one document.
type Analysis struct {
	Name        string
	Source      string
	Width       int
	Height      int
	TotalLayers int
	Tagged      int
	Untagged    int
	Groups      int

	Expressions []ExpressionLayer
	Components  map[string][]string
}

// Analyze builds an analysis from a document and its scanned records.
func Analyze(doc layertree.Document, records []pcs.LayerRecord) *Analysis {
	a := &Analysis{
		Components: map[string][]string{},
	}
	if doc != nil {
		a.Name = doc.Name()
		a.Source = doc.Source()
		a.Width = doc.Width()
		a.Height = doc.Height()
		a.Groups = countGroups(doc.Layers())
	}

	a.TotalLayers = len(records)
	for _, record := range records {
		if record.Tag != nil {
			a.Tagged++
		} else {
			a.Untagged++
		}

		lower := strings.ToLower(record.BaseName)
		if matched := matchKeywords(lower); len(matched) > 0 {
			a.Expressions = append(a.Expressions, ExpressionLayer{
				Name:     record.Name,
				Path:     record.PathString(),
				Keywords: matched,
				Visible:  record.Visible,
				Bounds:   record.Bounds,
			})
		}

		category := categorize(lower)
		a.Components[category] = append(a.Components[category], record.Name)
	}

	for _, names := range a.Components {
		sort.Strings(names)
	}
	return a
}

// CoverageRatio reports the fraction of layers carrying a tag.
func (a *Analysis) CoverageRatio() float64 {
	if a.TotalLayers == 0 {
		return 0
	}
	return float64(a.Tagged) / float64(a.TotalLayers)
}

// Categories returns the non-empty component categories in sorted order.
func (a *Analysis) Categories() []string {
	out := make([]string, 0, len(a.Components))
	for category := range a.Components {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

func matchKeywords(lowerName string) []string {
	var matched []string
	for _, keyword := range expressionKeywords {
		if strings.Contains(lowerName, keyword) {
			matched = append(matched, keyword)
		}
	}
	return matched
}

func categorize(lowerName string) string {
	for _, category := range componentCategories {
		for _, keyword := range category.keywords {
			if strings.Contains(lowerName, keyword) {
				return category.name
			}
		}
	}
	return OtherCategory
}

func countGroups(nodes []layertree.Node) int {
	count := 0
	for _, node := range nodes {
		if kids := node.Children(); len(kids) > 0 {
			count++
			count += countGroups(kids)
		}
	}
	return count
}
