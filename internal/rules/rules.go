package rules

import (
	"regexp"
	"sort"
	"strings"
)

// AliasRule maps layer display names to tag fields via a regular expression.
type AliasRule struct {
	// Match is the pattern applied case-insensitively to the display name.
	Match string
	// Map holds the tag fields to assign when the rule fires.
	Map map[string]string
	// Priority orders evaluation; higher runs first. Ties keep declaration
	// order.
	Priority int

	compiled *regexp.Regexp
	broken   bool
}

// Matches reports whether the rule applies to the layer name. Rules with an
// invalid pattern never match.
func (r *AliasRule) Matches(layerName string) bool {
	if r.broken {
		return false
	}
	if r.compiled == nil {
		pattern := r.Match
		if !strings.HasPrefix(pattern, "(?i)") {
			pattern = "(?i)" + pattern
		}
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			r.broken = true
			return false
		}
		r.compiled = compiled
	}
	return r.compiled.MatchString(layerName)
}

// FolderRule maps ancestry paths to tag fields via substring containment.
type FolderRule struct {
	// Path is matched case-insensitively anywhere in the slash-joined
	// ancestry path.
	Path string
	// Map holds the tag fields to assign when the rule fires.
	Map map[string]string
}

// Matches reports whether the rule applies to the given ancestry path.
func (r *FolderRule) Matches(path string) bool {
	return strings.Contains(strings.ToLower(path), strings.ToLower(r.Path))
}

// Set is a complete rule configuration.
type Set struct {
	Aliases []AliasRule
	Folders []FolderRule

	// LanguagePack rewrites viseme vocabularies after a tag is resolved.
	// Visemes absent from the map pass through unchanged.
	LanguagePack map[string]string
}

// sortAliases orders alias rules by descending priority with a stable sort so
// declaration order breaks ties.
func (s *Set) sortAliases() {
	sort.SliceStable(s.Aliases, func(i, j int) bool {
		return s.Aliases[i].Priority > s.Aliases[j].Priority
	})
}

// TranslateViseme applies the language pack to a viseme value.
func (s *Set) TranslateViseme(viseme string) string {
	if translated, ok := s.LanguagePack[viseme]; ok {
		return translated
	}
	return viseme
}
