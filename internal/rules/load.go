package rules

import (
	"encoding/json"
	"fmt"
	"os"
)

type ruleFile struct {
	Aliases []struct {
		Match    string            `json:"match"`
		Map      map[string]string `json:"map"`
		Priority int               `json:"priority"`
	} `json:"aliases"`
	Folders []struct {
		Path string            `json:"path"`
		Map  map[string]string `json:"map"`
	} `json:"folders"`
	LanguagePack map[string]string `json:"language_pack"`
}

// LoadFile reads a rule configuration from a JSON file.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var parsed ruleFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	set := &Set{LanguagePack: parsed.LanguagePack}
	for _, alias := range parsed.Aliases {
		set.Aliases = append(set.Aliases, AliasRule{
			Match:    alias.Match,
			Map:      alias.Map,
			Priority: alias.Priority,
		})
	}
	for _, folder := range parsed.Folders {
		set.Folders = append(set.Folders, FolderRule{Path: folder.Path, Map: folder.Map})
	}
	set.sortAliases()
	return set, nil
}

// WriteDefaultFile writes the built-in rule set to path in the JSON rule file
// format, giving users a starting point for customization.
func WriteDefaultFile(path string) error {
	set := DefaultSet()

	out := ruleFile{LanguagePack: map[string]string{}}
	for _, alias := range set.Aliases {
		out.Aliases = append(out.Aliases, struct {
			Match    string            `json:"match"`
			Map      map[string]string `json:"map"`
			Priority int               `json:"priority"`
		}{Match: alias.Match, Map: alias.Map, Priority: alias.Priority})
	}
	for _, folder := range set.Folders {
		out.Folders = append(out.Folders, struct {
			Path string            `json:"path"`
			Map  map[string]string `json:"map"`
		}{Path: folder.Path, Map: folder.Map})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal default rules: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write rules file: %w", err)
	}
	return nil
}
