package rules

import (
	"log/slog"

	"avatarforge/internal/pcs"
)

// Engine applies a rule set to scanned layer records.
type Engine struct {
	set    *Set
	logger *slog.Logger
}

// NewEngine constructs an engine over the given rule set. A nil set falls
// back to the built-in defaults; a nil logger disables logging. The set's
// alias rules are priority-sorted here so directly constructed sets behave
// the same as loaded ones.
func NewEngine(set *Set, logger *slog.Logger) *Engine {
	if set == nil {
		set = DefaultSet()
	}
	set.sortAliases()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{set: set, logger: logger}
}

// Apply returns a new record list in which every layer the rules can classify
// carries a tag. Records with an explicit tag pass through untouched;
// inference never overrides authored annotations, and the language pack only
// rewrites visemes the rules themselves inferred.
func (e *Engine) Apply(records []pcs.LayerRecord) []pcs.LayerRecord {
	out := make([]pcs.LayerRecord, len(records))
	for i, record := range records {
		out[i] = record
		if record.Tag != nil {
			continue
		}
		out[i].Tag = e.infer(record)
		e.translate(&out[i])
	}
	return out
}

// infer runs alias rules first, folder rules second; the first match wins and
// no fields from later matches are merged in.
func (e *Engine) infer(record pcs.LayerRecord) *pcs.Tag {
	for i := range e.set.Aliases {
		rule := &e.set.Aliases[i]
		if rule.Matches(record.Name) {
			e.logger.Debug("alias rule matched",
				slog.String("layer", record.Name),
				slog.String("pattern", rule.Match))
			return (*pcs.Tag)(nil).Apply(rule.Map)
		}
	}
	for i := range e.set.Folders {
		rule := &e.set.Folders[i]
		if rule.Matches(record.PathString()) {
			e.logger.Debug("folder rule matched",
				slog.String("layer", record.Name),
				slog.String("path", rule.Path))
			return (*pcs.Tag)(nil).Apply(rule.Map)
		}
	}
	return nil
}

// translate rewrites the viseme through the language pack, replacing the tag
// rather than mutating a value other records may share.
func (e *Engine) translate(record *pcs.LayerRecord) {
	if record.Tag == nil || record.Tag.Viseme == "" || len(e.set.LanguagePack) == 0 {
		return
	}
	translated := e.set.TranslateViseme(record.Tag.Viseme)
	if translated == record.Tag.Viseme {
		return
	}
	tag := record.Tag.Clone()
	tag.Viseme = translated
	record.Tag = tag
}
