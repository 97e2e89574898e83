// Package scanner walks a layer document depth-first and produces the ordered
// layer records the rest of the pipeline consumes.
package scanner

import (
	"log/slog"
	"strings"

	"avatarforge/internal/layertree"
	"avatarforge/internal/pcs"
)

// guide layer prefixes; authoring aids that are never classified or packed.
const (
	guideHashPrefix = "#"
	guideWordPrefix = "_guide"
)

// Scanner converts a layer document into flat, ordered layer records.
type Scanner struct {
	logger *slog.Logger
}

// New constructs a scanner. A nil logger disables logging.
func New(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scanner{logger: logger}
}

// Scan walks the document depth-first in document order. Every non-guide
// layer is returned with its ancestry path and any explicit tag parsed from
// its name.
func (s *Scanner) Scan(doc layertree.Document) []pcs.LayerRecord {
	records := make([]pcs.LayerRecord, 0, 32)
	for _, node := range doc.Layers() {
		s.walk(node, nil, &records)
	}
	s.logger.Debug("scanned document",
		slog.String("document", doc.Name()),
		slog.Int("layers", len(records)))
	return records
}

func (s *Scanner) walk(node layertree.Node, path []string, records *[]pcs.LayerRecord) {
	name := node.Name()
	if IsGuideName(name) {
		s.logger.Debug("skipping guide layer", slog.String("layer", name))
		return
	}

	base, tag := pcs.ParseName(name)
	record := pcs.LayerRecord{
		Name:      name,
		BaseName:  base,
		Path:      appendPath(path, name),
		Index:     len(*records),
		Visible:   node.Visible(),
		BlendMode: node.BlendMode(),
		Bounds:    node.Bounds(),
		Tag:       tag,
	}
	*records = append(*records, record)

	for _, child := range node.Children() {
		s.walk(child, record.Path, records)
	}
}

// IsGuideName reports whether a layer name marks an authoring guide.
func IsGuideName(name string) bool {
	return strings.HasPrefix(name, guideHashPrefix) ||
		strings.HasPrefix(name, guideWordPrefix)
}

// appendPath copies before appending so sibling walks never share backing
// arrays.
func appendPath(path []string, name string) []string {
	out := make([]string, 0, len(path)+1)
	out = append(out, path...)
	return append(out, name)
}

// FindNodeByPath re-resolves a scanned record back to its renderable node by
// walking the record's ancestry path segment by segment. Matching on the full
// path keeps same-named leaves under different groups distinct.
func FindNodeByPath(doc layertree.Document, path []string) layertree.Node {
	if len(path) == 0 {
		return nil
	}
	candidates := doc.Layers()
	var node layertree.Node
	for _, name := range path {
		node = nil
		for _, candidate := range candidates {
			if candidate.Name() == name {
				node = candidate
				break
			}
		}
		if node == nil {
			return nil
		}
		candidates = node.Children()
	}
	return node
}
