// Package pipeline orchestrates a full avatar build: scan the layer tree,
// classify layers, aggregate slots, pack the atlas, synthesize expression
// graphs, and write the bundle to disk.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"avatarforge/internal/atlas"
	"avatarforge/internal/bundle"
	"avatarforge/internal/config"
	"avatarforge/internal/graph"
	"avatarforge/internal/layertree"
	"avatarforge/internal/logging"
	"avatarforge/internal/pcs"
	"avatarforge/internal/rules"
	"avatarforge/internal/scanner"
	"avatarforge/internal/slots"
)

// Version is stamped into the avatar manifest's generator field.
const Version = "0.3.0"

// Output file names inside the bundle directory.
const (
	ReportFileName = "report.md"
)

// Result summarizes a completed build.
type Result struct {
	OutputDir string
	Records   []pcs.LayerRecord
	Slots     *slots.Result
	Layout    *atlas.Layout
	Report    *slots.Report
	Graphs    []string
	Skipped   []string
}

// Builder runs the avatar pipeline for one document.
type Builder struct {
	cfg    *config.Config
	logger *slog.Logger
	engine *rules.Engine
}

// NewBuilder wires a builder from configuration, loading the rule file when
// one is configured and falling back to the built-in rules otherwise.
func NewBuilder(cfg *config.Config, logger *slog.Logger) (*Builder, error) {
	if cfg == nil {
		return nil, Wrap(ErrConfiguration, "build", "init", "configuration is required", nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	set := rules.DefaultSet()
	if cfg.Rules.File != "" {
		loaded, err := rules.LoadFile(cfg.Rules.File)
		if err != nil {
			return nil, Wrap(ErrConfiguration, "build", "load rules", cfg.Rules.File, err)
		}
		set = loaded
	}

	return &Builder{
		cfg:    cfg,
		logger: logging.WithComponent(logger, "pipeline"),
		engine: rules.NewEngine(set, logger),
	}, nil
}

// Build processes the document directory at sourceDir and writes the bundle
// into outputDir. An empty outputDir falls back to the configured default.
func (b *Builder) Build(ctx context.Context, sourceDir, outputDir string) (*Result, error) {
	if outputDir == "" {
		outputDir = b.cfg.Paths.OutputDir
	}

	doc, err := layertree.OpenDir(sourceDir)
	if err != nil {
		return nil, Wrap(ErrNotFound, "build", "open document", sourceDir, err)
	}

	records := scanner.New(b.logger).Scan(doc)
	records = b.engine.Apply(records)

	agg := slots.Aggregate(records)
	report := slots.BuildReport(records, agg)

	if b.cfg.Build.Strict && len(report.Warnings) > 0 {
		return nil, Wrap(ErrCoverage, "build", "coverage check",
			strings.Join(report.Warnings, "; "), nil)
	}

	layout, skipped, err := b.packAtlas(ctx, doc, agg)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, Wrap(ErrValidation, "build", "create output dir", outputDir, err)
	}

	if err := layout.WritePNG(filepath.Join(outputDir, bundle.AtlasFileName)); err != nil {
		return nil, Wrap(ErrRender, "build", "write atlas", "", err)
	}

	av := bundle.New(doc.Name(), doc.Source(), Version, agg, layout)
	if err := av.WriteFile(filepath.Join(outputDir, "avatar.json")); err != nil {
		return nil, Wrap(ErrValidation, "build", "write manifest", "", err)
	}

	graphs, err := b.writeGraphs(outputDir, agg)
	if err != nil {
		return nil, err
	}

	reportPath := filepath.Join(outputDir, ReportFileName)
	if err := os.WriteFile(reportPath, []byte(report.Markdown(agg.Slots)), 0o644); err != nil {
		return nil, Wrap(ErrValidation, "build", "write report", reportPath, err)
	}

	b.logger.Info("build complete",
		slog.String("document", doc.Name()),
		slog.Int("layers", len(records)),
		slog.Int("slots", len(agg.Slots)),
		slog.Int("atlas_width", layout.Width),
		slog.Int("atlas_height", layout.Height),
		slog.Int("skipped_layers", len(skipped)))

	return &Result{
		OutputDir: outputDir,
		Records:   records,
		Slots:     agg,
		Layout:    layout,
		Report:    report,
		Graphs:    graphs,
		Skipped:   skipped,
	}, nil
}

// packAtlas renders every slot member and packs the results. A layer whose
// render fails is skipped with a warning unless strict mode is on. Slots are
// visited in sorted key order so identical inputs always pack identically.
func (b *Builder) packAtlas(ctx context.Context, doc layertree.Document, agg *slots.Result) (*atlas.Layout, []string, error) {
	var entries []atlas.Entry
	var skipped []string
	seen := map[string]struct{}{}

	slotKeys := make([]string, 0, len(agg.Members))
	for key := range agg.Members {
		slotKeys = append(slotKeys, key)
	}
	sort.Strings(slotKeys)

	for _, slotKey := range slotKeys {
		for _, record := range agg.Members[slotKey] {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
			key := record.SliceKey()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			node := scanner.FindNodeByPath(doc, record.Path)
			if node == nil {
				skipped = append(skipped, record.Name)
				b.logger.Warn("layer missing from document", slog.String("layer", record.Name))
				continue
			}
			img, err := node.Render()
			if err != nil {
				if b.cfg.Build.Strict {
					return nil, nil, Wrap(ErrRender, "build", "render layer", record.Name, err)
				}
				skipped = append(skipped, record.Name)
				b.logger.Warn("layer render failed",
					slog.String("layer", record.Name),
					slog.Any("error", err))
				continue
			}
			entries = append(entries, atlas.Entry{Key: key, Image: img})
		}
	}

	return atlas.Pack(entries), skipped, nil
}

func (b *Builder) writeGraphs(outputDir string, agg *slots.Result) ([]string, error) {
	builder := graph.NewBuilder(agg.Slots)
	var written []string
	for _, preset := range b.cfg.Graph.Presets {
		g, err := builder.Build(preset)
		if err != nil {
			return nil, Wrap(ErrConfiguration, "build", "graph preset", preset, err)
		}
		raw, err := g.Marshal()
		if err != nil {
			return nil, Wrap(ErrValidation, "build", "marshal graph", preset, err)
		}
		path := filepath.Join(outputDir, fmt.Sprintf("graph.%s.json", preset))
		if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
			return nil, Wrap(ErrValidation, "build", "write graph", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
