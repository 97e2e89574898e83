// Package batch processes every avatar source directory under a root with a
// bounded worker pool, isolating per-document failures.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"avatarforge/internal/config"
	"avatarforge/internal/jobs"
	"avatarforge/internal/layertree"
	"avatarforge/internal/logging"
	"avatarforge/internal/pipeline"
)

// lockFileName guards an output root against concurrent batch runs.
const lockFileName = ".avatarforge.lock"

// SummaryFileName is the per-run report written into the output root.
const SummaryFileName = "batch_summary.json"

// ItemResult is the outcome for one source directory.
type ItemResult struct {
	Source    string  `json:"source"`
	OutputDir string  `json:"output_dir"`
	Layers    int     `json:"layers,omitempty"`
	Slots     int     `json:"slots,omitempty"`
	Error     string  `json:"error,omitempty"`
	Seconds   float64 `json:"seconds"`
}

// Summary aggregates a whole batch run.
type Summary struct {
	Total     int          `json:"total"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Items     []ItemResult `json:"items"`
}

// Processor runs the avatar pipeline over many documents.
type Processor struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *jobs.Store
}

// NewProcessor wires a batch processor. The jobs store is optional; when nil
// no ledger rows are written.
func NewProcessor(cfg *config.Config, logger *slog.Logger, store *jobs.Store) (*Processor, error) {
	if cfg == nil {
		return nil, pipeline.Wrap(pipeline.ErrConfiguration, "batch", "init", "configuration is required", nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Processor{
		cfg:    cfg,
		logger: logging.WithComponent(logger, "batch"),
		store:  store,
	}, nil
}

// Discover lists document directories directly under root whose names match
// the configured pattern, sorted by name.
func (p *Processor) Discover(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, pipeline.Wrap(pipeline.ErrNotFound, "batch", "read input dir", root, err)
	}

	var sources []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		matched, err := filepath.Match(p.cfg.Batch.Pattern, entry.Name())
		if err != nil {
			return nil, pipeline.Wrap(pipeline.ErrConfiguration, "batch", "match pattern", p.cfg.Batch.Pattern, err)
		}
		if !matched {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if layertree.IsDocumentDir(dir) {
			sources = append(sources, dir)
		}
	}
	sort.Strings(sources)
	return sources, nil
}

// Run processes every discovered document under root, writing each bundle
// into its own subdirectory of outputRoot. The output root is locked for
// the duration of the run.
func (p *Processor) Run(ctx context.Context, root, outputRoot string) (*Summary, error) {
	if outputRoot == "" {
		outputRoot = p.cfg.Paths.OutputDir
	}
	sources, err := p.Discover(root)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return nil, pipeline.Wrap(pipeline.ErrValidation, "batch", "create output root", outputRoot, err)
	}

	lock := flock.New(filepath.Join(outputRoot, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, pipeline.Wrap(pipeline.ErrValidation, "batch", "lock output root", outputRoot, err)
	}
	if !locked {
		return nil, pipeline.Wrap(pipeline.ErrValidation, "batch", "lock output root",
			"another batch run holds the lock", nil)
	}
	defer func() { _ = lock.Unlock() }()

	results := make([]ItemResult, len(sources))
	workers := p.cfg.Batch.Workers
	if workers > len(sources) {
		workers = len(sources)
	}
	if workers < 1 {
		workers = 1
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			builder, err := pipeline.NewBuilder(p.cfg, p.logger)
			for i := range indexes {
				if err != nil {
					results[i] = ItemResult{Source: sources[i], Error: err.Error()}
					continue
				}
				results[i] = p.processOne(ctx, builder, sources[i], outputRoot)
			}
		}()
	}
	for i := range sources {
		select {
		case indexes <- i:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(indexes)
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := &Summary{Total: len(results), Items: results}
	for _, item := range results {
		if item.Error == "" {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	if err := writeSummary(filepath.Join(outputRoot, SummaryFileName), summary); err != nil {
		return nil, err
	}

	p.logger.Info("batch complete",
		slog.Int("total", summary.Total),
		slog.Int("succeeded", summary.Succeeded),
		slog.Int("failed", summary.Failed))
	return summary, nil
}

func (p *Processor) processOne(ctx context.Context, builder *pipeline.Builder, source, outputRoot string) ItemResult {
	started := time.Now()
	outputDir := filepath.Join(outputRoot, filepath.Base(source))
	item := ItemResult{Source: source, OutputDir: outputDir}

	var job *jobs.Job
	if p.store != nil {
		var err error
		if job, err = p.store.Begin(ctx, jobs.KindBatch, source, outputDir); err != nil {
			p.logger.Warn("job ledger unavailable", slog.Any("error", err))
		}
	}

	result, err := builder.Build(ctx, source, outputDir)
	item.Seconds = time.Since(started).Seconds()
	if err != nil {
		item.Error = err.Error()
		p.logger.Warn("document failed",
			slog.String("source", source),
			slog.Any("error", err))
		if job != nil {
			if ferr := p.store.Fail(ctx, job.ID, err.Error()); ferr != nil {
				p.logger.Warn("job ledger update failed", slog.Any("error", ferr))
			}
		}
		return item
	}

	item.Layers = len(result.Records)
	item.Slots = len(result.Slots.Slots)
	if job != nil {
		if cerr := p.store.Complete(ctx, job.ID, item.Layers, item.Slots); cerr != nil {
			p.logger.Warn("job ledger update failed", slog.Any("error", cerr))
		}
	}
	return item
}

func writeSummary(path string, summary *Summary) error {
	raw, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return pipeline.Wrap(pipeline.ErrValidation, "batch", "marshal summary", "", err)
	}
	raw = append(raw, '\n')
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return pipeline.Wrap(pipeline.ErrValidation, "batch", "write summary", path, err)
	}
	return nil
}

// FormatSummary renders a one-line human summary.
func FormatSummary(summary *Summary) string {
	return fmt.Sprintf("%d processed, %d succeeded, %d failed",
		summary.Total, summary.Succeeded, summary.Failed)
}
