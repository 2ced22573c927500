// Package ingest folds sample files from a drop directory into stored
// accumulators. Each file is newline-separated float64 values; the
// accumulator is named after the file's base name without extension.
package ingest

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yasi-python/cistats/pkg/config"
	"github.com/yasi-python/cistats/pkg/logger"
	"github.com/yasi-python/cistats/pkg/metrics"
	"github.com/yasi-python/cistats/pkg/stats"
	"github.com/yasi-python/cistats/pkg/storage"
)

type Runner struct {
	cfg  config.IngestCfg
	log  *logger.Logger
	db   *storage.DB
	kind stats.MeanKind
}

func New(cfg config.IngestCfg, log *logger.Logger, db *storage.DB) (*Runner, error) {
	kind, err := stats.ParseMeanKind(cfg.MeanKind)
	if err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, log: log, db: db, kind: kind}, nil
}

// Run scans once immediately, then on every tick until ctx is done.
func (r *Runner) Run(ctx context.Context, interval time.Duration) {
	r.RunOnce()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.RunOnce()
		}
	}
}

// RunOnce ingests every not-yet-seen sample file in the drop directory.
func (r *Runner) RunOnce() {
	if r.cfg.Dir == "" {
		return
	}
	paths := []string{}
	for _, pat := range []string{"*.txt", "*.csv"} {
		m, err := filepath.Glob(filepath.Join(r.cfg.Dir, pat))
		if err == nil {
			paths = append(paths, m...)
		}
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		// the mark lives in the same database as the accumulators,
		// so a restarted process does not fold the same file in twice
		if done, err := r.db.WasIngested(p, info.ModTime()); err == nil && done {
			continue
		}
		n, err := r.ingestFile(p)
		if err != nil {
			metrics.IngestFiles.WithLabelValues("error").Inc()
			r.log.Warn("ingest_failed", "path", p, "err", err.Error())
			continue
		}
		if err := r.db.MarkIngested(p, info.ModTime()); err != nil {
			r.log.Warn("ingest_mark_failed", "path", p, "err", err.Error())
		}
		metrics.IngestFiles.WithLabelValues("ok").Inc()
		metrics.IngestedSamples.Add(float64(n))
		r.log.Info("ingested", "path", p, "samples", n)
	}
}

func (r *Runner) ingestFile(path string) (int, error) {
	samples, err := ReadSamples(path)
	if err != nil {
		return 0, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if _, err := r.db.AppendSamples(name, r.kind, samples); err != nil {
		return 0, err
	}
	return len(samples), nil
}

// ReadSamples parses newline- or comma-separated float64 values from a
// file. Blank lines and #-comments are skipped.
func ReadSamples(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseSamples(f)
}

func ParseSamples(f io.Reader) ([]float64, error) {
	out := []float64{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, field := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, sc.Err()
}
