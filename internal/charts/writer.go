package charts

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"trackplume/internal"
	"trackplume/internal/errors"

	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many charts render at once
const DefaultConcurrency = 4

// Writer renders chart jobs into PNG files under a directory
type Writer struct {
	dir         string
	concurrency int
	logger      *internal.Logger
}

// NewWriter creates a writer targeting dir
func NewWriter(dir string, logger *internal.Logger) *Writer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Writer{dir: dir, concurrency: DefaultConcurrency, logger: logger.With("charts")}
}

// Render writes one chart as PNG to w
func Render(job Job, w io.Writer) error {
	if err := job.Chart.Render(chart.PNG, w); err != nil {
		return errors.RenderFailure(job.Name, err)
	}
	return nil
}

// WriteAll renders every job to <dir>/<name>.png and returns the paths in job order.
// The first failure cancels the remaining renders.
func (w *Writer) WriteAll(ctx context.Context, jobs []Job) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create chart directory %s", w.dir)
	}

	paths := make([]string, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(w.dir, job.Name+".png")
			if err := writeFile(path, job); err != nil {
				return err
			}
			w.logger.Debug("Rendered %s", path)
			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func writeFile(path string, job Job) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.RenderFailure(job.Name, err)
	}
	if err := Render(job, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.RenderFailure(job.Name, err)
	}
	return nil
}
