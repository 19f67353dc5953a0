// Package convert runs one XES to ARFF conversion.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/telhawk-systems/xes2arff/internal/emitter"
	"github.com/telhawk-systems/xes2arff/internal/logging"
	"github.com/telhawk-systems/xes2arff/internal/metrics"
	"github.com/telhawk-systems/xes2arff/internal/projection"
	"github.com/telhawk-systems/xes2arff/internal/selector"
	"github.com/telhawk-systems/xes2arff/internal/xes"
)

// ErrNoFile is returned when the input path is not a regular file.
var ErrNoFile = errors.New("No file found.")

// Options describe one conversion.
type Options struct {
	DataPath   string
	ResultsDir string
	// Classifier skips the interactive prompt when set.
	Classifier string
	// Strict requires the classifier to be an event attribute key.
	Strict      bool
	MetricsFile string
}

// Report summarizes a finished conversion.
type Report struct {
	RunID      string
	Classifier string
	Tables     []emitter.Emitted
	Stats      projection.Stats
	Duration   time.Duration
}

// Converter wires the conversion steps together.
type Converter struct {
	logger  *logging.Logger
	metrics *metrics.Metrics
	in      io.Reader
	out     io.Writer
}

// New returns a Converter. in and out are used for the classifier prompt.
func New(logger *logging.Logger, m *metrics.Metrics, in io.Reader, out io.Writer) *Converter {
	if logger == nil {
		logger = logging.Default()
	}
	if m == nil {
		m = metrics.New()
	}
	return &Converter{
		logger:  logger,
		metrics: m,
		in:      in,
		out:     out,
	}
}

// Run converts opts.DataPath into one ARFF file per classifier value.
func (c *Converter) Run(ctx context.Context, opts Options) (*Report, error) {
	started := time.Now()

	id, _ := uuid.NewV7()
	runID := id.String()
	ctx = logging.ContextWithRunID(ctx, runID)

	info, err := os.Stat(opts.DataPath)
	if err != nil || !info.Mode().IsRegular() {
		return nil, ErrNoFile
	}

	if err := os.MkdirAll(opts.ResultsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}

	raw, err := os.ReadFile(opts.DataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", opts.DataPath, err)
	}

	classifier, err := c.chooseClassifier(raw, opts.Classifier)
	if err != nil {
		return nil, err
	}
	c.logger.InfoContext(ctx, "classifier selected", logging.Classifier(classifier))

	log, err := xes.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", opts.DataPath, err)
	}

	if opts.Strict {
		if err := selector.ValidateStructural(log, classifier); err != nil {
			return nil, err
		}
	}

	result := projection.Scan(log, classifier, projection.WithDropHandler(func(pos int) {
		c.logger.WarnContext(ctx, "event without chosen classifier", logging.Position(pos))
	}))

	c.metrics.EventsScanned.Add(float64(result.Stats.Events))
	c.metrics.EventsDropped.Add(float64(result.Stats.Dropped))
	c.metrics.Buckets.Set(float64(len(result.Buckets)))
	c.logger.InfoContext(ctx, "log scanned",
		logging.Events(result.Stats.Events),
		logging.Rows(result.Rows()),
		slog.Int("buckets", len(result.Buckets)),
		slog.Int("dropped", result.Stats.Dropped),
	)

	report := &Report{
		RunID:      runID,
		Classifier: classifier,
		Stats:      result.Stats,
	}

	em := emitter.New(opts.ResultsDir, c.logger)
	for _, b := range result.Buckets {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		out, err := em.Emit(ctx, b)
		if err != nil {
			c.metrics.EmitErrors.Inc()
			return report, err
		}
		c.metrics.FilesWritten.Inc()
		c.metrics.RowsWritten.WithLabelValues(b.Name).Add(float64(out.Rows))
		report.Tables = append(report.Tables, out)
	}

	report.Duration = time.Since(started)
	c.metrics.ConvertDuration.Observe(report.Duration.Seconds())
	c.logger.InfoContext(ctx, "conversion finished",
		logging.Path(opts.ResultsDir),
		logging.Duration(report.Duration.Milliseconds()),
	)

	if opts.MetricsFile != "" {
		if err := c.metrics.WriteTextfile(opts.MetricsFile); err != nil {
			return report, err
		}
	}

	return report, nil
}

func (c *Converter) chooseClassifier(raw []byte, preset string) (string, error) {
	if preset != "" {
		if err := selector.Validate(raw, preset); err != nil {
			return "", err
		}
		return preset, nil
	}
	if c.in == nil {
		return "", selector.ErrNoClassifier
	}
	out := c.out
	if out == nil {
		out = io.Discard
	}
	return selector.NewPrompter(c.in, out).Choose(raw)
}
