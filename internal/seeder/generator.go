// Package seeder generates synthetic XES event logs.
package seeder

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/telhawk-systems/xes2arff/internal/config"
	"github.com/telhawk-systems/xes2arff/internal/xes"
)

// XES attribute keys written by the generator.
const (
	KeyName       = "concept:name"
	KeyTimestamp  = "time:timestamp"
	KeyResource   = "org:resource"
	KeyTransition = "lifecycle:transition"
	KeyCost       = "cost"
	KeyItems      = "items"
	KeyApproved   = "approved"
)

// TimestampLayout matches the XES date format with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Generator builds synthetic logs. The same seed always yields the same log.
type Generator struct {
	cfg       config.SeedConfig
	start     time.Time
	faker     *gofakeit.Faker
	resources []string
}

// New returns a Generator for cfg.
func New(cfg config.SeedConfig) (*Generator, error) {
	start, err := cfg.StartTime()
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	if cfg.Resources < 1 {
		return nil, fmt.Errorf("resources must be positive, got %d", cfg.Resources)
	}
	if len(cfg.Activities) == 0 {
		return nil, fmt.Errorf("at least one activity is required")
	}

	faker := gofakeit.New(cfg.Seed)

	seen := make(map[string]bool, cfg.Resources)
	resources := make([]string, 0, cfg.Resources)
	for len(resources) < cfg.Resources {
		name := faker.FirstName()
		for n := 2; seen[name]; n++ {
			name = faker.FirstName() + strconv.Itoa(n)
		}
		seen[name] = true
		resources = append(resources, name)
	}

	return &Generator{
		cfg:       cfg,
		start:     start,
		faker:     faker,
		resources: resources,
	}, nil
}

// Resources returns the resource pool events are assigned from.
func (g *Generator) Resources() []string {
	return append([]string(nil), g.resources...)
}

// Generate builds a log of cfg.Traces traces with cfg.EventsPerTrace events each.
func (g *Generator) Generate() *xes.Log {
	log := &xes.Log{
		Attributes: []xes.Attribute{
			{Key: KeyName, Value: "synthetic log", Type: xes.Tag(xes.KindString)},
		},
		Traces: make([]xes.Trace, 0, g.cfg.Traces),
	}

	caseStart := g.start
	for i := 0; i < g.cfg.Traces; i++ {
		tr := xes.Trace{
			Attributes: []xes.Attribute{
				{Key: KeyName, Value: fmt.Sprintf("case-%d", i+1), Type: xes.Tag(xes.KindString)},
			},
			Events: make([]xes.Event, 0, g.cfg.EventsPerTrace),
		}

		ts := caseStart
		for j := 0; j < g.cfg.EventsPerTrace; j++ {
			ts = ts.Add(g.gap())
			tr.Events = append(tr.Events, g.event(ts))
		}
		log.Traces = append(log.Traces, tr)

		caseStart = caseStart.Add(g.gap())
	}

	return log
}

func (g *Generator) gap() time.Duration {
	maxSeconds := int(g.cfg.MaxGap / time.Second)
	if maxSeconds < 1 {
		maxSeconds = 1
	}
	return time.Duration(g.faker.IntRange(1, maxSeconds)) * time.Second
}

func (g *Generator) event(ts time.Time) xes.Event {
	attrs := []xes.Attribute{
		{Key: KeyName, Value: g.faker.RandomString(g.cfg.Activities), Type: xes.Tag(xes.KindString)},
		{Key: KeyTimestamp, Value: ts.Format(TimestampLayout), Type: xes.Tag(xes.KindDate)},
	}

	if g.faker.Float64Range(0, 1) >= g.cfg.MissingRate {
		attrs = append(attrs, xes.Attribute{
			Key: KeyResource, Value: g.faker.RandomString(g.resources), Type: xes.Tag(xes.KindString),
		})
	}

	attrs = append(attrs,
		xes.Attribute{Key: KeyTransition, Value: g.faker.RandomString([]string{"start", "complete"}), Type: xes.Tag(xes.KindString)},
		xes.Attribute{Key: KeyCost, Value: strconv.FormatFloat(g.faker.Float64Range(5, 500), 'f', 2, 64), Type: xes.Tag(xes.KindFloat)},
		xes.Attribute{Key: KeyItems, Value: strconv.Itoa(g.faker.IntRange(1, 20)), Type: xes.Tag(xes.KindInt)},
		xes.Attribute{Key: KeyApproved, Value: strconv.FormatBool(g.faker.Bool()), Type: xes.Tag(xes.KindBoolean)},
	)

	return xes.Event{Attributes: attrs}
}

// Write generates a log and encodes it to w. It returns the number of events.
func (g *Generator) Write(w io.Writer) (int, error) {
	log := g.Generate()
	if err := xes.Encode(w, log); err != nil {
		return 0, err
	}
	return log.EventCount(), nil
}
