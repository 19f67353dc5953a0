// Package projection groups log events by a classifier attribute and builds
// the unified schema of every group.
package projection

import (
	"github.com/telhawk-systems/xes2arff/internal/xes"
)

// Stats counts what a scan did with the events it saw.
type Stats struct {
	Events  int
	Kept    int
	Dropped int
	// DroppedAt lists the zero-based document positions of dropped events.
	DroppedAt []int
}

// DropFunc is called for every event that lacks the classifier attribute.
type DropFunc func(position int)

// Option configures an Accumulator.
type Option func(*Accumulator)

// WithDropHandler registers fn to be called when an event is dropped.
func WithDropHandler(fn DropFunc) Option {
	return func(a *Accumulator) {
		a.onDrop = fn
	}
}

// Accumulator collects events into classifier buckets. It is not safe for
// concurrent use.
type Accumulator struct {
	classifier string
	order      []string
	buckets    map[string]*Bucket
	stats      Stats
	onDrop     DropFunc
}

// NewAccumulator returns an accumulator partitioning on classifier.
func NewAccumulator(classifier string, opts ...Option) *Accumulator {
	a := &Accumulator{
		classifier: classifier,
		buckets:    make(map[string]*Bucket),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Add routes one event to its bucket. It reports false when the event has
// no classifier attribute and was dropped.
func (a *Accumulator) Add(ev xes.Event) bool {
	pos := a.stats.Events
	a.stats.Events++

	row := Row{values: make(map[string]string, len(ev.Attributes))}
	types := make(map[string]xes.TypeTag, len(ev.Attributes))
	for _, attr := range ev.Attributes {
		if _, seen := row.values[attr.Key]; !seen {
			row.keys = append(row.keys, attr.Key)
		}
		row.values[attr.Key] = attr.Value
		types[attr.Key] = attr.Type
	}

	name, ok := row.values[a.classifier]
	if !ok {
		a.stats.Dropped++
		a.stats.DroppedAt = append(a.stats.DroppedAt, pos)
		if a.onDrop != nil {
			a.onDrop(pos)
		}
		return false
	}

	b, ok := a.buckets[name]
	if !ok {
		b = &Bucket{Name: name, Schema: newSchema()}
		a.buckets[name] = b
		a.order = append(a.order, name)
	}
	for _, key := range row.keys {
		b.Schema.set(key, types[key])
	}
	b.Rows = append(b.Rows, row)
	a.stats.Kept++
	return true
}

// Snapshot freezes the current state. Later calls to Add do not affect the
// returned Result.
func (a *Accumulator) Snapshot() *Result {
	res := &Result{
		Classifier: a.classifier,
		Buckets:    make([]*Bucket, 0, len(a.order)),
		Stats:      a.stats,
	}
	res.Stats.DroppedAt = append([]int(nil), a.stats.DroppedAt...)
	for _, name := range a.order {
		res.Buckets = append(res.Buckets, a.buckets[name].clone())
	}
	return res
}

// Result is the grouped output of a scan. Buckets appear in the order their
// classifier value was first seen.
type Result struct {
	Classifier string
	Buckets    []*Bucket
	Stats      Stats
}

// Bucket returns the bucket for a classifier value.
func (r *Result) Bucket(name string) (*Bucket, bool) {
	for _, b := range r.Buckets {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// Rows returns the total number of rows across all buckets.
func (r *Result) Rows() int {
	var n int
	for _, b := range r.Buckets {
		n += len(b.Rows)
	}
	return n
}

// Scan groups every event of log by classifier.
func Scan(log *xes.Log, classifier string, opts ...Option) *Result {
	acc := NewAccumulator(classifier, opts...)
	for _, tr := range log.Traces {
		for _, ev := range tr.Events {
			acc.Add(ev)
		}
	}
	return acc.Snapshot()
}
