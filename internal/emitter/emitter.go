// Package emitter turns classifier buckets into ARFF files.
package emitter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/telhawk-systems/xes2arff/internal/arff"
	"github.com/telhawk-systems/xes2arff/internal/logging"
	"github.com/telhawk-systems/xes2arff/internal/projection"
)

// Keys whose columns are declared as nominal domains of their observed values.
const (
	EventNameKey = "concept:name"
	TimestampKey = "time:timestamp"
)

// Extension is the file extension of written tables.
const Extension = ".arff"

// IsReserved reports whether key gets a nominal domain instead of its mapped type.
func IsReserved(key string) bool {
	return key == EventNameKey || key == TimestampKey
}

// Build converts a bucket into an ARFF relation named after the bucket.
func Build(b *projection.Bucket) *arff.Relation {
	keys := b.Schema.Keys()
	rel := arff.NewRelation(b.Name)

	numeric := make([]bool, len(keys))
	for i, key := range keys {
		tag, _ := b.Schema.Type(key)
		numeric[i] = MapType(tag) == arff.Numeric
	}

	domains := map[string]*domain{
		EventNameKey: newDomain(),
		TimestampKey: newDomain(),
	}

	for _, row := range b.Rows {
		cells := make([]string, len(keys))
		for i, key := range keys {
			v, ok := row.Get(key)
			switch {
			case !ok:
				cells[i] = arff.Missing
			case numeric[i]:
				cells[i] = v
			default:
				cells[i] = arff.Quote(v)
			}
			if d, reserved := domains[key]; ok && reserved {
				d.add(arff.Quote(v))
			}
		}
		rel.AddInstance(cells)
	}

	for _, key := range keys {
		if d, reserved := domains[key]; reserved {
			rel.AddAttribute(arff.Quote(key), arff.Nominal(d.values))
			continue
		}
		tag, _ := b.Schema.Type(key)
		rel.AddAttribute(arff.Quote(key), MapType(tag))
	}

	return rel
}

// domain is an insertion-ordered set of rendered values.
type domain struct {
	seen   map[string]struct{}
	values []string
}

func newDomain() *domain {
	return &domain{seen: make(map[string]struct{})}
}

func (d *domain) add(v string) {
	if _, ok := d.seen[v]; ok {
		return
	}
	d.seen[v] = struct{}{}
	d.values = append(d.values, v)
}

// Emitter writes one ARFF file per bucket into a results directory.
type Emitter struct {
	dir    string
	logger *logging.Logger
	used   map[string]bool
}

// New returns an Emitter writing into dir.
func New(dir string, logger *logging.Logger) *Emitter {
	if logger == nil {
		logger = logging.Default()
	}
	return &Emitter{
		dir:    dir,
		logger: logger,
		used:   make(map[string]bool),
	}
}

// Emitted describes one written table.
type Emitted struct {
	Bucket  string
	Path    string
	Rows    int
	Columns int
}

// Emit builds the relation for b and writes it to <dir>/<name>.arff.
func (e *Emitter) Emit(ctx context.Context, b *projection.Bucket) (Emitted, error) {
	rel := Build(b)
	if err := rel.Validate(); err != nil {
		return Emitted{}, fmt.Errorf("bucket %q: %w", b.Name, err)
	}

	path := filepath.Join(e.dir, e.fileName(b.Name))
	f, err := os.Create(path)
	if err != nil {
		return Emitted{}, fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := rel.WriteTo(f); err != nil {
		f.Close()
		return Emitted{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return Emitted{}, fmt.Errorf("failed to close %s: %w", path, err)
	}

	out := Emitted{
		Bucket:  b.Name,
		Path:    path,
		Rows:    len(rel.Instances),
		Columns: len(rel.Attributes),
	}
	e.logger.DebugContext(ctx, "table written",
		logging.Bucket(b.Name),
		logging.Path(path),
		logging.Rows(out.Rows),
		logging.Columns(out.Columns),
	)
	return out, nil
}

// fileName derives a file name from a classifier value. Path separators are
// replaced, and a name already used in this run gets a numeric suffix.
func (e *Emitter) fileName(name string) string {
	base := SanitizeName(name)
	candidate := base
	for n := 2; e.used[candidate]; n++ {
		candidate = base + "-" + strconv.Itoa(n)
	}
	e.used[candidate] = true
	return candidate + Extension
}

var unsafeChars = strings.NewReplacer("/", "_", `\`, "_", "\x00", "_")

// SanitizeName maps a classifier value to a safe file base name.
func SanitizeName(name string) string {
	s := unsafeChars.Replace(name)
	if s == "" || s == "." || s == ".." {
		return "_" + s
	}
	return s
}
