package projection

import "github.com/telhawk-systems/xes2arff/internal/xes"

// Row is one event flattened to key -> value. Keys keep the position of
// their first occurrence; a repeated key takes the later value.
type Row struct {
	keys   []string
	values map[string]string
}

// Get returns the row's value for key.
func (r Row) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the row's keys in first-seen order.
func (r Row) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len returns the number of distinct keys in the row.
func (r Row) Len() int {
	return len(r.keys)
}

// Schema maps attribute keys to their declared type, in first-seen order.
type Schema struct {
	keys  []string
	types map[string]xes.TypeTag
}

func newSchema() Schema {
	return Schema{types: make(map[string]xes.TypeTag)}
}

func (s *Schema) set(key string, tag xes.TypeTag) {
	if _, ok := s.types[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.types[key] = tag
}

// Keys returns the schema keys in first-seen order.
func (s Schema) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Type returns the declared type of key.
func (s Schema) Type(key string) (xes.TypeTag, bool) {
	t, ok := s.types[key]
	return t, ok
}

// Has reports whether key is part of the schema.
func (s Schema) Has(key string) bool {
	_, ok := s.types[key]
	return ok
}

// Len returns the number of columns.
func (s Schema) Len() int {
	return len(s.keys)
}

func (s Schema) clone() Schema {
	c := Schema{
		keys:  append([]string(nil), s.keys...),
		types: make(map[string]xes.TypeTag, len(s.types)),
	}
	for k, v := range s.types {
		c.types[k] = v
	}
	return c
}

// Bucket holds the events sharing one classifier value.
type Bucket struct {
	Name   string
	Schema Schema
	Rows   []Row
}

func (b *Bucket) clone() *Bucket {
	return &Bucket{
		Name:   b.Name,
		Schema: b.Schema.clone(),
		Rows:   append([]Row(nil), b.Rows...),
	}
}
