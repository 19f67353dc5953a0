// Package arff writes relations in the Attribute-Relation File Format.
package arff

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Scalar attribute types.
const (
	Numeric = "NUMERIC"
	String  = "STRING"
)

// Missing is the ARFF missing-value marker.
const Missing = "?"

// ErrWidthMismatch is returned when an instance has a different number of
// cells than the relation has attributes.
var ErrWidthMismatch = errors.New("arff: instance width does not match attribute count")

// Date returns a DATE type with the given Java date format pattern.
func Date(format string) string {
	return "DATE " + Quote(format)
}

// Nominal returns a nominal type listing the given, already rendered, values.
func Nominal(values []string) string {
	return "{" + strings.Join(values, ",") + "}"
}

var quoter = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Quote wraps s in double quotes, escaping backslashes, quotes and line breaks.
func Quote(s string) string {
	return `"` + quoter.Replace(s) + `"`
}

// Attribute is one column declaration. Name and Type are written verbatim.
type Attribute struct {
	Name string
	Type string
}

// Relation is an ARFF table.
type Relation struct {
	Name       string
	Attributes []Attribute
	Instances  [][]string
}

// NewRelation returns an empty relation.
func NewRelation(name string) *Relation {
	return &Relation{Name: name}
}

// AddAttribute appends a column declaration.
func (r *Relation) AddAttribute(name, typ string) {
	r.Attributes = append(r.Attributes, Attribute{Name: name, Type: typ})
}

// AddInstance appends a data row. Cells are written verbatim.
func (r *Relation) AddInstance(cells []string) {
	r.Instances = append(r.Instances, cells)
}

// Validate checks that every instance is as wide as the attribute list.
func (r *Relation) Validate() error {
	for i, inst := range r.Instances {
		if len(inst) != len(r.Attributes) {
			return fmt.Errorf("%w: instance %d has %d cells, want %d",
				ErrWidthMismatch, i, len(inst), len(r.Attributes))
		}
	}
	return nil
}

// WriteTo serializes the relation.
func (r *Relation) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}

	fmt.Fprintf(cw, "@RELATION %s\n\n", relationName(r.Name))
	for _, a := range r.Attributes {
		fmt.Fprintf(cw, "@ATTRIBUTE %s %s\n", a.Name, a.Type)
	}
	io.WriteString(cw, "\n@DATA\n")
	for _, inst := range r.Instances {
		io.WriteString(cw, strings.Join(inst, ","))
		io.WriteString(cw, "\n")
	}

	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, cw.w.Flush()
}

// String renders the relation.
func (r *Relation) String() string {
	var sb strings.Builder
	_, _ = r.WriteTo(&sb)
	return sb.String()
}

// relationName quotes names that would not survive as a bare ARFF token.
func relationName(name string) string {
	if name == "" || strings.ContainsAny(name, " \t\r\n{}%,'\"\\") {
		return Quote(name)
	}
	return name
}

type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
