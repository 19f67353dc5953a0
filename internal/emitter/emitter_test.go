package emitter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telhawk-systems/xes2arff/internal/arff"
	"github.com/telhawk-systems/xes2arff/internal/logging"
	"github.com/telhawk-systems/xes2arff/internal/projection"
	"github.com/telhawk-systems/xes2arff/internal/xes"
)

func attr(kind xes.Kind, key, value string) xes.Attribute {
	return xes.Attribute{Key: key, Value: value, Type: xes.Tag(kind)}
}

func ev(attrs ...xes.Attribute) xes.Event {
	return xes.Event{Attributes: attrs}
}

func scan(t *testing.T, classifier string, events ...xes.Event) *projection.Result {
	t.Helper()
	return projection.Scan(&xes.Log{Traces: []xes.Trace{{Events: events}}}, classifier)
}

func TestMapType(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		expected string
	}{
		{name: "string", tag: "string", expected: "STRING"},
		{name: "date", tag: "date", expected: `DATE "yyyy-MM-dd'T'HH:mm:ss.SSSZ"`},
		{name: "float", tag: "float", expected: "NUMERIC"},
		{name: "int", tag: "int", expected: "NUMERIC"},
		{name: "boolean", tag: "boolean", expected: "STRING"},
		{name: "id passes through", tag: "id", expected: "id"},
		{name: "list passes through", tag: "list", expected: "list"},
		{name: "unknown passes through", tag: "decimal", expected: "decimal"},
		{name: "empty passes through", tag: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapType(xes.ParseTypeTag(tt.tag)))
		})
	}
}

func threeEvents() []xes.Event {
	return []xes.Event{
		ev(attr(xes.KindString, "concept:name", "register"), attr(xes.KindDate, "time:timestamp", "2020-01-01T10:00:00.000+01:00"),
			attr(xes.KindString, "resource", "Alice"), attr(xes.KindFloat, "amount", "12.5")),
		ev(attr(xes.KindString, "concept:name", "check"), attr(xes.KindDate, "time:timestamp", "2020-01-01T11:00:00.000+01:00"),
			attr(xes.KindString, "resource", "Bob"), attr(xes.KindFloat, "amount", "3")),
		ev(attr(xes.KindString, "concept:name", "register"), attr(xes.KindDate, "time:timestamp", "2020-01-01T12:00:00.000+01:00"),
			attr(xes.KindString, "resource", "Alice"), attr(xes.KindFloat, "amount", "7")),
	}
}

func TestBuild_AliceBob(t *testing.T) {
	res := scan(t, "resource", threeEvents()...)
	require.Len(t, res.Buckets, 2)

	alice := Build(res.Buckets[0])
	expected := `@RELATION Alice

@ATTRIBUTE "concept:name" {"register"}
@ATTRIBUTE "time:timestamp" {"2020-01-01T10:00:00.000+01:00","2020-01-01T12:00:00.000+01:00"}
@ATTRIBUTE "resource" STRING
@ATTRIBUTE "amount" NUMERIC

@DATA
"register","2020-01-01T10:00:00.000+01:00","Alice",12.5
"register","2020-01-01T12:00:00.000+01:00","Alice",7
`
	assert.Equal(t, expected, alice.String())

	bob := Build(res.Buckets[1])
	assert.Equal(t, "Bob", bob.Name)
	assert.Len(t, bob.Instances, 1)
}

func TestBuild_MissingCells(t *testing.T) {
	res := scan(t, "resource",
		ev(attr(xes.KindString, "resource", "Alice"), attr(xes.KindInt, "a", "1")),
		ev(attr(xes.KindString, "resource", "Alice"), attr(xes.KindString, "b", "x")),
	)

	rel := Build(res.Buckets[0])
	require.NoError(t, rel.Validate())
	assert.Equal(t, []string{`"Alice"`, "1", arff.Missing}, rel.Instances[0])
	assert.Equal(t, []string{`"Alice"`, arff.Missing, `"x"`}, rel.Instances[1])
}

func TestBuild_ConflictingTypesQuoteBothRows(t *testing.T) {
	res := scan(t, "resource",
		ev(attr(xes.KindString, "resource", "Alice"), attr(xes.KindInt, "cost", "3")),
		ev(attr(xes.KindString, "resource", "Alice"), attr(xes.KindString, "cost", "cheap")),
	)

	rel := Build(res.Buckets[0])
	assert.Equal(t, arff.Attribute{Name: `"cost"`, Type: arff.String}, rel.Attributes[1])
	assert.Equal(t, `"3"`, rel.Instances[0][1])
	assert.Equal(t, `"cheap"`, rel.Instances[1][1])
}

func TestBuild_NumericCellsUnquoted(t *testing.T) {
	res := scan(t, "resource",
		ev(attr(xes.KindString, "resource", "Alice"), attr(xes.KindInt, "n", "4"), attr(xes.KindFloat, "f", "0.5"),
			attr(xes.KindBoolean, "ok", "true"), attr(xes.KindDate, "when", "2020-01-01T00:00:00.000Z")),
	)

	rel := Build(res.Buckets[0])
	for i, a := range rel.Attributes {
		cell := rel.Instances[0][i]
		if a.Type == arff.Numeric {
			assert.False(t, strings.HasPrefix(cell, `"`), "numeric cell %s must be unquoted", cell)
		} else {
			assert.True(t, strings.HasPrefix(cell, `"`), "cell %s must be quoted", cell)
		}
	}
}

func TestBuild_DomainsHoldDistinctValuesOnce(t *testing.T) {
	res := scan(t, "resource",
		ev(attr(xes.KindString, "resource", "A"), attr(xes.KindString, "concept:name", "x")),
		ev(attr(xes.KindString, "resource", "A"), attr(xes.KindString, "concept:name", "y")),
		ev(attr(xes.KindString, "resource", "A"), attr(xes.KindString, "concept:name", "x")),
		ev(attr(xes.KindString, "resource", "A")),
	)

	rel := Build(res.Buckets[0])
	require.Len(t, rel.Attributes, 2)
	assert.Equal(t, `{"x","y"}`, rel.Attributes[1].Type)
	assert.Equal(t, arff.Missing, rel.Instances[3][1])
}

func TestBuild_AbsentReservedKeyNotDeclared(t *testing.T) {
	res := scan(t, "resource", ev(attr(xes.KindString, "resource", "A"), attr(xes.KindInt, "n", "1")))

	rel := Build(res.Buckets[0])
	for _, a := range rel.Attributes {
		assert.NotEqual(t, arff.Quote(EventNameKey), a.Name)
		assert.NotEqual(t, arff.Quote(TimestampKey), a.Name)
	}
	require.NoError(t, rel.Validate())
}

func TestIsReserved(t *testing.T) {
	assert.True(t, IsReserved("concept:name"))
	assert.True(t, IsReserved("time:timestamp"))
	assert.False(t, IsReserved("org:resource"))
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "Alice", expected: "Alice"},
		{input: "dept/finance", expected: "dept_finance"},
		{input: `a\b`, expected: "a_b"},
		{input: "", expected: "_"},
		{input: "..", expected: "_.."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeName(tt.input))
		})
	}
}

func TestEmitter_WritesOneFilePerBucket(t *testing.T) {
	dir := t.TempDir()
	res := scan(t, "resource", threeEvents()...)
	em := New(dir, logging.Discard())

	var paths []string
	for _, b := range res.Buckets {
		out, err := em.Emit(context.Background(), b)
		require.NoError(t, err)
		paths = append(paths, out.Path)
	}

	assert.Equal(t, []string{filepath.Join(dir, "Alice.arff"), filepath.Join(dir, "Bob.arff")}, paths)

	data, err := os.ReadFile(filepath.Join(dir, "Bob.arff"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "@RELATION Bob\n"))
	assert.Contains(t, string(data), `"check","2020-01-01T11:00:00.000+01:00","Bob",3`)
}

func TestEmitter_NameCollisions(t *testing.T) {
	dir := t.TempDir()
	res := scan(t, "resource",
		ev(attr(xes.KindString, "resource", "a/b")),
		ev(attr(xes.KindString, "resource", "a_b")),
	)
	em := New(dir, nil)

	first, err := em.Emit(context.Background(), res.Buckets[0])
	require.NoError(t, err)
	second, err := em.Emit(context.Background(), res.Buckets[1])
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "a_b.arff"), first.Path)
	assert.Equal(t, filepath.Join(dir, "a_b-2.arff"), second.Path)
	assert.Equal(t, 1, second.Rows)
	assert.Equal(t, 1, second.Columns)
}

func TestEmitter_MissingDirectory(t *testing.T) {
	res := scan(t, "resource", ev(attr(xes.KindString, "resource", "a")))
	em := New(filepath.Join(t.TempDir(), "does-not-exist"), logging.Discard())

	_, err := em.Emit(context.Background(), res.Buckets[0])
	require.Error(t, err)
}
