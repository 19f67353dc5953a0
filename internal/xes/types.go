// Package xes decodes and encodes XES event logs.
package xes

// Kind enumerates the attribute types defined by the XES standard.
type Kind int

const (
	KindUnknown Kind = iota
	KindString
	KindDate
	KindFloat
	KindInt
	KindBoolean
	KindID
	KindList
	KindContainer
)

var kindNames = map[Kind]string{
	KindString:    "string",
	KindDate:      "date",
	KindFloat:     "float",
	KindInt:       "int",
	KindBoolean:   "boolean",
	KindID:        "id",
	KindList:      "list",
	KindContainer: "container",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// TypeTag is the declared type of an attribute. Known XES element names map
// to a Kind; anything else is KindUnknown and keeps the raw element name.
type TypeTag struct {
	Kind Kind
	Name string
}

// ParseTypeTag classifies an attribute element name.
func ParseTypeTag(name string) TypeTag {
	if k, ok := kindsByName[name]; ok {
		return TypeTag{Kind: k, Name: name}
	}
	return TypeTag{Kind: KindUnknown, Name: name}
}

// Tag returns the TypeTag for a known kind.
func Tag(k Kind) TypeTag {
	return TypeTag{Kind: k, Name: kindNames[k]}
}

// String returns the element name the tag was parsed from.
func (t TypeTag) String() string {
	return t.Name
}

// Known reports whether the tag is one of the XES attribute types.
func (t TypeTag) Known() bool {
	return t.Kind != KindUnknown
}

// Attribute is a single key/value pair of an event or trace.
type Attribute struct {
	Key   string
	Value string
	Type  TypeTag
}

// Event is the ordered list of attributes found under one event element,
// duplicates included.
type Event struct {
	Attributes []Attribute
}

// Lookup returns the value of the last attribute named key.
func (e Event) Lookup(key string) (string, bool) {
	for i := len(e.Attributes) - 1; i >= 0; i-- {
		if e.Attributes[i].Key == key {
			return e.Attributes[i].Value, true
		}
	}
	return "", false
}

// Trace is one process instance.
type Trace struct {
	Attributes []Attribute
	Events     []Event
}

// Log is a decoded XES document. Events found outside any trace element
// are collected in a trace of their own.
type Log struct {
	Attributes []Attribute
	Traces     []Trace
}

// Events returns every event of the log in document order.
func (l *Log) Events() []Event {
	var n int
	for _, tr := range l.Traces {
		n += len(tr.Events)
	}
	events := make([]Event, 0, n)
	for _, tr := range l.Traces {
		events = append(events, tr.Events...)
	}
	return events
}

// EventCount returns the number of events in the log.
func (l *Log) EventCount() int {
	var n int
	for _, tr := range l.Traces {
		n += len(tr.Events)
	}
	return n
}
