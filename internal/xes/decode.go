package xes

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// Namespace is the XES standard namespace URI.
const Namespace = "http://www.xes-standard.org/"

// ErrEmptyDocument is returned when the input holds no root element.
var ErrEmptyDocument = errors.New("xes: empty document")

// Decode reads an XES document. Trace and event elements are matched by
// local name in any namespace. The direct children of an event element are
// its attributes; children of list and container attributes are not
// flattened into the event.
func Decode(r io.Reader) (*Log, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var (
		log        = &Log{}
		depth      int
		rootSeen   bool
		traceDepth = -1
		eventDepth = -1
		strayOpen  bool
		current    Event
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xes: decode: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			d := depth
			depth++
			rootSeen = true

			switch {
			case eventDepth >= 0:
				if d == eventDepth+1 {
					if attr, ok := attributeOf(t); ok {
						current.Attributes = append(current.Attributes, attr)
					}
				}
			case t.Name.Local == "event":
				eventDepth = d
				current = Event{}
			case t.Name.Local == "trace" && traceDepth < 0:
				traceDepth = d
				strayOpen = false
				log.Traces = append(log.Traces, Trace{})
			case traceDepth >= 0 && d == traceDepth+1:
				if attr, ok := attributeOf(t); ok {
					tr := &log.Traces[len(log.Traces)-1]
					tr.Attributes = append(tr.Attributes, attr)
				}
			case traceDepth < 0 && d == 1:
				if attr, ok := attributeOf(t); ok {
					log.Attributes = append(log.Attributes, attr)
				}
			}

		case xml.EndElement:
			depth--
			switch depth {
			case eventDepth:
				eventDepth = -1
				if traceDepth < 0 && !strayOpen {
					log.Traces = append(log.Traces, Trace{})
					strayOpen = true
				}
				tr := &log.Traces[len(log.Traces)-1]
				tr.Events = append(tr.Events, current)
				current = Event{}
			case traceDepth:
				traceDepth = -1
			}
		}
	}

	if !rootSeen {
		return nil, ErrEmptyDocument
	}
	return log, nil
}

// attributeOf extracts key, value and type from an attribute element.
// Elements without a key attribute are not attributes.
func attributeOf(el xml.StartElement) (Attribute, bool) {
	var (
		attr   = Attribute{Type: ParseTypeTag(el.Name.Local)}
		hasKey bool
	)
	for _, a := range el.Attr {
		if a.Name.Space != "" {
			continue
		}
		switch a.Name.Local {
		case "key":
			attr.Key = a.Value
			hasKey = true
		case "value":
			attr.Value = a.Value
		}
	}
	return attr, hasKey
}
