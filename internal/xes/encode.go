package xes

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Version is the XES version written by Encode.
const Version = "1.0"

// Encode writes l as an indented XES document.
func Encode(w io.Writer, l *Log) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("xes: encode: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	root := xml.StartElement{
		Name: xml.Name{Local: "log"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xes.version"}, Value: Version},
			{Name: xml.Name{Local: "xmlns"}, Value: Namespace},
		},
	}
	if err := enc.EncodeToken(root); err != nil {
		return fmt.Errorf("xes: encode: %w", err)
	}
	if err := encodeAttributes(enc, l.Attributes); err != nil {
		return err
	}

	for _, tr := range l.Traces {
		start := xml.StartElement{Name: xml.Name{Local: "trace"}}
		if err := enc.EncodeToken(start); err != nil {
			return fmt.Errorf("xes: encode trace: %w", err)
		}
		if err := encodeAttributes(enc, tr.Attributes); err != nil {
			return err
		}
		for _, ev := range tr.Events {
			evStart := xml.StartElement{Name: xml.Name{Local: "event"}}
			if err := enc.EncodeToken(evStart); err != nil {
				return fmt.Errorf("xes: encode event: %w", err)
			}
			if err := encodeAttributes(enc, ev.Attributes); err != nil {
				return err
			}
			if err := enc.EncodeToken(evStart.End()); err != nil {
				return fmt.Errorf("xes: encode event: %w", err)
			}
		}
		if err := enc.EncodeToken(start.End()); err != nil {
			return fmt.Errorf("xes: encode trace: %w", err)
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return fmt.Errorf("xes: encode: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("xes: encode: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func encodeAttributes(enc *xml.Encoder, attrs []Attribute) error {
	for _, a := range attrs {
		el := xml.StartElement{
			Name: xml.Name{Local: a.Type.Name},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "key"}, Value: a.Key},
				{Name: xml.Name{Local: "value"}, Value: a.Value},
			},
		}
		if err := enc.EncodeToken(el); err != nil {
			return fmt.Errorf("xes: encode attribute %q: %w", a.Key, err)
		}
		if err := enc.EncodeToken(el.End()); err != nil {
			return fmt.Errorf("xes: encode attribute %q: %w", a.Key, err)
		}
	}
	return nil
}
