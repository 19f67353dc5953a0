package emitter

import (
	"github.com/telhawk-systems/xes2arff/internal/arff"
	"github.com/telhawk-systems/xes2arff/internal/xes"
)

// DateFormat is the Java date pattern declared for XES date attributes.
const DateFormat = "yyyy-MM-dd'T'HH:mm:ss.SSSZ"

// MapType returns the ARFF type for an XES attribute type. Tags without an
// ARFF counterpart are passed through verbatim.
func MapType(tag xes.TypeTag) string {
	switch tag.Kind {
	case xes.KindString, xes.KindBoolean:
		return arff.String
	case xes.KindDate:
		return arff.Date(DateFormat)
	case xes.KindFloat, xes.KindInt:
		return arff.Numeric
	default:
		return tag.Name
	}
}
