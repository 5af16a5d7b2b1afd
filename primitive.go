package aaspydantic

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/SebBehrendt/aas-pydantic/basyx"
)

// Bidirectional lookup between XSD datatype tags and Go host types. Decoding
// is total over basyx.SupportedDataTypes; encoding is partial and lossy: all
// integer width/sign variants collapse to int64 and int64 only ever encodes
// back to xs:integer.

var (
	typeBool      = reflect.TypeOf(false)
	typeInt       = reflect.TypeOf(int64(0))
	typeFloat     = reflect.TypeOf(float64(0))
	typeString    = reflect.TypeOf("")
	typeBytes     = reflect.TypeOf([]byte(nil))
	typeTime      = reflect.TypeOf(time.Time{})
	typeTimeOfDay = reflect.TypeOf(TimeOfDay{})
)

// HostType returns the Go host type decoding the given XSD datatype tag.
// Calendar-partial tags are recognized but unhandled.
func HostType(dt basyx.DataTypeDefXSD) (reflect.Type, error) {
	switch dt {
	case basyx.Boolean:
		return typeBool, nil
	case basyx.Integer, basyx.Long, basyx.Int, basyx.Short, basyx.Byte,
		basyx.NonPositiveInteger, basyx.NegativeInteger,
		basyx.NonNegativeInteger, basyx.PositiveInteger,
		basyx.UnsignedLong, basyx.UnsignedInt, basyx.UnsignedShort, basyx.UnsignedByte:
		return typeInt, nil
	case basyx.Float, basyx.Double, basyx.Decimal:
		return typeFloat, nil
	case basyx.String, basyx.NormalizedString, basyx.AnyURI:
		return typeString, nil
	case basyx.Base64Binary, basyx.HexBinary:
		return typeBytes, nil
	case basyx.DateTime, basyx.Date:
		return typeTime, nil
	case basyx.Time:
		return typeTimeOfDay, nil
	case basyx.Duration:
		// no structured duration host type; carried as text
		return typeString, nil
	default:
		return nil, &UnimplementedDatatypeError{DataType: string(dt)}
	}
}

// DataTypeOf returns the XSD datatype tag encoding the given Go type.
func DataTypeOf(t reflect.Type) (basyx.DataTypeDefXSD, error) {
	switch t {
	case typeTime:
		return basyx.DateTime, nil
	case typeTimeOfDay:
		return basyx.Time, nil
	}
	if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
		return basyx.Base64Binary, nil
	}
	switch t.Kind() {
	case reflect.Bool:
		return basyx.Boolean, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return basyx.Integer, nil
	case reflect.Float32, reflect.Float64:
		return basyx.Double, nil
	case reflect.String:
		return basyx.String, nil
	}
	return "", &UnsupportedPrimitiveTypeError{GoType: t.String()}
}

// IsPrimitiveType reports whether the Go type has an XSD datatype encoding.
func IsPrimitiveType(t reflect.Type) bool {
	_, err := DataTypeOf(t)
	return err == nil
}

// FormatValue renders a host value in the lexical form of the tag.
func FormatValue(dt basyx.DataTypeDefXSD, v reflect.Value) (string, error) {
	host, err := HostType(dt)
	if err != nil {
		return "", err
	}
	switch host {
	case typeBool:
		return strconv.FormatBool(v.Bool()), nil
	case typeInt:
		if isUnsignedKind(v.Kind()) {
			return strconv.FormatUint(v.Uint(), 10), nil
		}
		return strconv.FormatInt(v.Int(), 10), nil
	case typeFloat:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64), nil
	case typeBytes:
		b := v.Bytes()
		if dt == basyx.HexBinary {
			return hex.EncodeToString(b), nil
		}
		return base64.StdEncoding.EncodeToString(b), nil
	case typeTime:
		t := v.Interface().(time.Time)
		if dt == basyx.Date {
			return t.UTC().Format("2006-01-02"), nil
		}
		return t.UTC().Format(time.RFC3339Nano), nil
	case typeTimeOfDay:
		return v.Interface().(TimeOfDay).String(), nil
	default: // text family
		return v.String(), nil
	}
}

// ParseValue parses a lexical value into the host type of the tag. The
// returned value's dynamic type matches HostType(dt).
func ParseValue(dt basyx.DataTypeDefXSD, s string) (any, error) {
	host, err := HostType(dt)
	if err != nil {
		return nil, err
	}
	switch host {
	case typeBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("aaspydantic: invalid %s value %q", dt, s)
		}
		return b, nil
	case typeInt:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("aaspydantic: invalid %s value %q", dt, s)
		}
		return n, nil
	case typeFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("aaspydantic: invalid %s value %q", dt, s)
		}
		return f, nil
	case typeBytes:
		if dt == basyx.HexBinary {
			b, err := hex.DecodeString(s)
			if err != nil {
				return nil, fmt.Errorf("aaspydantic: invalid %s value %q", dt, s)
			}
			return b, nil
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("aaspydantic: invalid %s value %q", dt, s)
		}
		return b, nil
	case typeTime:
		if dt == basyx.Date {
			t, err := time.Parse("2006-01-02", s)
			if err != nil {
				return nil, fmt.Errorf("aaspydantic: invalid %s value %q", dt, s)
			}
			return t, nil
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
				return t2, nil
			}
			return nil, fmt.Errorf("aaspydantic: invalid %s value %q", dt, s)
		}
		return t, nil
	case typeTimeOfDay:
		return ParseTimeOfDay(s)
	default:
		return s, nil
	}
}

func isUnsignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
