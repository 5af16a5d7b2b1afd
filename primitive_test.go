package aaspydantic_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	aaspydantic "github.com/SebBehrendt/aas-pydantic"
	"github.com/SebBehrendt/aas-pydantic/basyx"
)

func TestHostType_TotalOverSupportedTypes(t *testing.T) {
	for _, dt := range basyx.SupportedDataTypes {
		if _, err := aaspydantic.HostType(dt); err != nil {
			t.Fatalf("HostType(%s) failed: %v", dt, err)
		}
	}
}

func TestHostType_CalendarPartialsUnimplemented(t *testing.T) {
	for _, dt := range []basyx.DataTypeDefXSD{
		basyx.GYear, basyx.GYearMonth, basyx.GMonthDay, basyx.GDay, basyx.GMonth,
	} {
		_, err := aaspydantic.HostType(dt)
		var uerr *aaspydantic.UnimplementedDatatypeError
		if !errors.As(err, &uerr) {
			t.Fatalf("HostType(%s): expected UnimplementedDatatypeError, got %v", dt, err)
		}
	}
}

func TestDataTypeOf_IntegerWidthsCollapse(t *testing.T) {
	for _, v := range []any{int(1), int8(1), int16(1), int32(1), int64(1), uint(1), uint16(1), uint32(1), uint64(1)} {
		dt, err := aaspydantic.DataTypeOf(reflect.TypeOf(v))
		if err != nil {
			t.Fatalf("DataTypeOf(%T) failed: %v", v, err)
		}
		if dt != basyx.Integer {
			t.Fatalf("DataTypeOf(%T) = %s, want xs:integer", v, dt)
		}
	}
}

func TestDataTypeOf_Unsupported(t *testing.T) {
	_, err := aaspydantic.DataTypeOf(reflect.TypeOf(complex128(0)))
	var perr *aaspydantic.UnsupportedPrimitiveTypeError
	if !errors.As(err, &perr) {
		t.Fatalf("expected UnsupportedPrimitiveTypeError, got %v", err)
	}
}

func TestEncodableTypes_RoundTripThroughHostType(t *testing.T) {
	// every Go type the encoder accepts decodes back to a compatible host type
	samples := []any{true, int64(7), 3.14, "txt", []byte("b"), time.Now(), aaspydantic.TimeOfDay{Hour: 9}}
	for _, v := range samples {
		dt, err := aaspydantic.DataTypeOf(reflect.TypeOf(v))
		if err != nil {
			t.Fatalf("DataTypeOf(%T) failed: %v", v, err)
		}
		host, err := aaspydantic.HostType(dt)
		if err != nil {
			t.Fatalf("HostType(%s) failed: %v", dt, err)
		}
		if host.Kind() == reflect.Interface {
			t.Fatalf("host type for %s is not concrete", dt)
		}
	}
}

func TestFormatParseValue_RoundTrip(t *testing.T) {
	cases := []struct {
		dt   basyx.DataTypeDefXSD
		in   any
		want any
	}{
		{basyx.Boolean, true, true},
		{basyx.Integer, int64(-42), int64(-42)},
		{basyx.Double, 2.5, 2.5},
		{basyx.String, "hello", "hello"},
		{basyx.Base64Binary, []byte{0x01, 0xff}, []byte{0x01, 0xff}},
		{basyx.HexBinary, []byte{0xde, 0xad}, []byte{0xde, 0xad}},
		{basyx.Time, aaspydantic.TimeOfDay{Hour: 13, Minute: 7, Second: 1}, aaspydantic.TimeOfDay{Hour: 13, Minute: 7, Second: 1}},
		{basyx.Duration, "PT5M", "PT5M"},
	}
	for _, c := range cases {
		s, err := aaspydantic.FormatValue(c.dt, reflect.ValueOf(c.in))
		if err != nil {
			t.Fatalf("FormatValue(%s) failed: %v", c.dt, err)
		}
		got, err := aaspydantic.ParseValue(c.dt, s)
		if err != nil {
			t.Fatalf("ParseValue(%s, %q) failed: %v", c.dt, s, err)
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("%s round trip: got %#v, want %#v", c.dt, got, c.want)
		}
	}
}

func TestFormatParseValue_DateTime(t *testing.T) {
	in := time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC)
	s, err := aaspydantic.FormatValue(basyx.DateTime, reflect.ValueOf(in))
	if err != nil {
		t.Fatalf("FormatValue failed: %v", err)
	}
	got, err := aaspydantic.ParseValue(basyx.DateTime, s)
	if err != nil {
		t.Fatalf("ParseValue(%q) failed: %v", s, err)
	}
	if !got.(time.Time).Equal(in) {
		t.Fatalf("datetime round trip: got %v, want %v", got, in)
	}
}

func TestFormatValue_DateDropsClock(t *testing.T) {
	in := time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC)
	s, err := aaspydantic.FormatValue(basyx.Date, reflect.ValueOf(in))
	if err != nil {
		t.Fatalf("FormatValue failed: %v", err)
	}
	if s != "2026-08-23" {
		t.Fatalf("unexpected lexical date: %q", s)
	}
}

func TestParseValue_UnsignedTags_StillHostInt64(t *testing.T) {
	got, err := aaspydantic.ParseValue(basyx.UnsignedByte, "255")
	if err != nil {
		t.Fatalf("ParseValue failed: %v", err)
	}
	if v, ok := got.(int64); !ok || v != 255 {
		t.Fatalf("unsigned tags must decode to int64, got %#v", got)
	}
}

func TestParseValue_Invalid(t *testing.T) {
	if _, err := aaspydantic.ParseValue(basyx.Integer, "not-a-number"); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := aaspydantic.ParseValue(basyx.Boolean, "maybe"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := aaspydantic.ParseTimeOfDay("23:59:59.500")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != (aaspydantic.TimeOfDay{Hour: 23, Minute: 59, Second: 59}) {
		t.Fatalf("unexpected value: %+v", got)
	}
	if _, err := aaspydantic.ParseTimeOfDay("25:00:00"); err == nil {
		t.Fatalf("out-of-range hour must fail")
	}
	if _, err := aaspydantic.ParseTimeOfDay("12:00"); err == nil {
		t.Fatalf("missing seconds must fail")
	}
}
