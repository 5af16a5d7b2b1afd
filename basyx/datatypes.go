package basyx

// DataTypeDefXSD enumerates the XSD value types a Property may carry.
type DataTypeDefXSD string

const (
	String           DataTypeDefXSD = "xs:string"
	NormalizedString DataTypeDefXSD = "xs:normalizedString"
	AnyURI           DataTypeDefXSD = "xs:anyURI"
	Boolean          DataTypeDefXSD = "xs:boolean"
	Decimal          DataTypeDefXSD = "xs:decimal"
	Integer          DataTypeDefXSD = "xs:integer"
	Long             DataTypeDefXSD = "xs:long"
	Int              DataTypeDefXSD = "xs:int"
	Short            DataTypeDefXSD = "xs:short"
	Byte             DataTypeDefXSD = "xs:byte"
	NonPositiveInteger DataTypeDefXSD = "xs:nonPositiveInteger"
	NegativeInteger    DataTypeDefXSD = "xs:negativeInteger"
	NonNegativeInteger DataTypeDefXSD = "xs:nonNegativeInteger"
	PositiveInteger    DataTypeDefXSD = "xs:positiveInteger"
	UnsignedLong       DataTypeDefXSD = "xs:unsignedLong"
	UnsignedInt        DataTypeDefXSD = "xs:unsignedInt"
	UnsignedShort      DataTypeDefXSD = "xs:unsignedShort"
	UnsignedByte       DataTypeDefXSD = "xs:unsignedByte"
	Double             DataTypeDefXSD = "xs:double"
	Float              DataTypeDefXSD = "xs:float"
	Base64Binary       DataTypeDefXSD = "xs:base64Binary"
	HexBinary          DataTypeDefXSD = "xs:hexBinary"
	DateTime           DataTypeDefXSD = "xs:dateTime"
	Date               DataTypeDefXSD = "xs:date"
	Time               DataTypeDefXSD = "xs:time"
	Duration           DataTypeDefXSD = "xs:duration"
	GYearMonth         DataTypeDefXSD = "xs:gYearMonth"
	GYear              DataTypeDefXSD = "xs:gYear"
	GMonthDay          DataTypeDefXSD = "xs:gMonthDay"
	GDay               DataTypeDefXSD = "xs:gDay"
	GMonth             DataTypeDefXSD = "xs:gMonth"
)

// SupportedDataTypes lists every tag the binding layer can decode to a host
// type. Calendar-partial tags (gYear and friends) are excluded on purpose.
var SupportedDataTypes = []DataTypeDefXSD{
	String, NormalizedString, AnyURI,
	Boolean,
	Decimal, Integer, Long, Int, Short, Byte,
	NonPositiveInteger, NegativeInteger, NonNegativeInteger, PositiveInteger,
	UnsignedLong, UnsignedInt, UnsignedShort, UnsignedByte,
	Double, Float,
	Base64Binary, HexBinary,
	DateTime, Date, Time, Duration,
}
