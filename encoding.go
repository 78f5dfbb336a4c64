package rational

import (
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/govalues/decimal"
	"github.com/vmihailenco/msgpack/v4"
)

// binarySize is the length of the binary encoding: numerator and denominator
// as big-endian 64-bit integers.
const binarySize = 16

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// Both JSON strings in the format accepted by [Parse] and JSON numbers are
// supported, so "-3/4" and -0.75 decode to the same rational.
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (r *Rational) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	var err error
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		*r, err = parse(string(text[1 : len(text)-1]))
	} else {
		*r, err = parseNumber(string(text))
	}
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Rational{}, err)
	}
	return nil
}

// parseNumber converts a JSON number to a rational through the exact
// decimal representation of the number.
func parseNumber(s string) (Rational, error) {
	d, err := decimal.Parse(s)
	if err != nil {
		return Rational{}, err
	}
	return newFromDecimal(d)
}

// MarshalJSON implements the [json.Marshaler] interface.
// MarshalJSON always returns the canonical form as a JSON string.
// See also method [Rational.String].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (r Rational) MarshalJSON() ([]byte, error) {
	text := make([]byte, 0, 43)
	text = append(text, '"')
	text = r.append(text)
	text = append(text, '"')
	return text, nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [Parse].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (r *Rational) UnmarshalText(text []byte) error {
	var err error
	*r, err = parse(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Rational{}, err)
	}
	return nil
}

// AppendText implements the [encoding.TextAppender] interface.
// AppendText always appends the canonical form.
// See also method [Rational.String].
//
// [encoding.TextAppender]: https://pkg.go.dev/encoding#TextAppender
func (r Rational) AppendText(text []byte) ([]byte, error) {
	return r.append(text), nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// MarshalText always returns the canonical form.
// See also method [Rational.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (r Rational) MarshalText() ([]byte, error) {
	return r.append(nil), nil
}

// UnmarshalBinary implements the [encoding.BinaryUnmarshaler] interface.
// The data must hold the numerator followed by the denominator, both as
// big-endian 64-bit integers.
// The fraction does not have to be in lowest terms, but its denominator
// must not be 0.
//
// [encoding.BinaryUnmarshaler]: https://pkg.go.dev/encoding#BinaryUnmarshaler
func (r *Rational) UnmarshalBinary(data []byte) error {
	var err error
	*r, err = parseBinary(data)
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Rational{}, err)
	}
	return nil
}

func parseBinary(data []byte) (Rational, error) {
	if len(data) != binarySize {
		return Rational{}, fmt.Errorf("%w: invalid data length %v", errInvalidFormat, len(data))
	}
	num := int64(binary.BigEndian.Uint64(data[:8])) //nolint:gosec
	den := int64(binary.BigEndian.Uint64(data[8:])) //nolint:gosec
	return newRationalSafe(num, den)
}

// AppendBinary implements the [encoding.BinaryAppender] interface.
// See also method [Rational.UnmarshalBinary] for the layout.
//
// [encoding.BinaryAppender]: https://pkg.go.dev/encoding#BinaryAppender
func (r Rational) AppendBinary(data []byte) ([]byte, error) {
	data = binary.BigEndian.AppendUint64(data, uint64(r.Num()))   //nolint:gosec
	data = binary.BigEndian.AppendUint64(data, uint64(r.Denom())) //nolint:gosec
	return data, nil
}

// MarshalBinary implements the [encoding.BinaryMarshaler] interface.
// See also method [Rational.UnmarshalBinary] for the layout.
//
// [encoding.BinaryMarshaler]: https://pkg.go.dev/encoding#BinaryMarshaler
func (r Rational) MarshalBinary() ([]byte, error) {
	return r.AppendBinary(make([]byte, 0, binarySize))
}

// UnmarshalBSONValue implements the [v2/bson.ValueUnmarshaler] interface.
// BSON strings, doubles, 32-bit and 64-bit integers are supported.
//
// [v2/bson.ValueUnmarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueUnmarshaler
func (r *Rational) UnmarshalBSONValue(typ byte, data []byte) error {
	// constants are from https://bsonspec.org/spec.html
	var err error
	switch typ {
	case 1:
		*r, err = parseBSONFloat64(data)
	case 2:
		*r, err = parseBSONString(data)
	case 10:
		// null, do nothing
	case 16:
		*r, err = parseBSONInt32(data)
	case 18:
		*r, err = parseBSONInt64(data)
	default:
		err = fmt.Errorf("BSON type %d is not supported", typ)
	}
	if err != nil {
		err = fmt.Errorf("converting from BSON type %d to %T: %w", typ, Rational{}, err)
	}
	return err
}

// MarshalBSONValue implements the [v2/bson.ValueMarshaler] interface.
// MarshalBSONValue always returns the canonical form as a BSON string.
//
// [v2/bson.ValueMarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueMarshaler
func (r Rational) MarshalBSONValue() (typ byte, data []byte, err error) {
	return 2, r.bsonString(), nil
}

// parseBSONString parses a BSON string to a rational.
// The byte order of the input data must be little-endian.
func parseBSONString(data []byte) (Rational, error) {
	if len(data) < 4 {
		return Rational{}, fmt.Errorf("%w: invalid data length %v", errInvalidFormat, len(data))
	}
	l := int(int32(binary.LittleEndian.Uint32(data))) //nolint:gosec
	if l < 1 || len(data) < l+4 {
		return Rational{}, fmt.Errorf("%w: invalid string length %v", errInvalidFormat, l)
	}
	if data[l+4-1] != 0 {
		return Rational{}, fmt.Errorf("%w: invalid null terminator %v", errInvalidFormat, data[l+4-1])
	}
	return parse(string(data[4 : l+4-1]))
}

// bsonString returns the BSON string representation of the rational.
// The byte order of the result is little-endian.
func (r Rational) bsonString() []byte {
	var tmp [41]byte
	s := r.append(tmp[:0])
	l := len(s) + 1
	data := make([]byte, 4, 4+l)
	binary.LittleEndian.PutUint32(data, uint32(l)) //nolint:gosec
	data = append(data, s...)
	return append(data, 0)
}

func parseBSONFloat64(data []byte) (Rational, error) {
	if len(data) != 8 {
		return Rational{}, fmt.Errorf("%w: invalid data length %v", errInvalidFormat, len(data))
	}
	return newFromFloat64(math.Float64frombits(binary.LittleEndian.Uint64(data)))
}

func parseBSONInt32(data []byte) (Rational, error) {
	if len(data) != 4 {
		return Rational{}, fmt.Errorf("%w: invalid data length %v", errInvalidFormat, len(data))
	}
	return NewFromInt64(int64(int32(binary.LittleEndian.Uint32(data)))), nil //nolint:gosec
}

func parseBSONInt64(data []byte) (Rational, error) {
	if len(data) != 8 {
		return Rational{}, fmt.Errorf("%w: invalid data length %v", errInvalidFormat, len(data))
	}
	return NewFromInt64(int64(binary.LittleEndian.Uint64(data))), nil //nolint:gosec
}

// Scan implements the [sql.Scanner] interface.
// Strings in the format accepted by [Parse], integers and floats are supported.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (r *Rational) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*r, err = parse(value)
	case []byte:
		*r, err = parse(string(value))
	case int64:
		*r = NewFromInt64(value)
	case float64:
		*r, err = newFromFloat64(value)
	case nil:
		err = fmt.Errorf("%T does not support null values, use %T or *%T", Rational{}, NullRational{}, Rational{})
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Rational{}, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// Value always returns the canonical form.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (r Rational) Value() (driver.Value, error) {
	return r.String(), nil
}

// EncodeMsgpack implements the [msgpack.CustomEncoder] interface.
// The rational is encoded as an array of two integers: numerator and denominator.
//
// [msgpack.CustomEncoder]: https://pkg.go.dev/github.com/vmihailenco/msgpack/v4#CustomEncoder
func (r Rational) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeInt(r.Num()); err != nil {
		return err
	}
	return enc.EncodeInt(r.Denom())
}

// DecodeMsgpack implements the [msgpack.CustomDecoder] interface.
// See also method [Rational.EncodeMsgpack].
//
// [msgpack.CustomDecoder]: https://pkg.go.dev/github.com/vmihailenco/msgpack/v4#CustomDecoder
func (r *Rational) DecodeMsgpack(dec *msgpack.Decoder) error {
	var err error
	*r, err = decodeMsgpack(dec)
	if err != nil {
		return fmt.Errorf("decoding %T: %w", Rational{}, err)
	}
	return nil
}

func decodeMsgpack(dec *msgpack.Decoder) (Rational, error) {
	l, err := dec.DecodeArrayLen()
	if err != nil {
		return Rational{}, err
	}
	if l != 2 {
		return Rational{}, fmt.Errorf("%w: invalid array length %v", errInvalidFormat, l)
	}
	num, err := dec.DecodeInt64()
	if err != nil {
		return Rational{}, err
	}
	den, err := dec.DecodeInt64()
	if err != nil {
		return Rational{}, err
	}
	return newRationalSafe(num, den)
}

// NullRational represents a rational that can be null.
// Its zero value is null.
// NullRational is not thread-safe.
type NullRational struct {
	Rational Rational
	Valid    bool
}

// Scan implements the [sql.Scanner] interface.
// See also method [Rational.Scan].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (n *NullRational) Scan(value any) error {
	if value == nil {
		n.Rational = Rational{}
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Rational.Scan(value)
}

// Value implements the [driver.Valuer] interface.
// See also method [Rational.Value].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (n NullRational) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Rational.Value()
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also method [Rational.UnmarshalJSON].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (n *NullRational) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		n.Rational = Rational{}
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Rational.UnmarshalJSON(text)
}

// MarshalJSON implements the [json.Marshaler] interface.
// See also method [Rational.MarshalJSON].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (n NullRational) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Rational.MarshalJSON()
}

// UnmarshalBSONValue implements the [v2/bson.ValueUnmarshaler] interface.
// See also method [Rational.UnmarshalBSONValue].
//
// [v2/bson.ValueUnmarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueUnmarshaler
func (n *NullRational) UnmarshalBSONValue(typ byte, data []byte) error {
	if typ == 10 {
		n.Rational = Rational{}
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Rational.UnmarshalBSONValue(typ, data)
}

// MarshalBSONValue implements the [v2/bson.ValueMarshaler] interface.
// See also method [Rational.MarshalBSONValue].
//
// [v2/bson.ValueMarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueMarshaler
func (n NullRational) MarshalBSONValue() (typ byte, data []byte, err error) {
	if !n.Valid {
		return 10, nil, nil
	}
	return n.Rational.MarshalBSONValue()
}
