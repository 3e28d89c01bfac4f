package stylecode

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names a value that can be read from a decoded code.
type Field string

const (
	FieldScore Field = "score"
	FieldBas   Field = "bas"
	FieldMov   Field = "mov"
	FieldDin   Field = "din"
	FieldCom   Field = "com"
	FieldSapd  Field = "sapd"
	FieldGcc   Field = "gcc"
	FieldDif   Field = "dif"
	FieldSog   Field = "sog"
	FieldPen   Field = "pen"
)

// Fields lists every field in presentation order.
var Fields = []Field{
	FieldScore, FieldBas, FieldMov, FieldDin, FieldCom,
	FieldSapd, FieldGcc, FieldDif, FieldSog, FieldPen,
}

func (f Field) Valid() bool {
	switch f {
	case FieldScore, FieldBas, FieldMov, FieldDin, FieldCom,
		FieldSapd, FieldGcc, FieldDif, FieldSog, FieldPen:
		return true
	}
	return false
}

// Label is the upper-case column label used in reports and CSV headers.
func (f Field) Label() string {
	if f == FieldScore {
		return "Score"
	}
	return strings.ToUpper(string(f))
}

// ParseField resolves a field name case-insensitively.
func ParseField(name string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(name)))
	if !f.Valid() {
		return "", fmt.Errorf("stylecode.ParseField: unknown field %q", name)
	}
	return f, nil
}

// Int returns the integer value of a dimension field. Score has no integer
// value and reports false, as does an unknown field.
func (v Vector) Int(f Field) (int, bool) {
	switch f {
	case FieldBas:
		return v.Bas, true
	case FieldMov:
		return v.Mov, true
	case FieldDin:
		return v.Din, true
	case FieldCom:
		return v.Com, true
	case FieldSapd:
		return v.Sapd, true
	case FieldGcc:
		return v.Gcc, true
	case FieldDif:
		return v.Dif, true
	case FieldSog:
		return v.Sog, true
	case FieldPen:
		return v.Pen, true
	}
	return 0, false
}

// Value renders a single field as text. Unknown fields render empty.
func (v Vector) Value(f Field) string {
	if f == FieldScore {
		return FormatScore(v.Score())
	}
	n, ok := v.Int(f)
	if !ok {
		return ""
	}
	return strconv.Itoa(n)
}

// Values renders every field in presentation order.
func (v Vector) Values() []string {
	out := make([]string, len(Fields))
	for i, f := range Fields {
		out[i] = v.Value(f)
	}
	return out
}
