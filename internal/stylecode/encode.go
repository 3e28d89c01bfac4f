package stylecode

import (
	"fmt"
	"strconv"
	"strings"
)

// Encode renders v as a Style Code. v must be valid; Encode panics otherwise.
func (v Vector) Encode() string {
	if errs := v.Validate(); len(errs) > 0 {
		panic(fmt.Sprintf("stylecode: encode of invalid vector: %v", errs[0]))
	}

	f := FormatOf(v)
	l := layouts[f]
	value := pack(l.dims, dimensions(v, f))
	idx := unpack(value, l.letterRadices())

	var b strings.Builder
	b.Grow(8)
	b.WriteByte(l.letters[0].symbol(idx[0]))
	b.WriteString(strconv.Itoa(v.Points()))
	for i := 1; i < len(idx); i++ {
		b.WriteByte(l.letters[i].symbol(idx[i]))
	}

	if v.Sog+v.Pen != 0 {
		if f == OneLetter {
			b.WriteByte(separator)
		}
		b.WriteString(strconv.Itoa(v.Sog))
		if v.Pen != 0 {
			b.WriteByte(penaltySymbol(v.Pen))
		}
	}
	return b.String()
}

// Encode is a convenience wrapper that checks v before encoding it.
func Encode(v Vector) (string, error) {
	if errs := v.Validate(); len(errs) > 0 {
		return "", fmt.Errorf("stylecode.Encode: %w", errs[0])
	}
	return v.Encode(), nil
}
