package stylecode

import (
	"fmt"
	"strings"
)

// PrettyPrint renders v as labelled lines, one field per line.
func PrettyPrint(v Vector) string {
	var b strings.Builder
	for _, f := range Fields {
		label := f.Label()
		if f != FieldScore {
			label = fmt.Sprintf("%-5s", label)
		}
		fmt.Fprintf(&b, "%s: %s\n", label, v.Value(f))
	}
	return b.String()
}

// RawPrint renders the field values of v, one per line, without labels.
func RawPrint(v Vector) string {
	return strings.Join(v.Values(), "\n") + "\n"
}
