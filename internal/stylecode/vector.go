// Package stylecode encodes and decodes Style Codes, the compact alphanumeric
// form of a judged-performance score vector.
package stylecode

import (
	"fmt"
	"strconv"
)

const (
	// MaxDimension is the upper bound of the seven judged dimensions and of SOG.
	MaxDimension = 3
	// MaxPenalties is the upper bound of the penalty count.
	MaxPenalties = 20
)

// Vector is the nine-field score vector a Style Code denotes.
type Vector struct {
	Bas  int `json:"bas" yaml:"bas"`
	Mov  int `json:"mov" yaml:"mov"`
	Din  int `json:"din" yaml:"din"`
	Com  int `json:"com" yaml:"com"`
	Sapd int `json:"sapd" yaml:"sapd"`
	Gcc  int `json:"gcc" yaml:"gcc"`
	Dif  int `json:"dif" yaml:"dif"`
	Sog  int `json:"sog" yaml:"sog"`
	Pen  int `json:"pen" yaml:"pen"`
}

// FieldError reports a single out-of-range field.
type FieldError struct {
	Field Field `json:"field"`
	Value int   `json:"value"`
	Max   int   `json:"max"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %d out of range 0-%d", e.Field, e.Value, e.Max)
}

// Validate returns every field of v that lies outside its range.
func (v Vector) Validate() []FieldError {
	var errs []FieldError
	check := func(f Field, value, max int) {
		if value < 0 || value > max {
			errs = append(errs, FieldError{Field: f, Value: value, Max: max})
		}
	}
	check(FieldBas, v.Bas, MaxDimension)
	check(FieldMov, v.Mov, MaxDimension)
	check(FieldDin, v.Din, MaxDimension)
	check(FieldCom, v.Com, MaxDimension)
	check(FieldSapd, v.Sapd, MaxDimension)
	check(FieldGcc, v.Gcc, MaxDimension)
	check(FieldDif, v.Dif, MaxDimension)
	check(FieldSog, v.Sog, MaxDimension)
	check(FieldPen, v.Pen, MaxPenalties)
	return errs
}

// Valid reports whether every field of v is within its range.
func (v Vector) Valid() bool {
	return len(v.Validate()) == 0
}

// Points is the sum of the seven judged dimensions.
func (v Vector) Points() int {
	return v.Bas + v.Mov + v.Din + v.Com + v.Sapd + v.Gcc + v.Dif
}

// Score computes (55 + 2*points + sog - 5*pen) / 10.
func (v Vector) Score() float64 {
	return float64(55+2*v.Points()+v.Sog-5*v.Pen) / 10.0
}

// FormatScore renders a score with the shortest exact decimal form ("5.5", "6").
func FormatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
