package stylecode

import (
	"errors"
	"regexp"
	"strconv"
)

// ErrInvalidCode is returned for any string that does not denote a valid code.
var ErrInvalidCode = errors.New("stylecode: invalid code")

// codePattern is matched against lower-cased input. Each optional group is
// only reachable through its parent: third and sog need second, pen needs sog.
var codePattern = regexp.MustCompile(
	`^([a-z])([0-9]{1,2})(?:([a-hj-np-z])(?:([a-z])?(?:([0-3])([0-9a-l])?)?)?)?$`)

const (
	groupFirst = iota + 1
	groupPoints
	groupSecond
	groupThird
	groupSog
	groupPen
)

// Decode parses a Style Code. Matching is case-insensitive for ASCII letters.
// Every failure yields ErrInvalidCode.
func Decode(code string) (Vector, error) {
	m := codePattern.FindStringSubmatch(asciiLower(code))
	if m == nil {
		return Vector{}, ErrInvalidCode
	}

	points, err := strconv.Atoi(m[groupPoints])
	if err != nil {
		return Vector{}, ErrInvalidCode
	}

	var v Vector
	if s := m[groupSog]; s != "" {
		v.Sog = int(s[0] - '0')
	}
	if s := m[groupPen]; s != "" {
		pen, ok := penalties.index(s[0])
		if !ok {
			return Vector{}, ErrInvalidCode
		}
		v.Pen = pen
	}

	f := OneLetter
	letters := m[groupFirst]
	switch second := m[groupSecond]; {
	case m[groupThird] != "":
		f = ThreeLetter
		letters += second + m[groupThird]
	case second != "" && second[0] != separator:
		f = TwoLetter
		letters += second
	}

	l := layouts[f]
	idx := make([]int, len(l.letters))
	for i, a := range l.letters {
		n, ok := a.index(letters[i])
		if !ok {
			return Vector{}, ErrInvalidCode
		}
		idx[i] = n
	}
	setDimensions(&v, f, unpack(pack(l.letterRadices(), idx), l.dims))

	judged := v.Points()
	if points < judged {
		return Vector{}, ErrInvalidCode
	}
	v.Bas = points - judged

	if !v.Valid() {
		return Vector{}, ErrInvalidCode
	}
	return v, nil
}

// MustDecode is like Decode but panics on failure.
func MustDecode(code string) Vector {
	v, err := Decode(code)
	if err != nil {
		panic(err.Error() + ": " + strconv.Quote(code))
	}
	return v
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
