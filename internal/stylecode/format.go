package stylecode

// Format is the letter layout of a code.
type Format int

const (
	OneLetter Format = iota + 1
	TwoLetter
	ThreeLetter
)

func (f Format) String() string {
	switch f {
	case OneLetter:
		return "1-letter"
	case TwoLetter:
		return "2-letter"
	case ThreeLetter:
		return "3-letter"
	}
	return "unknown"
}

// Letters is the number of letters a code in this format carries.
func (f Format) Letters() int {
	return len(layouts[f].letters)
}

// layout describes how one format packs dimensions and renders letters.
type layout struct {
	// dims are the radices of the packed dimensions, most-significant first.
	dims []int
	// letters are the alphabets of the rendered letters, most-significant first.
	letters []alphabet
}

func (l layout) letterRadices() []int {
	r := make([]int, len(l.letters))
	for i, a := range l.letters {
		r[i] = a.size()
	}
	return r
}

var layouts = map[Format]layout{
	OneLetter:   {dims: []int{3, 3, 3}, letters: []alphabet{alphabet26}},
	TwoLetter:   {dims: []int{4, 4, 4, 2, 2, 2}, letters: []alphabet{alphabet26, alphabet23}},
	ThreeLetter: {dims: []int{4, 4, 4, 4, 4, 4}, letters: []alphabet{alphabet26, alphabet23, alphabet26}},
}

// FormatOf selects the shortest format able to carry v.
func FormatOf(v Vector) Format {
	switch {
	case v.Com == 0 && v.Sapd == 0 && v.Dif == 0 &&
		v.Mov < 3 && v.Din < 3 && v.Gcc < 3 && v.Mov+v.Din+v.Gcc < 6:
		return OneLetter
	case v.Com < 2 && v.Sapd < 2 && v.Dif < 2:
		return TwoLetter
	default:
		return ThreeLetter
	}
}

// dimensions lists the packed fields of v in packing order.
func dimensions(v Vector, f Format) []int {
	if f == OneLetter {
		return []int{v.Mov, v.Din, v.Gcc}
	}
	return []int{v.Mov, v.Din, v.Gcc, v.Com, v.Sapd, v.Dif}
}

// setDimensions is the inverse of dimensions. Fields the format does not
// carry stay zero.
func setDimensions(v *Vector, f Format, d []int) {
	v.Mov, v.Din, v.Gcc = d[0], d[1], d[2]
	if f != OneLetter {
		v.Com, v.Sapd, v.Dif = d[3], d[4], d[5]
	}
}
