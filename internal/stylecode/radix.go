package stylecode

// pack folds digits into one integer, most-significant first.
func pack(radices, digits []int) int {
	value := 0
	for i, r := range radices {
		value = value*r + digits[i]
	}
	return value
}

// unpack is the inverse of pack. The leading digit is not reduced, so an
// oversized value surfaces there instead of wrapping.
func unpack(value int, radices []int) []int {
	digits := make([]int, len(radices))
	for i := len(radices) - 1; i > 0; i-- {
		digits[i] = value % radices[i]
		value /= radices[i]
	}
	digits[0] = value
	return digits
}
