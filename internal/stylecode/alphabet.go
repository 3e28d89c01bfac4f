package stylecode

import "strings"

// alphabet maps indices to symbols. Tables are lower-case ASCII.
type alphabet string

const (
	alphabet26 alphabet = "abcdefghijklmnopqrstuvwxyz"
	// alphabet23 leaves out i and o, and z which is the suffix separator.
	alphabet23 alphabet = "abcdefghjklmnpqrstuvwxy"
	penalties  alphabet = "0123456789abcdefghjkl"
)

// separator marks a suffix after a one-letter code.
const separator = 'z'

func (a alphabet) size() int { return len(a) }

func (a alphabet) symbol(i int) byte { return a[i] }

func (a alphabet) index(c byte) (int, bool) {
	i := strings.IndexByte(string(a), c)
	return i, i >= 0
}

// penaltySymbol clamps n to MaxPenalties before lookup.
func penaltySymbol(n int) byte {
	return penalties.symbol(min(n, MaxPenalties))
}
