package report

import (
	"fmt"
	"math"
	"strconv"
)

// byteSuffixes orders magnitude suffixes by powers of 1000.
func byteSuffixes() []string {
	return []string{"", "K", "M", "G", "T", "P", "E"}
}

// PrettyByteTotal renders a byte count as a two-decimal value scaled to the
// largest fitting power-of-1000 suffix, e.g. 1500000 -> "1.50 M". A zero or
// out-of-range count clamps to the no-suffix case instead of evaluating an
// undefined logarithm. The caller appends the trailing "B".
func PrettyByteTotal(byteCount uint64) string {
	suffixes := byteSuffixes()
	idx := 0
	if byteCount > 0 {
		idx = int(math.Log(float64(byteCount)) / math.Log(1000))
	}
	if idx < 0 || idx >= len(suffixes) {
		idx = 0
	}
	return fmt.Sprintf("%.2f %s", float64(byteCount)/math.Pow(1000, float64(idx)), suffixes[idx])
}

// CommaNumber renders n with thousands separators, e.g. 1234567 ->
// "1,234,567".
func CommaNumber(n uint64) string {
	s := strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
