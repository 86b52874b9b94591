package collage

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIndices converts an index spec such as "0,2,5-7" into pattern
// indices. Tokens are expanded left to right and duplicates are kept.
// A token that is not all digits must start and end with a digit; those
// two digits bound an inclusive range, so "1-3" and "1:3" both give 1,2,3
// and a descending token like "3-1" gives nothing. Range checking against
// the catalog happens in PatternAt.
func ParseIndices(spec string) ([]int, error) {
	var out []int
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, fmt.Errorf("%w: empty token in %q", ErrMalformedIndexSpec, spec)
		}
		if isDigits(tok) {
			n, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrMalformedIndexSpec, tok, err)
			}
			out = append(out, n)
			continue
		}
		first, last := tok[0], tok[len(tok)-1]
		if !isDigit(first) || !isDigit(last) {
			return nil, fmt.Errorf("%w: %q", ErrMalformedIndexSpec, tok)
		}
		for i := int(first - '0'); i <= int(last-'0'); i++ {
			out = append(out, i)
		}
	}
	return out, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return len(s) > 0
}
