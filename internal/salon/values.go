package salon

import (
	"fmt"
	"github.com/shopspring/decimal"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const maxDateDigits = 8

// FormatDateInput applies the DD/MM/YYYY input mask: non-digits are dropped,
// at most eight digits are kept and a slash follows the day and month groups.
func FormatDateInput(s string) string {
	digits := make([]rune, 0, maxDateDigits)
	for _, r := range s {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			digits = append(digits, r)
			if len(digits) == maxDateDigits {
				break
			}
		}
	}

	var b strings.Builder
	for i, r := range digits {
		if i == 2 || i == 4 {
			b.WriteByte('/')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseStock coerces free-text stock input. Blank input means zero.
func ParseStock(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: stock %q is not a whole number", ErrInvalidInput, s)
	}
	return n, nil
}

// leadingNumber matches the longest numeric prefix, the way a browser's
// parseFloat reads "10,50" as 10.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseOrderValue reads an order value for summation. Only the leading number
// counts, so "10,50" is 10 and "45 reais" is 45. Input with no leading number,
// NaN included, counts as zero.
func ParseOrderValue(s string) decimal.Decimal {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return d
}
