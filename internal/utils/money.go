package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatRupee renders an integer amount with Indian digit grouping,
// e.g. 150000 -> "₹1,50,000".
func FormatRupee(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s₹%s", sign, groupIndian(amount))
}

// FormatRupeePlain is FormatRupee without the currency symbol, for contexts
// (like PDF core fonts) that cannot render "₹".
func FormatRupeePlain(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "Rs " + groupIndian(amount)
}

// ParseRupeeToInt parses "₹1,500" or "Rs 1500" into an integer rupee amount.
func ParseRupeeToInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(strings.ToLower(s), "rs")
	replacer := strings.NewReplacer(",", "", ".", "", " ", "")
	s = replacer.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("invalid rupee amount")
	}
	return strconv.ParseInt(s, 10, 64)
}

// groupIndian applies the 3-then-2 grouping used for rupees.
func groupIndian(n int64) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}
	head := str[:len(str)-3]
	tail := str[len(str)-3:]
	var out strings.Builder
	for i, c := range head {
		if i != 0 && (len(head)-i)%2 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String() + "," + tail
}
