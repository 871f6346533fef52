package services

import (
	"regexp"
	"strconv"
	"strings"
)

// SalaryInfo is the normalized form of a free-text salary string.
type SalaryInfo struct {
	Min      *int
	Max      *int
	Currency string
	RawText  *string
}

var (
	salaryCleanupRegex = regexp.MustCompile(`[^0-9\-–—$€£¥,K\s]`)
	salaryNumberRegex  = regexp.MustCompile(`[0-9,]+`)
)

// ParseSalary extracts a {min, max, currency} triple from loosely formatted
// salary text like "$120K - $150K" or "€50,000". Currency symbols are detected
// on the original text before cleanup strips them. Numbers with at most three
// digits are scaled by 1000 when the text carries a literal 'K'; longer numbers
// are taken as-is even next to a 'K'. This mirrors the historical heuristic and
// is intentionally lossy for mixed-scale strings.
func ParseSalary(text string) SalaryInfo {
	if text == "" {
		return SalaryInfo{Currency: "USD"}
	}

	currency := detectCurrency(text)
	cleaned := salaryCleanupRegex.ReplaceAllString(strings.ToUpper(text), "")
	hasKSuffix := strings.Contains(cleaned, "K")

	var numbers []int
	for _, token := range salaryNumberRegex.FindAllString(cleaned, -1) {
		digits := strings.ReplaceAll(token, ",", "")
		value, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		if hasKSuffix && len(digits) <= 3 {
			value *= 1000
		}
		numbers = append(numbers, value)
	}

	info := SalaryInfo{Currency: currency, RawText: &text}
	if len(numbers) == 0 {
		return info
	}

	minValue, maxValue := numbers[0], numbers[0]
	for _, n := range numbers[1:] {
		if n < minValue {
			minValue = n
		}
		if n > maxValue {
			maxValue = n
		}
	}
	info.Min, info.Max = &minValue, &maxValue
	return info
}

func detectCurrency(text string) string {
	switch {
	case strings.Contains(text, "€"):
		return "EUR"
	case strings.Contains(text, "£"):
		return "GBP"
	case strings.Contains(text, "¥"):
		return "JPY"
	default:
		return "USD"
	}
}
