package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var enIN = message.NewPrinter(language.MustParse("en-IN"))

// Numeric coerces a projection value to a finite float. Nil, empty strings
// and anything that does not parse are not numeric.
func Numeric(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case *float64:
		if v == nil {
			return 0, false
		}
		return Numeric(*v)
	case *int:
		if v == nil {
			return 0, false
		}
		return float64(*v), true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func group(f float64) string {
	return enIN.Sprintf("%v", number.Decimal(f, number.MaxFractionDigits(2)))
}

// Amount renders a grouped number without a currency symbol, for consumers
// whose fonts cannot carry the rupee sign. Non-numeric input renders empty.
func Amount(value any) string {
	f, ok := Numeric(value)
	if !ok {
		return ""
	}
	return group(f)
}

// Money renders a currency value with en-IN grouping and at most two
// decimals. Non-numeric input renders as an empty string, never as zero.
func Money(value any) string {
	f, ok := Numeric(value)
	if !ok {
		return ""
	}
	return "₹" + group(f)
}

// Pct renders a percentage with the same decimal rule.
func Pct(value any) string {
	f, ok := Numeric(value)
	if !ok {
		return ""
	}
	return group(f) + "%"
}

// PerKg renders a rate applied per chargeable kilogram.
func PerKg(value any) string {
	money := Money(value)
	if money == "" {
		return ""
	}
	return money + "/kg"
}

// Dash renders any scalar field, substituting an em-dash for absent values.
func Dash(value any) string {
	switch v := value.(type) {
	case nil:
		return "—"
	case string:
		if strings.TrimSpace(v) == "" {
			return "—"
		}
		return v
	case *string:
		if v == nil {
			return "—"
		}
		return Dash(*v)
	case *float64:
		if v == nil {
			return "—"
		}
		return group(*v)
	case *int:
		if v == nil {
			return "—"
		}
		return strconv.Itoa(*v)
	case float64:
		return group(v)
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	default:
		return fmt.Sprint(v)
	}
}

// DashDate renders a date or the em-dash placeholder.
func DashDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "—"
	}
	return t.Format("02 Jan 2006")
}

func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// SanitizeFileName keeps download file names to a safe character set.
func SanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
