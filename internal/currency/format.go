// Package currency formats money and dates the way Brazilian contracts print
// them: "R$ 1.234,56" and "31/12/2024".
package currency

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DatePlaceholder is printed where a date is absent.
const DatePlaceholder = "—"

const (
	dateLayoutBR    = "02/01/2006"
	dateLayoutInput = "2006-01-02"
)

// Quantize rounds d half-up to cents.
func Quantize(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatBRL renders d as "R$ X.XXX,XX".
func FormatBRL(d decimal.Decimal) string {
	s := Quantize(d).StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, frac, _ := strings.Cut(s, ".")
	return "R$ " + sign + groupThousands(intPart) + "," + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ParseBRL reads back a value produced by FormatBRL.
func ParseBRL(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "R$")
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, ".", "")
	raw = strings.Replace(raw, ",", ".", 1)

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse brl %q: %w", s, err)
	}
	return d, nil
}

// ParseAmount parses a form amount such as "1500,50" or "1500.50". Blank or
// malformed input reports false.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FormatDate renders t as DD/MM/YYYY, or DatePlaceholder when t is nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return DatePlaceholder
	}
	return t.Format(dateLayoutBR)
}

// ParseDate parses a YYYY-MM-DD form date. Blank input yields nil, nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayoutInput, s)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", s, err)
	}
	return &t, nil
}

// FormatInputDate renders t back in the YYYY-MM-DD form layout.
func FormatInputDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayoutInput)
}
