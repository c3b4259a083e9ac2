// Package extenso writes monetary amounts out in Brazilian Portuguese words,
// the way they appear in the "Valor" line of a contract
// ("mil e duzentos e trinta e quatro reais e cinquenta e seis centavos").
package extenso

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrOutOfRange is returned for negative amounts and for amounts of one
// trillion or more, which have no scale word in the table below.
var ErrOutOfRange = errors.New("extenso: amount out of range")

// Limit is the exclusive upper bound of spellable amounts (10^12).
var Limit = decimal.New(1, 12)

var units = [...]string{
	"zero", "um", "dois", "três", "quatro",
	"cinco", "seis", "sete", "oito", "nove",
}

// teens is indexed by n-10.
var teens = [...]string{
	"dez", "onze", "doze", "treze", "quatorze",
	"quinze", "dezesseis", "dezessete", "dezoito", "dezenove",
}

// tens is indexed by the tens digit; 0 and 1 are handled by units/teens.
var tens = [...]string{
	"", "", "vinte", "trinta", "quarenta",
	"cinquenta", "sessenta", "setenta", "oitenta", "noventa",
}

// hundreds is indexed by the hundreds digit. Exactly 100 is "cem".
var hundreds = [...]string{
	"", "cento", "duzentos", "trezentos", "quatrocentos",
	"quinhentos", "seiscentos", "setecentos", "oitocentos", "novecentos",
}

type scale struct {
	singular string
	plural   string
}

// scales is indexed by group position minus one (thousands first).
var scales = [...]scale{
	{"mil", "mil"},
	{"milhão", "milhões"},
	{"bilhão", "bilhões"},
}

// Spell returns the long form of amount in reais and centavos. The amount is
// first rounded half-up to cents.
func Spell(amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return "", fmt.Errorf("%w: %s", ErrOutOfRange, amount.String())
	}
	q := amount.Round(2)
	if q.GreaterThanOrEqual(Limit) {
		return "", fmt.Errorf("%w: %s", ErrOutOfRange, amount.String())
	}

	whole := q.IntPart()
	cents := q.Sub(decimal.NewFromInt(whole)).Shift(2).IntPart()

	wholeWords, err := Number(whole)
	if err != nil {
		return "", err
	}
	unit := "reais"
	if whole == 1 {
		unit = "real"
	}

	if cents == 0 {
		return wholeWords + " " + unit, nil
	}

	centsWords := group(int(cents))
	centsUnit := "centavos"
	if cents == 1 {
		centsUnit = "centavo"
	}
	return fmt.Sprintf("%s %s e %s %s", wholeWords, unit, centsWords, centsUnit), nil
}

// Number spells a whole number in [0, 10^12).
func Number(n int64) (string, error) {
	if n < 0 || n >= Limit.IntPart() {
		return "", fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	if n == 0 {
		return units[0], nil
	}

	// Base-1000 groups, least significant first.
	var groups []int
	for n > 0 {
		groups = append(groups, int(n%1000))
		n /= 1000
	}

	var parts []string
	for idx, g := range groups {
		if g == 0 {
			continue
		}
		words := group(g)
		if idx == 0 {
			parts = append(parts, words)
			continue
		}
		s := scales[idx-1]
		switch {
		case idx == 1 && g == 1:
			parts = append(parts, s.singular)
		case g == 1:
			parts = append(parts, words+" "+s.singular)
		default:
			parts = append(parts, words+" "+s.plural)
		}
	}

	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		pos := len(parts) - 1 - i
		if pos > 0 {
			if i == 0 {
				b.WriteString(" e ")
			} else {
				b.WriteString(", ")
			}
		}
		b.WriteString(parts[i])
	}
	return b.String(), nil
}

// group spells 0..999. Zero yields the empty string.
func group(n int) string {
	if n == 0 {
		return ""
	}
	if n == 100 {
		return "cem"
	}

	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, hundreds[h])
	}

	rest := n % 100
	switch {
	case rest == 0:
	case rest < 10:
		parts = append(parts, units[rest])
	case rest < 20:
		parts = append(parts, teens[rest-10])
	default:
		parts = append(parts, tens[rest/10])
		if u := rest % 10; u > 0 {
			parts = append(parts, units[u])
		}
	}

	return strings.Join(parts, " e ")
}
