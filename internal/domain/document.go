package domain

import (
	govalidator "github.com/go-playground/validator/v10"

	"github.com/rafascerqueira/v-storefront/pkg/validator"
)

func init() {
	// Make the document check available as a `brdoc` struct tag.
	_ = validator.Register("brdoc", func(fl govalidator.FieldLevel) bool {
		return IsValidDocument(fl.Field().String())
	})
}

// OnlyDigits strips every non-digit character from s.
func OnlyDigits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// IsValidDocument validates a Brazilian tax document, dispatching on the
// cleaned length: 11 digits validates as CPF, 14 as CNPJ. Anything else is
// invalid.
func IsValidDocument(doc string) bool {
	digits := OnlyDigits(doc)
	switch len(digits) {
	case 11:
		return IsValidCPF(digits)
	case 14:
		return IsValidCNPJ(digits)
	default:
		return false
	}
}

// IsValidCPF validates an 11-digit CPF. A string of 11 identical digits is
// always rejected even though its check digits happen to satisfy the sum.
func IsValidCPF(cpf string) bool {
	digits := OnlyDigits(cpf)
	if len(digits) != 11 || allSameDigits(digits) {
		return false
	}

	d1 := checkDigit(digits[:9], cpfWeights(10))
	if int(digits[9]-'0') != d1 {
		return false
	}

	d2 := checkDigit(digits[:10], cpfWeights(11))
	return int(digits[10]-'0') == d2
}

// IsValidCNPJ validates a 14-digit CNPJ using the same mod-11 scheme with
// the CNPJ weight tables.
func IsValidCNPJ(cnpj string) bool {
	digits := OnlyDigits(cnpj)
	if len(digits) != 14 || allSameDigits(digits) {
		return false
	}

	d1 := checkDigit(digits[:12], cnpjFirstWeights)
	if int(digits[12]-'0') != d1 {
		return false
	}

	d2 := checkDigit(digits[:13], cnpjSecondWeights)
	return int(digits[13]-'0') == d2
}

var (
	cnpjFirstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjSecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// cpfWeights builds the descending CPF weight table starting at first.
func cpfWeights(first int) []int {
	weights := make([]int, first-1)
	for i := range weights {
		weights[i] = first - i
	}
	return weights
}

// checkDigit computes a weighted-sum-mod-11 check digit; a remainder below
// 2 maps to zero.
func checkDigit(digits string, weights []int) int {
	var sum int
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

func allSameDigits(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}
