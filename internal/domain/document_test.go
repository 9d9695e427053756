package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCPF_KnownGood(t *testing.T) {
	assert.True(t, IsValidCPF("11144477735"))
	assert.True(t, IsValidCPF("111.444.777-35"), "formatted input is cleaned first")
	assert.True(t, IsValidCPF("52998224725"))
}

func TestIsValidCPF_RepeatedDigitsRejected(t *testing.T) {
	// These satisfy the checksum arithmetic but are explicitly invalid.
	for _, cpf := range []string{
		"00000000000", "11111111111", "22222222222", "99999999999",
	} {
		assert.False(t, IsValidCPF(cpf), "cpf %s", cpf)
	}
}

func TestIsValidCPF_BadCheckDigits(t *testing.T) {
	assert.False(t, IsValidCPF("11144477734"))
	assert.False(t, IsValidCPF("11144477745"))
}

func TestIsValidCPF_WrongLength(t *testing.T) {
	assert.False(t, IsValidCPF("1114447773"))
	assert.False(t, IsValidCPF("111444777350"))
	assert.False(t, IsValidCPF(""))
}

func TestIsValidCNPJ_KnownGood(t *testing.T) {
	assert.True(t, IsValidCNPJ("11222333000181"))
	assert.True(t, IsValidCNPJ("11.222.333/0001-81"))
}

func TestIsValidCNPJ_Rejections(t *testing.T) {
	assert.False(t, IsValidCNPJ("11111111111111"), "repeated digits")
	assert.False(t, IsValidCNPJ("11222333000182"), "bad check digit")
	assert.False(t, IsValidCNPJ("11222333000"), "wrong length")
}

func TestIsValidDocument_DispatchesByLength(t *testing.T) {
	assert.True(t, IsValidDocument("111.444.777-35"), "11 digits routes to CPF")
	assert.True(t, IsValidDocument("11.222.333/0001-81"), "14 digits routes to CNPJ")
	assert.False(t, IsValidDocument("123456"), "other lengths are invalid")
	assert.False(t, IsValidDocument(""))
}

func TestOnlyDigits(t *testing.T) {
	assert.Equal(t, "11999887766", OnlyDigits("(11) 99988-7766"))
	assert.Equal(t, "01310100", OnlyDigits("01310-100"))
	assert.Equal(t, "", OnlyDigits("abc"))
}
