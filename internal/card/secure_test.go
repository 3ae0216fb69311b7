package card

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySecret(t *testing.T) {
	tests := []struct {
		name          string
		cardNumber    string
		virtualPrefix string
		wantField     string
		wantBIN       string
	}{
		{
			name:          "virtual prefix routes to cryptogram",
			cardNumber:    "5088770012345678",
			virtualPrefix: "50887700",
			wantField:     FieldCryptogram,
			wantBIN:       "5088770",
		},
		{
			name:          "other prefix routes to PIN",
			cardNumber:    "4111111111111111",
			virtualPrefix: "50887700",
			wantField:     FieldPIN,
			wantBIN:       "4111111",
		},
		{
			name:          "empty virtual prefix always routes to PIN",
			cardNumber:    "5088770012345678",
			virtualPrefix: "",
			wantField:     FieldPIN,
			wantBIN:       "5088770",
		},
		{
			name:          "seven digit prefix does not match eight digit policy",
			cardNumber:    "5088770012345678",
			virtualPrefix: "5088770",
			wantField:     FieldPIN,
			wantBIN:       "5088770",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route := ClassifySecret(tt.cardNumber, tt.virtualPrefix)
			assert.Equal(t, tt.wantField, route.Field)
			assert.Equal(t, tt.wantBIN, route.BIN)
			assert.Equal(t, MaskPAN(tt.cardNumber), route.MaskedCardNumber)
		})
	}
}

func TestMaskPAN(t *testing.T) {
	masked := MaskPAN("4111111111111111")

	assert.True(t, strings.HasSuffix(masked, "1111"))
	assert.Equal(t, strings.Repeat("*", 12)+"1111", masked)
	// no original digit survives outside the last four
	assert.NotContains(t, masked[:12], "1")
	assert.Len(t, masked, 16)
}

func TestMaskPANShort(t *testing.T) {
	assert.Equal(t, "****", MaskPAN("1234"))
	assert.Equal(t, "", MaskPAN(""))
}

func TestMaskExpiry(t *testing.T) {
	assert.Equal(t, "****", MaskExpiry("2508"))
	assert.Equal(t, "", MaskExpiry(""))
}

func TestAllowedPrefix(t *testing.T) {
	allowed := []string{"508877", "423456"}

	assert.True(t, AllowedPrefix("50887700", allowed))
	assert.True(t, AllowedPrefix("4234560011", allowed))
	assert.False(t, AllowedPrefix("4111111111", allowed))
	assert.False(t, AllowedPrefix("50887700", nil))
	assert.False(t, AllowedPrefix("50887700", []string{""}))
}
