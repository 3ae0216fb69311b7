// Package card classifies caller-supplied card secrets and produces masked
// renderings safe for logging. Masked values never reach the wire; they are
// only substituted into logged copies of a payload.
package card

import "strings"

// Destination fields for the caller-supplied secret digit code. Exactly one
// of the two is populated per call.
const (
	FieldPIN        = "PIN"
	FieldCryptogram = "Cryptogram"
)

const maskRune = '*'

const (
	binDigits    = 7
	prefixDigits = 8
)

// SecretRoute is the outcome of classifying a card secret: the destination
// field for the secret and a masked card number for logging.
type SecretRoute struct {
	Field            string
	BIN              string
	MaskedCardNumber string
}

// ClassifySecret decides whether the secret supplied with cardNumber is an
// authentication cryptogram or a physical PIN. Cards whose 8-digit prefix
// equals the configured virtual-card prefix carry cryptograms; all others
// carry PINs.
func ClassifySecret(cardNumber, virtualPrefix string) SecretRoute {
	route := SecretRoute{
		Field:            FieldPIN,
		BIN:              head(cardNumber, binDigits),
		MaskedCardNumber: MaskPAN(cardNumber),
	}
	if virtualPrefix != "" && head(cardNumber, prefixDigits) == virtualPrefix {
		route.Field = FieldCryptogram
	}
	return route
}

// MaskPAN replaces all but the last four digits of a card number with the
// mask character. Numbers of four digits or fewer are masked entirely.
func MaskPAN(pan string) string {
	if len(pan) <= 4 {
		return strings.Repeat(string(maskRune), len(pan))
	}
	return strings.Repeat(string(maskRune), len(pan)-4) + pan[len(pan)-4:]
}

// MaskExpiry fully redacts an expiry date.
func MaskExpiry(expiry string) string {
	return strings.Repeat(string(maskRune), len(expiry))
}

// AllowedPrefix reports whether startingNumbers begins with any of the
// permitted card-bin prefixes.
func AllowedPrefix(startingNumbers string, allowed []string) bool {
	for _, prefix := range allowed {
		if prefix != "" && strings.HasPrefix(startingNumbers, prefix) {
			return true
		}
	}
	return false
}

func head(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
