package delivery

import (
	"math/rand/v2"
	"strings"
)

// trackingAlphabet excludes visually ambiguous characters (0/O, 1/I/L).
const trackingAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

const (
	trackingPrefix     = "TRK-"
	trackingCodeLength = 8
	confirmationDigits = 4
)

// NewTrackingCode generates a public tracking code of the form TRK-XXXXXXXX.
// Uniqueness is enforced by the persistence layer, not here.
func NewTrackingCode() string {
	var b strings.Builder
	b.Grow(len(trackingPrefix) + trackingCodeLength)
	b.WriteString(trackingPrefix)
	for range trackingCodeLength {
		b.WriteByte(trackingAlphabet[rand.IntN(len(trackingAlphabet))])
	}
	return b.String()
}

// NewConfirmationCode generates the 4-digit code the recipient reads to the
// courier at handover. Leading zeros are allowed.
func NewConfirmationCode() string {
	const digits = "0123456789"
	var b strings.Builder
	b.Grow(confirmationDigits)
	for range confirmationDigits {
		b.WriteByte(digits[rand.IntN(len(digits))])
	}
	return b.String()
}
