package payment

import "strings"

// Input masks for the card form. They mirror the storefront's text fields:
// digits-only with a hard length cap, and the expiration field that inserts
// the slash after the month is typed.
const (
	cardNumberMax = 16
	cvvMax        = 3
	otpMax        = 6
)

func digitsOnly(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == max {
			break
		}
	}
	return b.String()
}

// MaskCardNumber keeps at most 16 digits.
func MaskCardNumber(s string) string { return digitsOnly(s, cardNumberMax) }

// MaskCVV keeps at most 3 digits.
func MaskCVV(s string) string { return digitsOnly(s, cvvMax) }

// MaskOTP keeps at most 6 digits. Submission only requires 4; the mask is
// knowingly stricter than the validator.
func MaskOTP(s string) string { return digitsOnly(s, otpMax) }

// MaskExpDate applies the MM/YY mask to a new field value given the previous
// one: typing the second month digit appends the slash, and the value never
// exceeds five characters.
func MaskExpDate(prev, next string) string {
	if len(next) == 2 && !strings.Contains(next, "/") && len(prev) == 1 {
		next += "/"
	}
	if len(next) > 5 {
		next = next[:5]
	}
	return next
}
