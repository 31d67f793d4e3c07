package payment

import (
	"errors"
	"regexp"
)

// Client-side format checks for the simulated card flow. These run before
// anything is sent anywhere; a failure stays inline on the card form.
var (
	ErrInvalidCardNumber = errors.New("please enter a valid 16-digit card number")
	ErrMissingCardName   = errors.New("please enter the cardholder name")
	ErrInvalidExpDate    = errors.New("please enter a valid expiration date (MM/YY)")
	ErrInvalidCVV        = errors.New("please enter a valid 3-digit CVV")
	ErrInvalidOTP        = errors.New("please enter a valid OTP")
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	expDatePattern    = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3}$`)
)

// Card is the card form content of one payment attempt.
type Card struct {
	CardNumber string
	CardName   string
	ExpDate    string
	CVV        string
}

// Validate checks the exact wire formats: 16 digits, MM/YY with month 01-12,
// 3-digit CVV, non-empty cardholder name. The first failing field's error is
// returned, matching the one-message-at-a-time card form.
func (c Card) Validate() error {
	if !cardNumberPattern.MatchString(c.CardNumber) {
		return ErrInvalidCardNumber
	}
	if c.CardName == "" {
		return ErrMissingCardName
	}
	if !expDatePattern.MatchString(c.ExpDate) {
		return ErrInvalidExpDate
	}
	if !cvvPattern.MatchString(c.CVV) {
		return ErrInvalidCVV
	}
	return nil
}

// minOTPLength is what submission requires. The OTP input mask elsewhere
// caps entry at 6 digits; the looser >=4 check here reproduces the original
// behavior and is intentionally left as-is.
const minOTPLength = 4

// ValidateOTP checks the one-time password before submission is allowed.
func ValidateOTP(otp string) error {
	if len(otp) < minOTPLength {
		return ErrInvalidOTP
	}
	return nil
}
