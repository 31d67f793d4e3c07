package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCard() Card {
	return Card{
		CardNumber: "1234567890123456",
		CardName:   "John Doe",
		ExpDate:    "12/25",
		CVV:        "123",
	}
}

// ============================================
// Card Validation Tests
// ============================================

func TestCard_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Card)
		wantErr error
	}{
		{"valid card", func(c *Card) {}, nil},
		{"15 digits rejected", func(c *Card) { c.CardNumber = "123456789012345" }, ErrInvalidCardNumber},
		{"17 digits rejected", func(c *Card) { c.CardNumber = "12345678901234567" }, ErrInvalidCardNumber},
		{"letters in number rejected", func(c *Card) { c.CardNumber = "1234abcd90123456" }, ErrInvalidCardNumber},
		{"empty number rejected", func(c *Card) { c.CardNumber = "" }, ErrInvalidCardNumber},
		{"missing cardholder name", func(c *Card) { c.CardName = "" }, ErrMissingCardName},
		{"month 13 rejected", func(c *Card) { c.ExpDate = "13/25" }, ErrInvalidExpDate},
		{"month 00 rejected", func(c *Card) { c.ExpDate = "00/25" }, ErrInvalidExpDate},
		{"month 12 accepted", func(c *Card) { c.ExpDate = "12/25" }, nil},
		{"month 01 accepted", func(c *Card) { c.ExpDate = "01/30" }, nil},
		{"missing slash rejected", func(c *Card) { c.ExpDate = "1225" }, ErrInvalidExpDate},
		{"two-digit cvv rejected", func(c *Card) { c.CVV = "12" }, ErrInvalidCVV},
		{"four-digit cvv rejected", func(c *Card) { c.CVV = "1234" }, ErrInvalidCVV},
		{"three-digit cvv accepted", func(c *Card) { c.CVV = "123" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCard()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOTP(t *testing.T) {
	assert.ErrorIs(t, ValidateOTP(""), ErrInvalidOTP)
	assert.ErrorIs(t, ValidateOTP("123"), ErrInvalidOTP)
	assert.NoError(t, ValidateOTP("1234"), "four digits are enough for submission")
	assert.NoError(t, ValidateOTP("123456"))
}

// ============================================
// Input Mask Tests
// ============================================

func TestMaskCardNumber(t *testing.T) {
	assert.Equal(t, "1234567890123456", MaskCardNumber("1234 5678 9012 3456 789"))
	assert.Equal(t, "42", MaskCardNumber("4x2y"))
}

func TestMaskCVV(t *testing.T) {
	assert.Equal(t, "123", MaskCVV("12345"))
	assert.Equal(t, "9", MaskCVV("a9"))
}

func TestMaskOTP(t *testing.T) {
	// The mask caps at six digits even though submission accepts four; the
	// mismatch is inherited behavior.
	assert.Equal(t, "123456", MaskOTP("1234567890"))
	assert.Equal(t, "12", MaskOTP("1a2b"))
}

func TestMaskExpDate(t *testing.T) {
	// Typing the second month digit appends the slash.
	assert.Equal(t, "12/", MaskExpDate("1", "12"))
	// Pasting a full value does not double-append.
	assert.Equal(t, "12/25", MaskExpDate("", "12/25"))
	// Deleting back to one character leaves it alone.
	assert.Equal(t, "1", MaskExpDate("12", "1"))
	// Never longer than five characters.
	assert.Equal(t, "12/25", MaskExpDate("12/25", "12/256"))
}
