package payment

import (
	"regexp"
	"strings"

	"github.com/prestige-strategies/academy/pkg/academysdk"
)

// PhoneMessage is the field message for a number that is not a local
// mobile-money number.
const PhoneMessage = "Please enter a valid phone number (e.g. 0712345678 or 254712345678)"

// phonePattern: country code 254 or a leading 0, then 7 or 1, then 8 digits.
var phonePattern = regexp.MustCompile(`^(254|0)[71]\d{8}$`)

// NormalizePhone strips whitespace, validates the number and returns it in
// international form (254...).
func NormalizePhone(raw string) (string, error) {
	digits := strings.Join(strings.Fields(raw), "")
	if !phonePattern.MatchString(digits) {
		return "", &academysdk.ValidationError{Field: "phone_number", Message: PhoneMessage}
	}
	if rest, ok := strings.CutPrefix(digits, "0"); ok {
		return "254" + rest, nil
	}
	return digits, nil
}

// ValidatePhone reports whether raw is an acceptable mobile-money number.
func ValidatePhone(raw string) error {
	_, err := NormalizePhone(raw)
	return err
}
