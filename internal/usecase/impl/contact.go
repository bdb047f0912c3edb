package impl

import (
	"strings"

	"lifeline/internal/errors"
)

// minDialableDigits is the smallest digit count accepted as a dialable
// number after normalization; anything shorter is treated as unusable.
const minDialableDigits = 7

// normalizeSMSContact converts a free-form contact into international SMS
// format: every character except digits and a leading '+' is stripped, and
// contacts without a '+' get the default country calling code prefixed.
// Email addresses and other non-numeric contacts come out unusable and are
// rejected before any dispatch is attempted.
func normalizeSMSContact(raw, defaultCountryCode string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	hasPlus := strings.HasPrefix(trimmed, "+")

	var digits strings.Builder
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	number := digits.String()
	if len(number) < minDialableDigits {
		return "", errors.Errorf("contact %q is not a dialable number", raw)
	}

	if hasPlus {
		return "+" + number, nil
	}

	return "+" + defaultCountryCode + number, nil
}
