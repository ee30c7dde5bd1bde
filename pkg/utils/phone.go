package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// OnlyDigits strips every non-digit character from a phone number
func OnlyDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// InternationalPhone converts a local Brazilian number like
// "(11) 91234-5678" to the international form WhatsApp expects
// ("5511912345678"). Numbers that already carry a country code
// (more than 11 digits) pass through untouched.
func InternationalPhone(phone string) string {
	digits := OnlyDigits(phone)
	if len(digits) > 0 && len(digits) <= 11 {
		return "55" + digits
	}
	return digits
}

// WhatsAppURL builds a wa.me deep link with a prefilled message
func WhatsAppURL(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s",
		InternationalPhone(phone), url.QueryEscape(message))
}
