package utils

import "strings"

// NormalizePlate uppercases and strips everything that is not a letter
// or digit. Used both before storage and as the lookup key, so the same
// plate always compares equal regardless of how it was typed.
func NormalizePlate(plate string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(plate)) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPlate reports whether a normalized plate has the expected
// 7-character alphanumeric shape.
func ValidPlate(plate string) bool {
	if len(plate) != 7 {
		return false
	}
	for _, r := range plate {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// CNPJDigits strips formatting characters from a tax id. Search compares
// digits only; storage keeps the formatted value.
func CNPJDigits(cnpj string) string {
	var b strings.Builder
	for _, r := range cnpj {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
