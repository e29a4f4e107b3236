package utils

import (
	"math/rand"
)

// GenerateOTP returns a numeric one-time code of the given length.
func GenerateOTP(length int) string {
	const digits = "0123456789"

	code := make([]byte, length)
	for i := range code {
		code[i] = digits[rand.Intn(len(digits))]
	}
	return string(code)
}
