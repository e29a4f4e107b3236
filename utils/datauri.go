package utils

import (
	"errors"
	"strings"
)

// ParseDataURI splits a "data:<mime>;base64,<payload>" string into its MIME
// type and raw base64 payload.
func ParseDataURI(uri string) (mimeType, data string, err error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", "", errors.New("invalid data URI")
	}
	parts := strings.SplitN(uri, ",", 2)
	if len(parts) != 2 {
		return "", "", errors.New("invalid data URI")
	}

	meta := strings.TrimPrefix(parts[0], "data:")
	mimeType = strings.SplitN(meta, ";", 2)[0]
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	return mimeType, parts[1], nil
}
