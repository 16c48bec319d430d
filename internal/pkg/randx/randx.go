/*
Package randx provides cryptographically secure random identifiers.

It generates fixed-length Base62 user and session IDs and UUID line-item IDs.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the number of characters in the Base62 set (62).
	Base62Len = int64(len(Base62Chars))

	// UserIDPrefix is the prefix of generated shopper account IDs.
	UserIDPrefix = "user_"

	// SessionIDPrefix is the prefix of generated shopping session IDs.
	SessionIDPrefix = "sess_"

	// IDRawLength is the fixed length of the random Base62 part of prefixed IDs.
	IDRawLength = 12
)

// base62String returns a random Base62 string of the given length using crypto/rand.
func base62String(length int) (string, error) {
	result := make([]byte, length)

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %v", err)
		}
		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}

// UserID generates a new shopper account identifier ("user_" + 12 Base62 characters).
func UserID() (string, error) {
	raw, err := base62String(IDRawLength)
	if err != nil {
		return "", err
	}
	return UserIDPrefix + raw, nil
}

// SessionID generates a new shopping session identifier ("sess_" + 12 Base62 characters).
func SessionID() (string, error) {
	raw, err := base62String(IDRawLength)
	if err != nil {
		return "", err
	}
	return SessionIDPrefix + raw, nil
}

// LineItemID generates a UUID v4 string identifying a cart line item.
func LineItemID() string {
	return uuid.New().String()
}

// isValidPrefixedID checks a prefixed Base62 identifier against the expected prefix and length.
func isValidPrefixedID(id, prefix string) bool {
	if !strings.HasPrefix(id, prefix) {
		return false
	}

	raw := id[len(prefix):]

	if len(raw) != IDRawLength {
		return false
	}

	for _, char := range raw {
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}

	return true
}

// IsValidSessionID reports whether the given string is a well-formed session ID.
func IsValidSessionID(id string) bool {
	return isValidPrefixedID(id, SessionIDPrefix)
}

// IsValidUserID reports whether the given string is a well-formed user ID.
func IsValidUserID(id string) bool {
	return isValidPrefixedID(id, UserIDPrefix)
}
