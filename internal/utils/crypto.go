// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GenerateRandomString(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	return string(b), nil
}

// GenerateReceiptNumber builds a human-readable receipt id from the owning
// agrovet and the current time. Uniqueness is enforced by the database index
// on the sales table; callers retry with a fresh suffix on collision.
func GenerateReceiptNumber(agrovetID uuid.UUID, at time.Time) string {
	prefix := strings.ToUpper(strings.ReplaceAll(agrovetID.String(), "-", "")[:8])
	return fmt.Sprintf("RCP%s%s", prefix, at.UTC().Format("20060102150405"))
}
