package selections

import (
	"crypto/rand"
	"crypto/sha256"

	"github.com/mr-tron/base58"
)

const (
	// PassPrefix is the prefix for all generated meal-pass codes
	PassPrefix = "mealpass_"
)

// PassMinter issues the code shown at the canteen counter after an on-site
// confirmation. Format: mealpass_ + Base58(SHA256(random_bytes)).
type PassMinter struct{}

func NewPassMinter() PassMinter { return PassMinter{} }

func (PassMinter) Issue() (string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}

	hash := sha256.Sum256(randomBytes)
	return PassPrefix + base58.Encode(hash[:]), nil
}
