package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var pincodeSpace = big.NewInt(1000000)

// RandomPincode returns a uniformly random six-digit code, zero padded.
func RandomPincode() (string, error) {
	n, err := rand.Int(rand.Reader, pincodeSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate pin code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
