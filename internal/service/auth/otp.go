package auth

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// OTPDigits is the length of a login passcode.
const OTPDigits = 6

var otpMax = big.NewInt(1_000_000)

// OTPGenerator produces login passcodes.
type OTPGenerator func() (string, error)

// NewOTPGenerator returns a generator that reads randomness from r,
// crypto/rand when r is nil.
func NewOTPGenerator(r io.Reader) OTPGenerator {
	if r == nil {
		r = rand.Reader
	}
	return func() (string, error) {
		n, err := rand.Int(r, otpMax)
		if err != nil {
			return "", fmt.Errorf("failed to generate passcode: %w", err)
		}
		return fmt.Sprintf("%0*d", OTPDigits, n.Int64()), nil
	}
}
