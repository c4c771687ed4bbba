package utils

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strings"
)

const DefaultOTPLength = 6

func NewRefreshToken(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 32 // 256 бит по умолчанию
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NewOTP: n независимых десятичных цифр из crypto/rand
func NewOTP(n int) (string, error) {
	if n <= 0 {
		n = DefaultOTPLength
	}
	var sb strings.Builder
	sb.Grow(n)
	ten := big.NewInt(10)
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + d.Int64()))
	}
	return sb.String(), nil
}
