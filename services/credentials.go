package services

import (
	"crypto/rand"
	"math/big"
)

// Password composition policy for provisioned accounts. Length is
// fixed; at least one character from each class is guaranteed and the
// final order is shuffled so the guarantees are not positional.
const passwordLength = 12

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+"
)

// GeneratePassword produces a random password meeting the composition
// policy.
func GeneratePassword() string {
	allChars := upperChars + lowerChars + digitChars + symbolChars

	chars := make([]byte, 0, passwordLength)
	chars = append(chars,
		upperChars[randomIndex(len(upperChars))],
		lowerChars[randomIndex(len(lowerChars))],
		digitChars[randomIndex(len(digitChars))],
		symbolChars[randomIndex(len(symbolChars))],
	)
	for len(chars) < passwordLength {
		chars = append(chars, allChars[randomIndex(len(allChars))])
	}

	// Fisher-Yates shuffle
	for i := len(chars) - 1; i > 0; i-- {
		j := randomIndex(i + 1)
		chars[i], chars[j] = chars[j], chars[i]
	}

	return string(chars)
}

// randomIndex returns a uniform random int in [0, n)
func randomIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken
		panic(err)
	}
	return int(v.Int64())
}
