package deposit

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// MaxValidators bounds the validator count input.
const MaxValidators = 1000

// ParseCount reads a validator count. An empty string is zero.
func ParseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("validator count must be a whole number")
	}
	if n < 0 || n > MaxValidators {
		return 0, fmt.Errorf("validator count must be between 0 and %d", MaxValidators)
	}
	return n, nil
}

// Cost multiplies the count by the price per validator exactly and formats
// the result with one decimal. An empty count yields an empty string.
func Cost(count, pricePerValidator string) (string, error) {
	count = strings.TrimSpace(count)
	if count == "" {
		return "", nil
	}
	n, ok := new(big.Rat).SetString(count)
	if !ok {
		return "", fmt.Errorf("invalid validator count %q", count)
	}
	p, ok := new(big.Rat).SetString(strings.TrimSpace(pricePerValidator))
	if !ok {
		return "", fmt.Errorf("invalid price per validator %q", pricePerValidator)
	}
	return new(big.Rat).Mul(n, p).FloatString(1), nil
}

// GweiFromEther converts a whole-gwei ether amount such as "32" or "0.1".
func GweiFromEther(ether string) (uint64, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(ether))
	if !ok || r.Sign() <= 0 {
		return 0, fmt.Errorf("invalid ether amount %q", ether)
	}
	r.Mul(r, new(big.Rat).SetInt64(1_000_000_000))
	if !r.IsInt() || !r.Num().IsUint64() {
		return 0, fmt.Errorf("ether amount %q is not a whole number of gwei", ether)
	}
	return r.Num().Uint64(), nil
}
