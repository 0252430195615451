package deposit

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
	"golang.org/x/crypto/sha3"
)

// ChecksumAddress returns the mixed-case (EIP-55) form of an address.
func ChecksumAddress(addr string) (string, error) {
	a := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(addr), "0x"))
	if len(a) != 40 {
		return "", fmt.Errorf("address must be 20 bytes, got %q", addr)
	}
	if _, err := hex.DecodeString(a); err != nil {
		return "", fmt.Errorf("address is not hex: %q", addr)
	}
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(a))
	digest := h.Sum(nil)

	out := []byte(a)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			out[i] = c - 'a' + 'A'
		}
	}
	return "0x" + string(out), nil
}

// QR renders text as a QR code made of half-block characters.
func QR(text string) (string, error) {
	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	q.DisableBorder = true
	return q.ToSmallString(false), nil
}
