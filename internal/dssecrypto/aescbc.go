package dssecrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// blockSize is the AES block size in bytes, and also the pad-to size used by
// the scheme's padding convention.
const blockSize = 16

// Encrypt pads plaintext with the scheme's padding (the pad byte is the
// ASCII code of the pad length, repeated that many times; a plaintext whose
// length is already a multiple of blockSize still gets a full block of
// padding) and encrypts it with AES-CBC under a freshly drawn random IV.
// The returned ciphertext is IV || AES-CBC(padded plaintext). key must be
// 16, 24 or 32 bytes.
func Encrypt(key []byte, plaintext string) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("dssecrypto: %w", err)
	}

	padded := pad([]byte(plaintext), blockSize)

	iv := make([]byte, blockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("dssecrypto: %w", err)
	}

	out := make([]byte, blockSize+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[blockSize:], padded)
	return out, nil
}

// Decrypt reverses Encrypt. ciphertext must be IV || ciphertext-blocks, with
// a total length that is a positive multiple of blockSize beyond the IV.
func Decrypt(key []byte, ciphertext []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("dssecrypto: %w", err)
	}
	if len(ciphertext) < blockSize || (len(ciphertext)-blockSize)%blockSize != 0 || len(ciphertext) == blockSize {
		return "", errors.New("dssecrypto: ciphertext is not a valid IV-prefixed, block-aligned payload")
	}

	iv := ciphertext[:blockSize]
	body := ciphertext[blockSize:]
	plain := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, body)

	return unpad(plain)
}

// pad appends bs - len(s)%bs bytes, each equal to that pad length, per the
// scheme's convention (not standard PKCS#7: here a full-length plaintext
// still receives a full extra block).
func pad(s []byte, bs int) []byte {
	padLen := bs - len(s)%bs
	out := make([]byte, len(s)+padLen)
	copy(out, s)
	for i := len(s); i < len(out); i++ {
		out[i] = byte(padLen)
	}
	return out
}

// unpad strips the padding written by pad, reading the last byte as the pad
// length.
func unpad(s []byte) (string, error) {
	if len(s) == 0 {
		return "", errors.New("dssecrypto: empty plaintext has no padding")
	}
	padLen := int(s[len(s)-1])
	if padLen <= 0 || padLen > len(s) {
		return "", errors.New("dssecrypto: invalid padding")
	}
	return string(s[:len(s)-padLen]), nil
}
