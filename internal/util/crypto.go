package util

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
)

// deriveKey always yields a 32-byte key regardless of the configured length.
func deriveKey(keyStr string) []byte {
	sum := sha256.Sum256([]byte(keyStr))
	return sum[:]
}

// EncryptAES seals plaintext with AES-256-GCM and returns nonce+ciphertext.
func EncryptAES(keyStr string, plaintext []byte) ([]byte, error) {
	aesgcm, err := newGCM(keyStr)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}

	ciphertext := aesgcm.Seal(nil, nonce, plaintext, nil)
	return append(nonce, ciphertext...), nil
}

// DecryptAES opens data produced by EncryptAES.
func DecryptAES(keyStr string, data []byte) ([]byte, error) {
	aesgcm, err := newGCM(keyStr)
	if err != nil {
		return nil, err
	}

	ns := aesgcm.NonceSize()
	if len(data) < ns {
		return nil, fmt.Errorf("cipher too short")
	}
	nonce, ciphertext := data[:ns], data[ns:]

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return plaintext, nil
}

func newGCM(keyStr string) (cipher.AEAD, error) {
	block, err := aes.NewCipher(deriveKey(keyStr))
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return aesgcm, nil
}

// EncryptString encrypts plain and base64-encodes the result. An empty key
// leaves the value untouched.
func EncryptString(keyStr, plain string) (string, error) {
	if plain == "" || keyStr == "" {
		return plain, nil
	}
	b, err := EncryptAES(keyStr, []byte(plain))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// DecryptString reverses EncryptString.
func DecryptString(keyStr, cipherStr string) (string, error) {
	if cipherStr == "" || keyStr == "" {
		return cipherStr, nil
	}
	b, err := base64.StdEncoding.DecodeString(cipherStr)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	plain, err := DecryptAES(keyStr, b)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
