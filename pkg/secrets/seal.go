package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
)

// Seal encrypts data for scope. Output layout: nonce | ciphertext | tag.
func Seal(key []byte, scope string, data []byte) ([]byte, error) {
	gcm, err := newGCM(key, scope)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	return gcm.Seal(nonce, nonce, data, nil), nil
}

// Open decrypts a value produced by Seal for the same scope.
func Open(key []byte, scope string, sealed []byte) ([]byte, error) {
	gcm, err := newGCM(key, scope)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}

	ns := gcm.NonceSize()
	if len(sealed) < ns+gcm.Overhead() {
		return nil, ErrInvalidCiphertext
	}
	plain, err := gcm.Open(nil, sealed[:ns], sealed[ns:], nil)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}
	return plain, nil
}

func newGCM(key []byte, scope string) (cipher.AEAD, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	derived, err := deriveKey(key, scope)
	if err != nil {
		return nil, err
	}
	defer clearBytes(derived)

	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
