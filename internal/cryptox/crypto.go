// Package cryptox turns a human password into a symmetric key and encrypts
// serialized records with authenticated encryption (AES-256-GCM).
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/dmitrijs2005/xpost/internal/common"
)

const (
	// KeySize is the derived key length in bytes (AES-256).
	KeySize = 32
	// SaltSize is the length of the random salt stored in each vault file.
	SaltSize = 16
	// NonceSize is the AES-GCM nonce length.
	NonceSize = 12
	// Iterations is the PBKDF2 work factor. Fixed: changing it invalidates
	// every existing vault file.
	Iterations = 100_000
)

// DeriveKey derives a 32-byte key from password and salt using
// PBKDF2-HMAC-SHA256 with a fixed iteration count.
//
// The function is deterministic: the same (password, salt) pair always
// yields the same key. It performs no I/O; the salt is generated per vault
// file by the caller and stored next to the ciphertext, so two users with
// the same password still end up with different keys.
//
// The caller should wipe the returned key when done (common.WipeByteArray).
func DeriveKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, Iterations, KeySize, sha256.New)
}

// GenerateSalt returns a fresh random salt for a new vault file.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// EncryptRecord serializes the given record to JSON and encrypts it using
// AES-GCM with a fresh random nonce. The ciphertext (with the GCM tag
// appended) and the nonce are returned separately; the caller owns framing
// them into the vault file.
//
// The key must be KeySize bytes (use DeriveKey).
func EncryptRecord(record any, key []byte) (ciphertext, nonce []byte, err error) {
	plaintext, err := json.Marshal(record)
	if err != nil {
		return nil, nil, fmt.Errorf("serialize record: %w", err)
	}
	defer common.WipeByteArray(plaintext)

	nonce = make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("generate nonce: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)

	return ciphertext, nonce, nil
}

// DecryptRecord decrypts ciphertext produced by EncryptRecord and unmarshals
// the resulting JSON into v.
//
// If the GCM tag check fails (wrong key, flipped bytes, truncated data),
// the error wraps common.ErrorInvalidPassword. GCM cannot tell a wrong
// password from a tampered file, and neither can callers.
func DecryptRecord(ciphertext, nonce, key []byte, v any) error {
	block, err := aes.NewCipher(key)
	if err != nil {
		return err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInvalidPassword, err)
	}
	defer common.WipeByteArray(plaintext)

	return json.Unmarshal(plaintext, v)
}
