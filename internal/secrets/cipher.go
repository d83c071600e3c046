// Package secrets encrypts sensitive fields inside tool auth configurations
// before they reach the database, and decrypts them on single-item reads.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// DefaultSecret is the fallback key material when ENCRYPTION_SECRET is
// unset. Insecure: anyone with this string and a database dump can recover
// every credential. Tolerated for development, flagged at startup.
const DefaultSecret = "default-secret-change-in-production"

// keySalt is fixed, so the same secret derives the same key in every
// deployment. Changing it (or the secret) makes all stored envelopes
// unreadable; there is no migration path, so it stays as-is.
const keySalt = "salt"

// SensitiveFields is the allow-list of auth config keys that are encrypted
// at rest. All other keys pass through unmodified.
var SensitiveFields = []string{"apiKey", "token", "clientSecret", "password", "privateKey"}

// DecryptionError reports an envelope that could not be decrypted: malformed
// encoding, truncated ciphertext, wrong key, or a value that was never
// encrypted in the first place.
type DecryptionError struct {
	Reason string
}

func (e *DecryptionError) Error() string {
	return "decryption failed: " + e.Reason
}

// FieldResult is the outcome of decrypting one auth config field. When the
// stored value does not decrypt, Passthrough is true and Value holds the
// stored value unchanged; the read never fails because of one bad field.
type FieldResult struct {
	Value       string
	Passthrough bool
}

type Cipher struct {
	key []byte
}

// NewCipher derives the process-wide AES-256 key from the operator secret
// using scrypt with the same parameters as the deployments whose data we
// must keep readable (N=16384, r=8, p=1, fixed salt).
func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, fmt.Errorf("encryption secret must not be empty")
	}
	key, err := scrypt.Key([]byte(secret), []byte(keySalt), 16384, 8, 1, 32)
	if err != nil {
		return nil, fmt.Errorf("derive encryption key: %w", err)
	}
	return &Cipher{key: key}, nil
}

// Encrypt produces a hex(iv):hex(ciphertext) envelope using AES-256-CBC with
// a fresh random IV. Two calls on the same plaintext yield different
// envelopes, so envelopes cannot be compared for equality.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. Any malformed envelope or key mismatch yields a
// *DecryptionError.
func (c *Cipher) Decrypt(envelope string) (string, error) {
	sep := strings.Index(envelope, ":")
	if sep < 0 {
		return "", &DecryptionError{Reason: "envelope has no iv separator"}
	}

	iv, err := hex.DecodeString(envelope[:sep])
	if err != nil {
		return "", &DecryptionError{Reason: "iv is not valid hex"}
	}
	if len(iv) != aes.BlockSize {
		return "", &DecryptionError{Reason: "iv has wrong length"}
	}

	ciphertext, err := hex.DecodeString(envelope[sep+1:])
	if err != nil {
		return "", &DecryptionError{Reason: "ciphertext is not valid hex"}
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", &DecryptionError{Reason: "ciphertext is not a whole number of blocks"}
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", &DecryptionError{Reason: "invalid padding"}
	}

	return string(unpadded), nil
}

// EncryptAuthConfig returns a copy of cfg with every allow-listed field that
// holds a non-empty string replaced by its envelope. Other keys are copied
// untouched.
func (c *Cipher) EncryptAuthConfig(cfg map[string]interface{}) (map[string]interface{}, error) {
	if cfg == nil {
		return nil, nil
	}

	encrypted := make(map[string]interface{}, len(cfg))
	for k, v := range cfg {
		encrypted[k] = v
	}

	for _, field := range SensitiveFields {
		value, ok := encrypted[field].(string)
		if !ok || value == "" {
			continue
		}
		envelope, err := c.Encrypt(value)
		if err != nil {
			return nil, fmt.Errorf("encrypt %s: %w", field, err)
		}
		encrypted[field] = envelope
	}

	return encrypted, nil
}

// DecryptField decrypts a single stored field value. A value that does not
// decrypt is tagged as passthrough and returned unchanged: it may predate
// encryption, or its ciphertext may be unreadable under the current key.
func (c *Cipher) DecryptField(stored string) FieldResult {
	plaintext, err := c.Decrypt(stored)
	if err != nil {
		return FieldResult{Value: stored, Passthrough: true}
	}
	return FieldResult{Value: plaintext}
}

// DecryptAuthConfig returns a copy of cfg with allow-listed string fields
// decrypted, plus the names of fields that were passed through raw so the
// caller can log them.
func (c *Cipher) DecryptAuthConfig(cfg map[string]interface{}) (map[string]interface{}, []string) {
	if cfg == nil {
		return nil, nil
	}

	decrypted := make(map[string]interface{}, len(cfg))
	for k, v := range cfg {
		decrypted[k] = v
	}

	var passthrough []string
	for _, field := range SensitiveFields {
		value, ok := decrypted[field].(string)
		if !ok || value == "" {
			continue
		}
		result := c.DecryptField(value)
		decrypted[field] = result.Value
		if result.Passthrough {
			passthrough = append(passthrough, field)
		}
	}

	return decrypted, passthrough
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padding)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padding)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length")
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, fmt.Errorf("invalid padding byte")
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}
	return data[:len(data)-padding], nil
}
