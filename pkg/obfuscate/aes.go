// Package obfuscate implements the OpenSSL-compatible passphrase AES format
// ("Salted__" header, EVP_BytesToKey with MD5, AES-256-CBC, PKCS#7) that the
// tracking script uses to obfuscate element identifiers before they are written
// to the ledger.
//
// The passphrase ships inside the browser script, so this is display
// obfuscation only. It gives no confidentiality.
package obfuscate

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// Passphrase is the key shared with the tracking script.
const Passphrase = "BuyBuy"

const (
	keyLen  = 32
	ivLen   = aes.BlockSize
	saltLen = 8
)

var saltedPrefix = []byte("Salted__")

var (
	ErrNotSalted      = errors.New("obfuscate: missing Salted__ header")
	ErrCiphertextSize = errors.New("obfuscate: ciphertext is not a multiple of the block size")
	ErrBadPadding     = errors.New("obfuscate: invalid padding")
)

// DecryptBase64 decrypts the base64 text form of a salted blob.
func DecryptBase64(encoded, passphrase string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("obfuscate: decode base64: %w", err)
	}
	return Decrypt(raw, passphrase)
}

// Decrypt decrypts a raw "Salted__" || salt || ciphertext blob.
func Decrypt(blob []byte, passphrase string) ([]byte, error) {
	if len(blob) < len(saltedPrefix)+saltLen || !bytes.HasPrefix(blob, saltedPrefix) {
		return nil, ErrNotSalted
	}
	salt := blob[len(saltedPrefix) : len(saltedPrefix)+saltLen]
	ciphertext := blob[len(saltedPrefix)+saltLen:]
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrCiphertextSize
	}

	key, iv := deriveKey([]byte(passphrase), salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("obfuscate: new cipher: %w", err)
	}

	plain := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ciphertext)
	return unpad(plain)
}

// Encrypt produces a salted blob with a random salt.
func Encrypt(plain []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("obfuscate: read salt: %w", err)
	}
	return EncryptWithSalt(plain, passphrase, salt)
}

// EncryptWithSalt is Encrypt with a caller supplied 8-byte salt.
func EncryptWithSalt(plain []byte, passphrase string, salt []byte) ([]byte, error) {
	if len(salt) != saltLen {
		return nil, fmt.Errorf("obfuscate: salt must be %d bytes, got %d", saltLen, len(salt))
	}

	key, iv := deriveKey([]byte(passphrase), salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("obfuscate: new cipher: %w", err)
	}

	padded := pad(plain)
	out := make([]byte, len(saltedPrefix)+saltLen+len(padded))
	copy(out, saltedPrefix)
	copy(out[len(saltedPrefix):], salt)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[len(saltedPrefix)+saltLen:], padded)
	return out, nil
}

// deriveKey is OpenSSL's EVP_BytesToKey with MD5 and a single iteration.
func deriveKey(passphrase, salt []byte) (key, iv []byte) {
	var derived, prev []byte
	for len(derived) < keyLen+ivLen {
		h := md5.New()
		h.Write(prev)
		h.Write(passphrase)
		h.Write(salt)
		prev = h.Sum(nil)
		derived = append(derived, prev...)
	}
	return derived[:keyLen], derived[keyLen : keyLen+ivLen]
}

func pad(b []byte) []byte {
	n := aes.BlockSize - len(b)%aes.BlockSize
	return append(append([]byte{}, b...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, ErrBadPadding
	}
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, ErrBadPadding
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, ErrBadPadding
		}
	}
	return b[:len(b)-n], nil
}
