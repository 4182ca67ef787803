package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils/logger"

	"golang.org/x/crypto/ssh"
)

var log = logger.New("crypto")

var PrivateKey *rsa.PrivateKey
var PublicKey *rsa.PublicKey

// InitializeKeys loads the RSA keypair used to encrypt secret-valued
// site settings (payment gateway keys and the like) at rest.
func InitializeKeys(privateKeyEnv string) error {

	log.Info("Initializing keys")

	if privateKeyEnv == "" {
		return errors.New("private key not found")
	}

	decoded, err := base64.StdEncoding.DecodeString(privateKeyEnv)
	if err != nil {
		return fmt.Errorf("failed to decode private key: %w", err)
	}

	key, err := ssh.ParseRawPrivateKey(decoded)

	if err != nil {
		return fmt.Errorf("failed to parse private key: %w", err)
	}

	PrivateKey = key.(*rsa.PrivateKey)
	PublicKey = &PrivateKey.PublicKey
	return nil
}

// Encrypt encrypts a plaintext setting value with the public key.
func Encrypt(plaintext string) (string, error) {
	if PublicKey == nil {
		return "", errors.New("public key not initialized")
	}

	ciphertext, err := rsa.EncryptOAEP(
		sha256.New(),
		rand.Reader,
		PublicKey,
		[]byte(plaintext),
		nil,
	)

	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decrypts a stored setting value with the private key.
func Decrypt(ciphertext string) (string, error) {
	if PrivateKey == nil {
		return "", errors.New("private key not initialized")
	}

	decodedCiphertext, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}

	plaintext, err := rsa.DecryptOAEP(
		sha256.New(),
		rand.Reader,
		PrivateKey,
		decodedCiphertext,
		nil,
	)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}
