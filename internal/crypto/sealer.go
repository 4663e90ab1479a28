// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// sealSalt domain-separates the session sealing key from any other key the
// same secret might be used for.
const sealSalt = "applicant-desk/session-store/v1"

// sealedPrefix marks values written by [aesSealer].
const sealedPrefix = "v1:"

var (
	// ErrOpenFailed is returned when a sealed value cannot be decrypted.
	ErrOpenFailed = errors.New("sealed value cannot be opened")
)

// aesSealer is the AES-256-GCM implementation of [Sealer]. The key is derived
// once from the configured secret with Argon2id.
type aesSealer struct {
	aead cipher.AEAD
}

// NewSealer returns a [Sealer] keyed by secret. An empty secret yields a
// pass-through sealer that stores values as-is.
//
// Key derivation uses Argon2id with:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewSealer(secret string) (Sealer, error) {
	if secret == "" {
		return plainSealer{}, nil
	}

	key := argon2.IDKey([]byte(secret), []byte(sealSalt), 1, 64*1024, 4, 32)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("error creating cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("error creating GCM: %w", err)
	}

	return &aesSealer{aead: gcm}, nil
}

// Seal implements [Sealer]. The blob is "v1:" followed by
// base64(nonce ‖ ciphertext).
func (s *aesSealer) Seal(plaintext string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return sealedPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Open implements [Sealer].
func (s *aesSealer) Open(sealed string) (string, error) {
	encoded, ok := strings.CutPrefix(sealed, sealedPrefix)
	if !ok {
		return "", fmt.Errorf("%w: missing version prefix", ErrOpenFailed)
	}

	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}

	nonceSize := s.aead.NonceSize()
	if len(blob) < nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", ErrOpenFailed)
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}

	return string(plaintext), nil
}

type plainSealer struct{}

func (plainSealer) Seal(plaintext string) (string, error) { return plaintext, nil }

func (plainSealer) Open(sealed string) (string, error) {
	if strings.HasPrefix(sealed, sealedPrefix) {
		return "", fmt.Errorf("%w: value is sealed but no secret is configured", ErrOpenFailed)
	}
	return sealed, nil
}
