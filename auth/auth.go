// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidToken = errors.New("invalid session token")

// GenerateID creates a random hex ID of the specified byte length.
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewSessionToken issues a bearer token for a user: the user id, a random
// nonce, and an HMAC over both. Verifiable without storing server-side
// session state.
func NewSessionToken(userID, salt string) (string, error) {
	nonce, err := GenerateID(8)
	if err != nil {
		return "", err
	}
	return userID + "." + nonce + "." + sign(userID+"."+nonce, salt), nil
}

// VerifySessionToken checks a token's signature and returns the user id it
// was issued for.
func VerifySessionToken(token, salt string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] == "" {
		return "", ErrInvalidToken
	}
	expected := sign(parts[0]+"."+parts[1], salt)
	if !hmac.Equal([]byte(parts[2]), []byte(expected)) {
		return "", ErrInvalidToken
	}
	return parts[0], nil
}

func sign(payload, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(payload))
	return strings.TrimRight(base64.URLEncoding.EncodeToString(h.Sum(nil)), "=")
}

// HashPassword returns a bcrypt hash suitable for storage.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
