// Package auth turns Basic-auth credentials into authenticated principals,
// per spec §4.4.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters fixed at credential creation time, per spec §3.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// HashSecret produces an encoded Argon2id hash suitable for persistence.
func HashSecret(secret string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	digest := argon2.IDKey([]byte(secret), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return encode(salt, digest), nil
}

// VerifySecret checks secret against an encoded hash using a constant-time
// comparison of the derived digest.
func VerifySecret(encoded, secret string) bool {
	salt, digest, ok := decode(encoded)
	if !ok {
		return false
	}
	candidate := argon2.IDKey([]byte(secret), salt, argonTime, argonMemory, argonThreads, uint32(len(digest)))
	return subtle.ConstantTimeCompare(candidate, digest) == 1
}

// decoyHash is verified on every lookup miss so that the unknown-key and
// wrong-secret paths take roughly the same time, per spec §4.4.
var decoyHash = mustHash("decoy-secret-never-issued")

func mustHash(secret string) string {
	h, err := HashSecret(secret)
	if err != nil {
		panic(err)
	}
	return h
}

// VerifyDecoy burns the same Argon2id work as a real verification without
// revealing whether a key-id exists.
func VerifyDecoy(secret string) {
	VerifySecret(decoyHash, secret)
}

func encode(salt, digest []byte) string {
	return fmt.Sprintf("argon2id$%d$%d$%d$%s$%s",
		argonTime, argonMemory, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest))
}

func decode(encoded string) (salt, digest []byte, ok bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "argon2id" {
		return nil, nil, false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, false
	}
	digest, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, false
	}
	return salt, digest, true
}
