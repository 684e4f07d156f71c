package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
)

// Fingerprint returns a deterministic SHA-256 fingerprint of a token,
// base64url-encoded without padding (43 chars). We store fingerprints in the
// database instead of raw token values so a database leak never yields usable
// credentials, while lookups stay a simple equality match.
func Fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
