// Package signature verifies the X-Hub-Signature header the Messenger
// Platform attaches to webhook deliveries.
package signature

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // the platform signs webhook bodies with HMAC-SHA1
	"encoding/hex"
	"errors"
	"strings"
)

// HeaderName is the request header carrying the signature.
const HeaderName = "X-Hub-Signature"

// Method is the only signing method the platform uses on this header.
const Method = "sha1"

var (
	// ErrSignatureMissing is returned when the request carries no signature.
	ErrSignatureMissing = errors.New("signature header missing")
	// ErrSignatureMismatch is returned when the signature is malformed, uses
	// an unsupported method, or does not match the body.
	ErrSignatureMismatch = errors.New("signature mismatch")
)

// Verifier checks request bodies against the app secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier keyed with the app secret.
func NewVerifier(appSecret string) *Verifier {
	return &Verifier{secret: []byte(appSecret)}
}

// Digest returns the lowercase hex HMAC-SHA1 of body.
func (v *Verifier) Digest(body []byte) string {
	mac := hmac.New(sha1.New, v.secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Sign returns the header value for body, e.g. "sha1=3f2a...".
func (v *Verifier) Sign(body []byte) string {
	return Method + "=" + v.Digest(body)
}

// Verify checks header against body. header has the form "method=hexdigest".
func (v *Verifier) Verify(body []byte, header string) error {
	header = strings.TrimSpace(header)
	if header == "" {
		return ErrSignatureMissing
	}

	method, digest, ok := strings.Cut(header, "=")
	if !ok || !strings.EqualFold(method, Method) {
		return ErrSignatureMismatch
	}

	got, err := hex.DecodeString(digest)
	if err != nil {
		return ErrSignatureMismatch
	}

	mac := hmac.New(sha1.New, v.secret)
	mac.Write(body)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return ErrSignatureMismatch
	}
	return nil
}
