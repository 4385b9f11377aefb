package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
)

const (
	HeaderSignature = "X-Signature"
	HeaderRequestID = "X-Request-Id"
)

// Verifier checks the processor's webhook signature: an HMAC-SHA256 over
// "id:<data.id>;request-id:<x-request-id>;ts:<ts>;" sent as the v1 part of
// the x-signature header.
type Verifier struct {
	Secret string
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{Secret: secret}
}

// Enabled reports whether a signing secret is configured.
func (v *Verifier) Enabled() bool {
	return v.Secret != ""
}

// Verify returns true when verification is disabled or when either signature
// header is absent; unsigned calls are treated as test deliveries.
func (v *Verifier) Verify(headers http.Header, dataID string) bool {
	if !v.Enabled() {
		return true
	}

	sig := headers.Get(HeaderSignature)
	requestID := headers.Get(HeaderRequestID)
	if sig == "" || requestID == "" {
		return true
	}

	ts, received := ParseHeader(sig)
	if ts == "" || received == "" {
		return false
	}

	expected := Sign(v.Secret, Manifest(dataID, requestID, ts))

	return hmac.Equal([]byte(expected), []byte(received))
}

func Manifest(dataID, requestID, ts string) string {
	return "id:" + dataID + ";request-id:" + requestID + ";ts:" + ts + ";"
}

// Sign returns the lowercase hex HMAC-SHA256 of manifest.
func Sign(secret, manifest string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	return hex.EncodeToString(mac.Sum(nil))
}

// ParseHeader extracts ts and v1 from "ts=...,v1=...". Segments without a key
// or a value are skipped.
func ParseHeader(header string) (ts, v1 string) {
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		value, _, _ = strings.Cut(value, "=")

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}

		switch key {
		case "ts":
			ts = value
		case "v1":
			v1 = value
		}
	}
	return ts, v1
}
