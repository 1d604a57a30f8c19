package kraken

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"

	"github.com/pkg/errors"
)

// Signer computes API-Sign values for private requests.
type Signer struct {
	secret []byte
}

// NewSigner decodes the base64 API secret.
func NewSigner(secret string) (*Signer, error) {
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, configError("new signer", errors.Wrap(err, "api secret is not valid base64"))
	}
	if len(key) == 0 {
		return nil, configError("new signer", errors.New("api secret is empty"))
	}
	return &Signer{secret: key}, nil
}

// Sign returns base64(HMAC-SHA512(secret, path + SHA256(nonce + body))).
// body must be the exact bytes sent on the wire.
func (s *Signer) Sign(path, nonce, body string) string {
	digest := sha256.Sum256([]byte(nonce + body))

	mac := hmac.New(sha512.New, s.secret)
	mac.Write([]byte(path))
	mac.Write(digest[:])
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// PrivatePath is the canonical path covered by the signature.
func PrivatePath(version int, method string) string {
	return fmt.Sprintf("/%d/%s/%s", version, privateRoot, method)
}

// PublicPath is the path of a public resource.
func PublicPath(version int, resource string) string {
	return fmt.Sprintf("/%d/%s/%s", version, publicRoot, resource)
}
