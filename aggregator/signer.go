package aggregator

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// credentials holds the provider API credentials used to sign every request.
type credentials struct {
	apiKey     string
	secretKey  string
	passphrase string
}

// sign produces the request signature: base64(HMAC-SHA256(secret,
// timestamp + method + path + body)).
func (c credentials) sign(timestamp, method, path string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(c.secretKey))
	mac.Write([]byte(timestamp))
	mac.Write([]byte(method))
	mac.Write([]byte(path))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
