package submission

import (
	"bytes"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const signatureHeader = "Typeform-Signature"

// SignatureVerification validates the provider's webhook signature header
// against sha256(secret || raw_body). Verification only runs when a secret is
// configured and the enable flag is set; otherwise the middleware is a
// pass-through, matching the provider integration's default.
func SignatureVerification(secret string, enabled bool) gin.HandlerFunc {
	if !enabled || secret == "" {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unable to read request body"})
			return
		}
		// The handler still needs to bind the body downstream.
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		signature := c.GetHeader(signatureHeader)
		if !verifySignature(secret, body, signature) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
			return
		}

		c.Next()
	}
}

func verifySignature(secret string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	sum := sha256.Sum256(append([]byte(secret), body...))
	computed := hex.EncodeToString(sum[:])

	return subtle.ConstantTimeCompare([]byte(computed), []byte(signature)) == 1
}
