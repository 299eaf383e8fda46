package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"os"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/api/response"
)

// timeTokenTTL is how long a generated time token stays valid. Replaying a
// captured token outside this window fails verification.
const timeTokenTTL = 30 * time.Second

// APIKeyMiddleware guards internal endpoints with a shared API key plus a
// short-lived fernet time token derived from it. The key comes from the
// INTERNAL_API_KEY environment variable; callers send it in X-API-Key and a
// fresh token from GenerateTimeToken in X-Time-Token.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expectedKey := os.Getenv("INTERNAL_API_KEY")
		if expectedKey == "" {
			response.RespondError(w, http.StatusInternalServerError, "internal configuration error", "Authentication not loaded")
			return
		}

		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(expectedKey)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		timeToken := r.Header.Get("X-Time-Token")
		if timeToken == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing Time token")
			return
		}
		if !verifyTimeToken(timeToken, expectedKey) {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GenerateTimeToken creates a fernet token bound to the given API key,
// valid for timeTokenTTL. Exposed for clients and tests.
func GenerateTimeToken(apiKey string) string {
	key, err := fernetKey(apiKey)
	if err != nil {
		return ""
	}

	token, err := fernet.EncryptAndSign([]byte("ok"), key)
	if err != nil {
		return ""
	}

	return string(token)
}

func verifyTimeToken(token, apiKey string) bool {
	key, err := fernetKey(apiKey)
	if err != nil {
		return false
	}

	return fernet.VerifyAndDecrypt([]byte(token), timeTokenTTL, []*fernet.Key{key}) != nil
}

// fernetKey derives a 32-byte fernet key from the shared API key, so the
// token and the key check use the same secret.
func fernetKey(apiKey string) (*fernet.Key, error) {
	digest := sha256.Sum256([]byte(apiKey))
	return fernet.DecodeKey(base64.URLEncoding.EncodeToString(digest[:]))
}
