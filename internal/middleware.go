package internal

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"report-service/internal/logging"
	"report-service/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
)

const (
	authHeader    = "Authorization"
	apiAuthHeader = "X-Api-Authorization"
	bearerPrefix  = "bearer "
)

// AuthError is a rejected credential. Status is 401 or 403.
type AuthError struct {
	Status int
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }

// Verifier checks report-service bearers signed with a shared HS256 secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Validate admits an Authorization header value carrying an admin bearer.
// It returns nil when admitted and an *AuthError otherwise.
func (v *Verifier) Validate(header string) error {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return &AuthError{Status: http.StatusUnauthorized, Reason: "Missing RS bearer"}
	}
	tokenStr := strings.SplitN(header, " ", 2)[1]

	cl := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, cl, func(token *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil {
		return &AuthError{Status: http.StatusUnauthorized, Reason: "Invalid RS bearer: " + err.Error()}
	}

	if !strings.Contains(roleOf(cl), "admin") {
		return &AuthError{Status: http.StatusForbidden, Reason: "RS bearer not admin"}
	}
	return nil
}

// roleOf reads "role", falling back to "roles" when role is blank, as a
// lower-case string.
// Lists are joined with spaces.
func roleOf(cl jwt.MapClaims) string {
	role := cl["role"]
	if isBlank(role) {
		role = cl["roles"]
	}
	switch r := role.(type) {
	case nil:
		return ""
	case string:
		return strings.ToLower(r)
	case []any:
		parts := make([]string, 0, len(r))
		for _, p := range r {
			parts = append(parts, strings.ToLower(fmt.Sprint(p)))
		}
		return strings.Join(parts, " ")
	default:
		return strings.ToLower(fmt.Sprint(r))
	}
}

// isBlank reports whether a claim value is empty enough to fall through to
// the next claim: null, false, zero, "" and empty lists or objects.
func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	case bool:
		return !x
	case float64:
		return x == 0
	case json.Number:
		f, err := x.Float64()
		return err == nil && f == 0
	}
	return false
}
