package internal

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultIssuer is stamped on tokens minted by IssueToken.
const DefaultIssuer = "report-service"

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenOptions describes a report-service bearer to mint.
type TokenOptions struct {
	Subject string
	Role    string
	// TTL of zero omits the exp claim.
	TTL    time.Duration
	Issuer string
}

// IssueToken signs an HS256 bearer accepted by Verifier when Role contains "admin".
func IssueToken(secret string, opts TokenOptions, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("empty signing secret")
	}
	if opts.Issuer == "" {
		opts.Issuer = DefaultIssuer
	}
	rc := jwt.RegisteredClaims{
		Subject:  opts.Subject,
		Issuer:   opts.Issuer,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if opts.TTL > 0 {
		rc.ExpiresAt = jwt.NewNumericDate(now.Add(opts.TTL))
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role:             opts.Role,
		RegisteredClaims: rc,
	})
	return tok.SignedString([]byte(secret))
}
