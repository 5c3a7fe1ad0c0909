// Package auth implements the token codec: issuing and verifying signed,
// time-bounded JWTs that carry an account id. The codec is pure cryptographic
// and temporal logic; it never touches storage.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any signature, claim or temporal-window
// violation, and for structurally malformed payloads.
var ErrInvalidToken = errors.New("invalid token")

// TokenData is the custom claim payload. The shape matches tokens minted by
// the previous generation of the service, so outstanding tokens stay valid.
type TokenData struct {
	AccountID int64 `json:"accountId"`
}

// Claims combines the registered temporal/audience claims with TokenData.
type Claims struct {
	jwt.RegisteredClaims
	Data TokenData `json:"data"`
}

// Options configures the codec. NotBefore is an offset added to the issue
// time; a small negative value tolerates clock skew between peers. Clock is
// used for both issuing and verifying and defaults to time.Now.
type Options struct {
	Issuer    string
	Audience  string
	Subject   string
	TTL       time.Duration
	NotBefore time.Duration
	Clock     func() time.Time
}

// Codec signs and verifies account tokens with a process-wide symmetric
// secret. The secret and options are immutable after construction.
type Codec struct {
	secret []byte
	opts   Options
	now    func() time.Time
}

func NewCodec(secret []byte, opts Options) *Codec {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	return &Codec{secret: secret, opts: opts, now: now}
}

// Issue produces a signed HS512 token carrying accountID plus
// iss/aud/sub/iat/nbf/exp claims.
func (c *Codec) Issue(accountID int64) (string, error) {
	now := c.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.opts.Issuer,
			Audience:  jwt.ClaimStrings{c.opts.Audience},
			Subject:   c.opts.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(c.opts.NotBefore)),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.opts.TTL)),
		},
		Data: TokenData{AccountID: accountID},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, algorithm, issuer/audience/subject and the
// temporal window, and returns the embedded account id. All violations,
// including a missing or non-positive accountId, yield ErrInvalidToken.
func (c *Codec) Verify(tokenString string) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(c.opts.Issuer),
		jwt.WithAudience(c.opts.Audience),
		jwt.WithSubject(c.opts.Subject),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return 0, ErrInvalidToken
	}
	if claims.Data.AccountID <= 0 {
		return 0, fmt.Errorf("%w: token payload carries no accountId", ErrInvalidToken)
	}

	return claims.Data.AccountID, nil
}
