package services

import (
	"context"
	"errors"
	"time"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/api/option"
)

// Principal is the authenticated identity of the current session, as
// supplied by the external auth provider. The UID is opaque and stable.
type Principal struct {
	UID         string `json:"uid"`
	DisplayName string `json:"display_name"`
}

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenVerifier resolves a bearer token into a principal. Implementations:
// Firebase ID tokens for production, locally signed JWTs for development
// and tests.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

type firebaseVerifier struct {
	client *firebaseauth.Client
}

// NewFirebaseVerifier builds a verifier over the Firebase Admin SDK.
// credentialsFile may be empty, in which case application-default
// credentials are used.
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (TokenVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, err
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}

	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) Verify(ctx context.Context, token string) (*Principal, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	principal := &Principal{UID: decoded.UID}
	if name, ok := decoded.Claims["name"].(string); ok {
		principal.DisplayName = name
	}

	return principal, nil
}

// SessionClaims is the claim set of locally signed session tokens.
type SessionClaims struct {
	DisplayName string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type JWTVerifier struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTVerifier builds an HS256 verifier/issuer sharing one secret, for
// environments without Firebase.
func NewJWTVerifier(secret string, ttl time.Duration) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret), ttl: ttl}
}

func (v *JWTVerifier) Verify(ctx context.Context, token string) (*Principal, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Principal{UID: claims.Subject, DisplayName: claims.DisplayName}, nil
}

// IssueToken signs a session token for the principal.
func (v *JWTVerifier) IssueToken(principal *Principal) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		DisplayName: principal.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
