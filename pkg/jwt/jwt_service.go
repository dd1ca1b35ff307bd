package jwt

import (
	"errors"
	"fmt"
	"pantrypal/domain"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const issuer = "PANTRYPAL"

var ErrEmptySecret = errors.New("JWT_SECRET is not set")

type (
	JWTService interface {
		GenerateOwnerToken(subject string, ttl time.Duration) (string, error)
		ValidateToken(token string) (*jwt.Token, error)
		GetSubjectByToken(token string) (string, string, error)
	}

	ownerClaim struct {
		Role string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		now       func() time.Time
	}
)

func NewJWTService(secretKey string) JWTService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    issuer,
		now:       time.Now,
	}
}

// GenerateOwnerToken issues a token for the single inventory owner. A zero
// ttl means the token never expires.
func (j *jwtService) GenerateOwnerToken(subject string, ttl time.Duration) (string, error) {
	if j.secretKey == "" {
		return "", ErrEmptySecret
	}

	now := j.now()
	claims := ownerClaim{
		Role: domain.OwnerRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			Issuer:   j.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateToken(token string) (*jwt.Token, error) {
	if j.secretKey == "" {
		return nil, ErrEmptySecret
	}
	return jwt.ParseWithClaims(token, &ownerClaim{}, j.parseToken)
}

func (j *jwtService) GetSubjectByToken(token string) (string, string, error) {
	t_Token, err := j.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", domain.ErrTokenExpired
		}
		return "", "", domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return "", "", domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*ownerClaim)
	if claims.Issuer != j.issuer || claims.Role != domain.OwnerRole {
		return "", "", domain.ErrTokenInvalid
	}
	return claims.Subject, claims.Role, nil
}
