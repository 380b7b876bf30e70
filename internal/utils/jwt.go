package utils

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// JWTUtil issues and verifies the signed access and refresh tokens the
// rest of the system treats as opaque strings.
type JWTUtil struct {
	secret        string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewJWTUtil(secret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTUtil {
	if refreshSecret == "" {
		refreshSecret = secret
	}
	return &JWTUtil{
		secret:        secret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (j *JWTUtil) GenerateAccessToken(subject, role string) (string, error) {
	return j.sign(subject, role, j.secret, j.accessTTL)
}

func (j *JWTUtil) GenerateRefreshToken(subject, role string) (string, error) {
	return j.sign(subject, role, j.refreshSecret, j.refreshTTL)
}

func (j *JWTUtil) sign(subject, role, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
		"jti":  GenerateCode(10),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// TokenClaims is the decoded identity carried by a token.
type TokenClaims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

func (j *JWTUtil) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	return j.validate(tokenString, j.secret)
}

func (j *JWTUtil) ValidateRefreshToken(tokenString string) (*TokenClaims, error) {
	return j.validate(tokenString, j.refreshSecret)
}

func (j *JWTUtil) validate(tokenString, secret string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return nil, errors.New("invalid token subject")
	}
	exp, _ := claims["exp"].(float64)

	return &TokenClaims{
		Subject:   sub,
		Role:      role,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}

// IsTokenBlacklisted reports whether a logout already revoked the token.
func (j *JWTUtil) IsTokenBlacklisted(ctx context.Context, tokenString string, redis *RedisClient) bool {
	var blacklisted bool
	err := redis.Get(ctx, fmt.Sprintf("blacklist:%s", tokenString), &blacklisted)
	return err == nil && blacklisted
}

// GenerateCode returns a random alphanumeric string, used for token ids
// and temporary passwords.
func GenerateCode(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[seededRand.Intn(len(charset))]
	}
	return string(b)
}
