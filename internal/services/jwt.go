package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Renal37/smm-storefront/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Ошибки разбора bearer-токена.
var (
	ErrTokenIsInvalid = errors.New("токен недействителен")
	ErrTokenIsExpired = errors.New("токен истёк")
)

// JWTService извлекает сессию из токена, выданного backend-ом витрины.
// Без секретного ключа подпись не проверяется: её проверяет сам backend при каждом вызове.
type JWTService struct {
	authSecretKey   string
	defaultCurrency string
	now             func() time.Time
}

func NewJWTService(authSecretKey string) *JWTService {
	return &JWTService{authSecretKey: authSecretKey, now: time.Now}
}

// WithDefaultCurrency задаёт валюту сессии для токенов без claim currency.
func (j *JWTService) WithDefaultCurrency(code string) *JWTService {
	j.defaultCurrency = code
	return j
}

// GenerateJWT подписывает токен для сессии. Используется для локального запуска и в тестах.
func (j *JWTService) GenerateJWT(session models.Session, ttl time.Duration) (string, error) {
	now := j.now()

	claims := jwt.MapClaims{
		"sub": session.Subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if session.Name != "" {
		claims["name"] = session.Name
	}
	if session.Currency != "" {
		claims["currency"] = session.Currency
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(j.authSecretKey))
	if err != nil {
		return "", fmt.Errorf("error while generating token: %w", err)
	}

	return tokenString, nil
}

// Resolve разбирает токен и собирает из его claims сессию.
func (j *JWTService) Resolve(tokenString string) (models.Session, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return models.Session{}, ErrTokenIsInvalid
	}

	claims, err := j.parse(tokenString)
	if err != nil {
		return models.Session{}, err
	}

	session := models.Session{
		Token:    tokenString,
		Subject:  claimString(claims, "sub"),
		Name:     claimString(claims, "name"),
		Currency: claimString(claims, "currency"),
	}

	if session.Subject == "" {
		session.Subject = claimString(claims, "email")
	}
	if session.Subject == "" {
		return models.Session{}, ErrTokenIsInvalid
	}

	if session.Currency == "" {
		session.Currency = j.defaultCurrency
	}

	if session.Name == "" {
		session.Name = strings.TrimSpace(claimString(claims, "first_name") + " " + claimString(claims, "last_name"))
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		session.ExpiresAt = exp.Time
	}

	return session, nil
}

func (j *JWTService) parse(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}

	if j.authSecretKey == "" {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return nil, ErrTokenIsInvalid
		}

		exp, err := claims.GetExpirationTime()
		if err != nil {
			return nil, ErrTokenIsInvalid
		}
		if exp != nil && exp.Before(j.now()) {
			return nil, ErrTokenIsExpired
		}

		return claims, nil
	}

	parsedToken, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.authSecretKey), nil
	}, jwt.WithTimeFunc(j.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenIsExpired
		}

		return nil, ErrTokenIsInvalid
	}

	if !parsedToken.Valid {
		return nil, ErrTokenIsInvalid
	}

	return claims, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	value, _ := claims[key].(string)
	return strings.TrimSpace(value)
}
