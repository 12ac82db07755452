package utils

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const UserDNIKey contextKey = "userDNI"

func GetUserDNIFromContext(r *http.Request) (string, error) {
	dni, ok := r.Context().Value(UserDNIKey).(string)
	if !ok || dni == "" {
		return "", errors.New("user DNI not found in context")
	}
	return dni, nil
}

// GenerateToken issues an HS256 access token whose subject is the DNI.
func GenerateToken(dni string, ttl time.Duration) (string, error) {
	claims := &jwt.RegisteredClaims{
		Subject:   dni,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("SECRET_KEY")))
}

func AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			WriteError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("SECRET_KEY")), nil
		})
		if err != nil || !token.Valid {
			WriteError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		if claims.Subject == "" {
			WriteError(w, http.StatusUnauthorized, "Invalid subject in token")
			return
		}

		ctx := context.WithValue(r.Context(), UserDNIKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
