package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var (
	authSecret = []byte(os.Getenv("AUTH_SECRET"))
)

const (
	// Utilizes a non-standard nginx code
	statusClosedConnection int = 499

	tokenLifetime = 12 * time.Hour
)

func filterError(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		resp := c.Response()
		// Process the request
		err := next(c)
		// The below is executed after the request and subsequent middleware
		if err != nil {
			// Check for a broken pipe, modify response status, and create an error
			if errors.Is(err, syscall.EPIPE) {
				logger(c.Request().Context(), err)
				resp.Status = statusClosedConnection
				return nil
			}
		}
		return err
	}
}

// requireToken verifies the bearer token issued by the login handler.
func requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// Obtains raw http request
		r := c.Request()

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logger(r.Context(), errors.New("authorization header not found"))
			return c.NoContent(http.StatusUnauthorized)
		}

		// Convert auth header to token and store on request object
		token, err := parseToken(authHeader)
		if err != nil {
			logger(r.Context(), err)
			return c.NoContent(http.StatusUnauthorized)
		}

		// Set token on context struct
		c.Set("user", token)

		// Otherwise return
		return next(c)
	}
}

// createToken issues a signed session token after the credential check.
func createToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"iss": appName,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(authSecret)
}

func parseToken(authHeader string) (*jwt.Token, error) {
	index := strings.Index(authHeader, "Bearer ")
	if index == 0 {
		authHeader = authHeader[len("Bearer "):]
	}

	// Parse and verify the auth token
	token, err := jwt.Parse(authHeader, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return authSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return token, nil
}
