// Package jwtmw はHMAC署名のJWTによる認証ミドルウェアとトークン生成を提供します。
package jwtmw

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// EnvKeyJWTSecret は署名鍵を保持する環境変数名です。
	EnvKeyJWTSecret = "JWT_SECRET"
	// ContextUserID はgin.Contextに設定するユーザーIDのキーです。
	ContextUserID = "userID"
)

var errMissingSubject = errors.New("token has no subject")

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		// 2. Load secret key from environment variable
		secret := os.Getenv(EnvKeyJWTSecret)
		if secret == "" {
			// Server misconfiguration (JWT_SECRET not set)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		// 3. Verify signature and extract subject
		userID, err := subject(strings.TrimPrefix(auth, "Bearer "), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ContextUserID, userID)

		// 4. Pass control to the next handler
		c.Next()
	}
}

// OptionalAuth は有効なトークンがあればユーザーIDを設定し、なければそのまま通過させます。
// 認証なしでも使えるエンドポイントで、ログイン中のユーザー向けの情報を付け加えるのに使います。
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		secret := os.Getenv(EnvKeyJWTSecret)
		if strings.HasPrefix(auth, "Bearer ") && secret != "" {
			if userID, err := subject(strings.TrimPrefix(auth, "Bearer "), secret); err == nil {
				c.Set(ContextUserID, userID)
			}
		}
		c.Next()
	}
}

// UserID はミドルウェアが設定したユーザーIDを返します。未認証なら空文字です。
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// subject はトークンを検証し、subクレームを文字列で返します。
// 数値のsub（JSONではfloat64になる）も受け付けます。
func subject(tokenStr, secret string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenUnverifiable
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errMissingSubject
	}
	switch sub := claims["sub"].(type) {
	case string:
		if sub != "" {
			return sub, nil
		}
	case float64:
		if sub >= 0 {
			return strconv.FormatUint(uint64(sub), 10), nil
		}
	}
	return "", errMissingSubject
}
