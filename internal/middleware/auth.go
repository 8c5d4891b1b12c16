// internal/middleware/auth.go
package middleware

import (
	"context"
	"fmt"
	"net/http"

	"imagify-backend/internal/models"
	apperrors "imagify-backend/pkg/errors"
	"imagify-backend/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const (
	UserIDContextKey contextKey = "user_id"

	// TokenHeader carries the login token issued to the browser client.
	TokenHeader = "token"
)

// UserClaims is the payload of a login token.
type UserClaims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// UserAuth validates the HS256 token in the token header and stores the
// user id it names in the request context. Rejections use the regular
// HTTP 200 failure envelope.
func UserAuth(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get(TokenHeader)
			if tokenString == "" {
				rejectUnauthorized(w, apperrors.NewUnauthorizedError("token header missing"), logger)
				return
			}

			claims, err := verifyUserToken(tokenString, secret)
			if err != nil {
				rejectUnauthorized(w, apperrors.NewUnauthorizedError(err.Error()), logger)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDContextKey, claims.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func verifyUserToken(tokenString, secret string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("id not found in token")
	}

	return claims, nil
}

func rejectUnauthorized(w http.ResponseWriter, err *apperrors.AppError, logger *zap.Logger) {
	logger.Info("Request not authorized", zap.String("reason", err.Details))
	utils.SendJSONResponse(w, http.StatusOK, models.NewFailureResponse(err.Message))
}

// GetUserIDFromContext returns the user id set by UserAuth.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(string)
	return userID, ok && userID != ""
}
