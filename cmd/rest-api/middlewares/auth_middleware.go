package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	common "github.com/sportlink/sportlink-api/pkg/domain"
)

// AuthMiddleware validates the Bearer token issued by the external auth
// service and injects {userID, role} into the request context. Deactivated
// accounts are rejected outright.
type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret)}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			common.WriteErrorResponse(w, common.MapError(common.NewErrUnauthorized()))
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.secret, nil
		})
		if err != nil || !token.Valid {
			common.WriteErrorResponse(w, common.MapError(common.NewErrUnauthorized()))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			common.WriteErrorResponse(w, common.MapError(common.NewErrUnauthorized()))
			return
		}

		subject, _ := claims.GetSubject()
		userID, err := uuid.Parse(subject)
		if err != nil {
			common.WriteErrorResponse(w, common.MapError(common.NewErrUnauthorized()))
			return
		}

		role := common.RoleRegular
		if raw, ok := claims["role"].(string); ok && raw != "" {
			role = common.UserRole(raw)
		}
		if role == common.RoleDeactivated {
			common.WriteErrorResponse(w, common.MapError(common.NewErrForbidden("account deactivated")))
			return
		}

		ctx := context.WithValue(r.Context(), common.UserIDKey, userID)
		ctx = context.WithValue(ctx, common.UserRoleKey, role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
