package security

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"videotube-server/internal/apperror"
	"videotube-server/internal/model"
	"videotube-server/internal/util"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

// AccessTokenVerifier : проверка access токена и загрузка пользователя
type AccessTokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (*model.User, error)
}

func JWTMiddleware(verifier AccessTokenVerifier) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(verifier, next))
	}
}

func handleAuthentication(verifier AccessTokenVerifier, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		token := AccessTokenFromRequest(request)
		if token == "" {
			util.HandleError(writer, "unauthorized request", http.StatusUnauthorized)
			return
		}

		user, err := verifier.VerifyAccessToken(request.Context(), token)
		if err != nil {
			if apperror.KindOf(err) == apperror.KindUnauthorized {
				zap.L().Debug("невалидный access токен", zap.Error(err))
			}
			util.WriteError(writer, request, err)
			return
		}

		req := request.WithContext(WithUser(request.Context(), user))
		next.ServeHTTP(writer, req)
	}
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

func GetUserFromContext(ctx context.Context) (*model.User, error) {
	user, ok := ctx.Value(UserContextKey).(*model.User)
	if !ok || user == nil {
		return nil, apperror.Unauthorized("unauthorized request")
	}
	return user, nil
}
