package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HallBooking/internal/api/handlers"
	"github.com/m04kA/SMC-HallBooking/internal/domain"
	userRepo "github.com/m04kA/SMC-HallBooking/internal/infra/storage/user"
)

// UserIDHeader заголовок с ID пользователя, выставляется шлюзом
const UserIDHeader = "X-User-ID"

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidUserID = "некорректный ID пользователя"
	msgUnknownUser   = "пользователь не найден"
)

type actorKey struct{}

// Auth определяет пользователя по заголовку X-User-ID и кладет его в контекст
func Auth(users UserProvider, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(UserIDHeader)
			if raw == "" {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("Auth: invalid %s header %q", UserIDHeader, raw)
				handlers.RespondUnauthorized(w, msgInvalidUserID)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, userRepo.ErrUserNotFound) {
					logger.Warn("Auth: unknown user_id=%d", userID)
					handlers.RespondUnauthorized(w, msgUnknownUser)
					return
				}
				logger.Error("Auth: failed to load user_id=%d: %v", userID, err)
				handlers.RespondInternalError(w)
				return
			}

			ctx := WithActor(r.Context(), domain.ActorFromUser(*user))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithActor кладет пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor возвращает пользователя, определенного middleware Auth
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}
