package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/get-hunter/hero365-app-sub002/api/responses"
	"github.com/get-hunter/hero365-app-sub002/pkg/enums"
	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
	"github.com/get-hunter/hero365-app-sub002/pkg/logger"
)

// MembershipChecker answers authorization questions from the membership
// table rather than from token claims, so a revoked or customized
// membership takes effect before the token expires.
type MembershipChecker interface {
	UserHasRole(ctx context.Context, userID, businessID uuid.UUID, roles ...enums.MemberRole) (bool, error)
	UserHasPermission(ctx context.Context, userID, businessID uuid.UUID, permission string) (bool, error)
}

// RequireRoles rejects requests whose live membership role is not in the
// allowed set.
func RequireRoles(checker MembershipChecker, logg *logger.Logger, allowed ...enums.MemberRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if checker == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "membership checker unavailable"))
				return
			}
			if len(allowed) == 0 {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "allowed roles missing"))
				return
			}

			userID, businessID, err := actorIDs(ctx)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			ok, err := checker.UserHasRole(ctx, userID, businessID, allowed...)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check membership role"))
				return
			}
			if !ok {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission rejects requests whose live membership does not hold the
// permission. The stored permission set wins over the role default, so a
// membership with revoked or extra grants authorizes exactly as stored.
func RequirePermission(permission string, checker MembershipChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if checker == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "membership checker unavailable"))
				return
			}

			userID, businessID, err := actorIDs(ctx)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			ok, err := checker.UserHasPermission(ctx, userID, businessID, permission)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check membership permission"))
				return
			}
			if !ok {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "permission required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireBusiness rejects requests lacking an active business in the token.
func RequireBusiness(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if BusinessIDFromContext(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "active business required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func actorIDs(ctx context.Context) (uuid.UUID, uuid.UUID, error) {
	rawUser := UserIDFromContext(ctx)
	if rawUser == "" {
		return uuid.Nil, uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	rawBusiness := BusinessIDFromContext(ctx)
	if rawBusiness == "" {
		return uuid.Nil, uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "active business required")
	}

	userID, err := uuid.Parse(rawUser)
	if err != nil {
		return uuid.Nil, uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	businessID, err := uuid.Parse(rawBusiness)
	if err != nil {
		return uuid.Nil, uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid business id")
	}
	return userID, businessID, nil
}
