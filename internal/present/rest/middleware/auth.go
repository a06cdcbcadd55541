package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/agencyhub/agencyhub/internal/domain"
	"github.com/agencyhub/agencyhub/internal/present/rest/presenter"
	"github.com/agencyhub/agencyhub/internal/service"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct {
	auth   *service.AuthService
	config domain.Config
}

func NewAuthMiddleware(
	auth *service.AuthService,
	config domain.Config,
) *AuthMiddleware {
	return &AuthMiddleware{
		auth:   auth,
		config: config,
	}
}

func (s *AuthMiddleware) IdentifyIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Service.IdentifyIdentity")
		defer span.End()

		authHeader := c.Request().Header.Get("authorization")

		if authHeader != "" && s.auth != nil {
			split := strings.Split(authHeader, " ")
			if len(split) != 2 {
				span.RecordError(fmt.Errorf("invalid authentication header"))
				goto skipCheckAuthorization
			}

			authType, token := split[0], split[1]
			if authType != "Bearer" {
				span.RecordError(fmt.Errorf("only Bearer is acceptable"))
				goto skipCheckAuthorization
			}

			result, err := s.auth.AuthToken(ctx, token)
			if err != nil {
				span.RecordError(errors.Wrap(err, "AuthMiddleware.IdentifyIdentity: s.auth.AuthToken failed"))
				goto skipCheckAuthorization
			}

			ctx = context.WithValue(ctx, domain.RequesterUIDCtxKey, result.UID)
			span.SetAttributes(attribute.String("RequesterUID", result.UID))
			if result.User != nil {
				ctx = context.WithValue(ctx, domain.RequesterRoleCtxKey, result.User.Role)
				span.SetAttributes(attribute.String("RequesterRole", string(result.User.Role)))
			}
		}

	skipCheckAuthorization:
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// RequireTeamMember guards operator routes when authentication is enabled.
func (s *AuthMiddleware) RequireTeamMember(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.config.RequireAuth {
			return next(c)
		}
		ctx := c.Request().Context()
		if RequesterUID(ctx) == "" {
			return presenter.Unauthorized(c, "authentication required")
		}
		if !IsTeamMember(ctx) {
			return presenter.Forbidden(c, "team members only")
		}
		return next(c)
	}
}

func RequesterUID(ctx context.Context) string {
	uid, _ := ctx.Value(domain.RequesterUIDCtxKey).(string)
	return uid
}

func IsTeamMember(ctx context.Context) bool {
	role, _ := ctx.Value(domain.RequesterRoleCtxKey).(domain.Role)
	return role == domain.RoleTeamMember
}
