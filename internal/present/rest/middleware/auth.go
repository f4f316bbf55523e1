package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/strideworks/stride/internal/domain"
	"github.com/strideworks/stride/internal/service"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct {
	sessions *service.SessionService
}

func NewAuthMiddleware(sessions *service.SessionService) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// IdentifyViewer resolves the bearer token to a viewer id and stores it in
// the request context. A missing or invalid token leaves the request
// anonymous; endpoints that require a viewer reject it themselves.
func (s *AuthMiddleware) IdentifyViewer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifyViewer")
		defer span.End()

		authHeader := c.Request().Header.Get("authorization")

		if authHeader != "" {
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

			viewer, err := s.sessions.Viewer(ctx, token)
			if err != nil {
				span.RecordError(errors.Wrap(err, "AuthMiddleware.IdentifyViewer: session lookup failed"))
				goto skipCheckAuthorization
			}

			ctx = context.WithValue(ctx, domain.ViewerCtxKey, viewer)
			span.SetAttributes(attribute.String("Viewer", viewer.String()))
		}

	skipCheckAuthorization:
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// ViewerFromContext extracts the viewer id; the zero id means anonymous.
func ViewerFromContext(ctx context.Context) domain.ID {
	viewer, _ := ctx.Value(domain.ViewerCtxKey).(domain.ID)
	return viewer
}
