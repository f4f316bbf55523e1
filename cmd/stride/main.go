package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/strideworks/stride/internal/config"
	"github.com/strideworks/stride/internal/domain"
	"github.com/strideworks/stride/internal/infra/database"
	"github.com/strideworks/stride/internal/infra/repository"
	"github.com/strideworks/stride/internal/present/rest"
	"github.com/strideworks/stride/internal/present/rest/middleware"
	"github.com/strideworks/stride/internal/present/rest/presenter"
	"github.com/strideworks/stride/internal/service"
	"github.com/strideworks/stride/internal/usecase"
)

func main() {
	configPath := os.Getenv("STRIDE_CONFIG")
	if configPath == "" {
		configPath = "/etc/stride/config.yaml"
	}

	conf, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if conf.Server.EnableTrace {
		cleanup, err := setupTracer(conf)
		if err != nil {
			slog.Error("failed to setup tracer", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer cleanup()
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		slog.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb := database.NewRedis(conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)

	posting := usecase.NewPostingUsecase(repository.NewPostRepository(db))
	commenting := usecase.NewCommentingUsecase(repository.NewCommentRepository(db))
	tracking := usecase.NewTrackingUsecase(repository.NewDatumRepository(db))
	competing := usecase.NewCompetingUsecase(repository.NewCompetitionRepository(db))
	joining := usecase.NewJoiningUsecase(repository.NewMembershipRepository(db))
	friending := usecase.NewFriendingUsecase(repository.NewFriendRepository(db))
	linking := usecase.NewLinkingUsecase(repository.NewLinkRepository(db))

	directory := service.NewDirectoryService(repository.NewIdentityRepository(db))
	sessions := service.NewSessionService(rdb)
	signal := service.NewSignalService(rdb)

	pres := presenter.New(directory, tracking)
	handler := rest.NewHandler(
		posting, commenting, tracking, competing, joining, friending, linking,
		directory, signal, pres,
	)
	auth := middleware.NewAuthMiddleware(sessions)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("stride"))
	}
	e.Use(auth.IdentifyViewer)

	handler.RegisterRoutes(e)

	// Session issuance stays here rather than in the handler: it is an
	// operational surface, not a synchronization of concepts. Credential
	// checks happen upstream of this server.
	e.POST("/session", func(c echo.Context) error {
		var body struct {
			UserID string `json:"userId"`
		}
		if err := c.Bind(&body); err != nil || body.UserID == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "userId is required"})
		}
		token, err := sessions.Begin(c.Request().Context(), domain.ID(body.UserID))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to begin session"})
		}
		return c.JSON(http.StatusOK, echo.Map{"token": token})
	})
	e.DELETE("/session", func(c echo.Context) error {
		token := strings.TrimPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
		if token == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing token"})
		}
		if err := sessions.End(c.Request().Context(), token); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to end session"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}

func setupTracer(conf config.Config) (func(), error) {
	exporter, err := otlptracehttp.New(
		context.Background(),
		otlptracehttp.WithEndpoint(conf.Server.TraceEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("stride"),
		)),
	)
	otel.SetTracerProvider(provider)

	return func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			slog.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}, nil
}
