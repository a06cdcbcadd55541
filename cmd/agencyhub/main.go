package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/agencyhub/agencyhub/client"
	"github.com/agencyhub/agencyhub/internal/config"
	"github.com/agencyhub/agencyhub/internal/infra/database"
	"github.com/agencyhub/agencyhub/internal/infra/gateway"
	"github.com/agencyhub/agencyhub/internal/infra/repository"
	"github.com/agencyhub/agencyhub/internal/present/rest"
	authmw "github.com/agencyhub/agencyhub/internal/present/rest/middleware"
	"github.com/agencyhub/agencyhub/internal/service"
	"github.com/agencyhub/agencyhub/internal/usecase"
)

const pdfCacheTTL = 24 * time.Hour

func fatal(msg string, err error) {
	slog.Error(msg, slog.String("error", err.Error()), slog.String("module", "main"))
	os.Exit(1)
}

func main() {
	configPath := flag.String("config", "/etc/agencyhub/config.yaml", "path to the configuration file")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	conf, err := config.Load(*configPath)
	if err != nil {
		fatal("failed to load config", err)
	}

	ctx := context.Background()

	if conf.Server.EnableTrace {
		cleanup, err := setupTraceProvider(conf.Server.TraceEndpoint, "agencyhub")
		if err != nil {
			fatal("failed to setup tracing", err)
		}
		defer cleanup()
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		fatal("failed to connect database", err)
	}
	err = database.MigratePostgres(db)
	if err != nil {
		fatal("failed to migrate database", err)
	}

	var (
		publisher  usecase.TallyPublisher
		subscriber rest.Subscriber
		registry   usecase.VoterRegistry
	)
	if conf.Server.RedisAddr != "" {
		rdb := database.NewRedis(conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)
		err = database.PingRedis(ctx, rdb)
		if err != nil {
			fatal("failed to connect redis", err)
		}
		signalService := service.NewSignalService(rdb)
		publisher = signalService
		subscriber = signalService

		if conf.Server.VoteSalt != "" {
			voters, err := gateway.NewVoterRegistry(rdb, conf.Server.VoteSalt)
			if err != nil {
				fatal("failed to setup voter registry", err)
			}
			registry = voters
		}
	}

	identity, err := gateway.NewIdentityGateway(ctx, conf.Firebase.ProjectID, conf.Firebase.CredentialsFile)
	if err != nil {
		fatal("failed to setup identity provider", err)
	}

	storage, err := gateway.NewObjectStorageGateway(ctx, conf.Storage.Bucket, conf.Storage.PublicBaseURL)
	if err != nil {
		fatal("failed to setup object storage", err)
	}
	defer storage.Close()

	var mailer usecase.Mailer
	if conf.Mail.SendgridKey != "" {
		mailer = gateway.NewMailer(conf.Mail.SendgridKey, conf.Mail.FromAddress, conf.Mail.FromName)
	}

	var renderer usecase.PDFRenderer = gateway.NewPDFRenderer(client.New("agencyhub"))
	if conf.Server.MemcachedAddr != "" {
		mc := database.NewMemcached(conf.Server.MemcachedAddr)
		renderer = gateway.NewCachedPDFRenderer(renderer, mc, pdfCacheTTL)
	}

	llm := gateway.NewCompletionGateway(conf.AI.APIKey, conf.AI.BaseURL, conf.AI.Model, conf.AI.VisionModel)

	clientRepo := repository.NewClientRepository(db)
	userRepo := repository.NewUserRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)

	domainConfig := conf.Domain()

	clientUsecase := usecase.NewClientUsecase(clientRepo, identity, storage)
	onboardingUsecase := usecase.NewOnboardingUsecase(clientRepo, llm, mailer, domainConfig)
	contentUsecase := usecase.NewContentUsecase(clientRepo, llm, publisher)
	voteUsecase := usecase.NewVoteUsecase(clientRepo, publisher, registry, domainConfig)
	proposalUsecase := usecase.NewProposalUsecase(clientRepo, llm, renderer)
	brandUsecase := usecase.NewBrandUsecase(clientRepo, llm)
	logoUsecase := usecase.NewLogoUsecase(storage, clientRepo)
	userUsecase := usecase.NewUserUsecase(userRepo)
	campaignUsecase := usecase.NewCampaignUsecase(campaignRepo)
	clientAuthUsecase := usecase.NewClientAuthUsecase(clientRepo, userRepo, identity)

	authService := service.NewAuthService(identity, userRepo)
	authMiddleware := authmw.NewAuthMiddleware(authService, domainConfig)

	handler := rest.NewHandler(
		domainConfig,
		authMiddleware,
		clientUsecase,
		onboardingUsecase,
		contentUsecase,
		voteUsecase,
		proposalUsecase,
		brandUsecase,
		logoUsecase,
		userUsecase,
		campaignUsecase,
		clientAuthUsecase,
		subscriber,
	)

	e := echo.New()
	e.HideBanner = true
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("agencyhub", otelecho.WithSkipper(func(c echo.Context) bool {
			return c.Path() == "/healthz"
		})))
	}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(authMiddleware.IdentifyIdentity)

	handler.RegisterRoutes(e)

	go func() {
		err := e.Start(conf.Server.Listen)
		if err != nil && err != http.ErrServerClosed {
			fatal("server stopped", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = e.Shutdown(shutdownCtx)
	if err != nil {
		slog.Error("failed to shutdown server", slog.String("error", err.Error()), slog.String("module", "main"))
	}
}

func setupTraceProvider(endpoint string, serviceName string) (func(), error) {
	exporter, err := otlptracehttp.New(
		context.Background(),
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
	)

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown tracer provider", slog.String("error", err.Error()), slog.String("module", "main"))
		}
	}
	return cleanup, nil
}
