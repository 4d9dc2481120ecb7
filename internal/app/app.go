package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"modboard/internal/config"
	s3infra "modboard/internal/infra/s3"
	"modboard/internal/repo/modhttp"
	redrepo "modboard/internal/repo/redis"
	auditsvc "modboard/internal/services/audit"
	reviewsvc "modboard/internal/services/review"
	scrollsvc "modboard/internal/services/scroll"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	redis      *goredis.Client
	store      *reviewsvc.Store
	trigger    *scrollsvc.Trigger
	httpRouter http.Handler
}

// New wires the dashboard: moderation backend client, dual-queue store,
// scroll trigger, and the HTTP presentation boundary. The moderator is
// authenticated and both queues are primed before the server accepts
// traffic; a failed credential exchange aborts startup.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	client, err := modhttp.NewClient(cfg.Adapter.BaseURL, cfg.Adapter.APIKey, cfg.Adapter.Timeout)
	if err != nil {
		return nil, fmt.Errorf("create moderation client: %w", err)
	}
	reviewRepo := modhttp.NewReviewRepo(client)

	store := reviewsvc.NewStore(reviewRepo, reviewsvc.Config{
		ModeratorID: cfg.Adapter.ModeratorUserID,
		Token:       cfg.Adapter.ModeratorToken,
		PageSize:    cfg.Review.PageSize,
	}, log)

	var (
		redisClient  *goredis.Client
		auditService *auditsvc.Service
	)
	if strings.TrimSpace(cfg.Redis.Addr) != "" {
		redisClient = redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		auditService = auditsvc.NewService(redrepo.NewAuditRepo(redisClient))
		store.AttachRecorder(auditService)
	} else {
		log.Warn("redis is disabled, action audit trail is off")
	}

	if strings.TrimSpace(cfg.S3.Endpoint) != "" && strings.TrimSpace(cfg.S3.Bucket) != "" {
		signer, signerErr := s3infra.NewImageSigner(s3infra.Config{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			UseSSL:    cfg.S3.UseSSL,
			URLTTL:    cfg.S3.URLTTL,
		})
		if signerErr != nil {
			log.Warn("image signer unavailable, payload image keys stay unsigned", zap.Error(signerErr))
		} else {
			store.AttachSigner(signer)
		}
	}

	if err := store.Initialize(ctx); err != nil {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, fmt.Errorf("initialize review store: %w", err)
	}

	trigger := scrollsvc.NewTrigger(cfg.Review.ScrollThresholdPx, cfg.Review.ScrollDebounce, func() {
		store.TryFetchNext(context.Background())
	})

	deps := Dependencies{
		Store:    store,
		Observer: trigger,
		Logger:   log,
	}
	if auditService != nil {
		deps.Audit = auditService
	}
	RegisterRoutes(r, deps)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		redis:      redisClient,
		store:      store,
		trigger:    trigger,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("dashboard server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	a.trigger.Detach()

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
