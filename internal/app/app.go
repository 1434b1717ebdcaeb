package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/FardadA/samp-crush/internal/config"
	"github.com/FardadA/samp-crush/internal/infra/telegram"
	"github.com/FardadA/samp-crush/internal/repo/postgres"
	redisrepo "github.com/FardadA/samp-crush/internal/repo/redis"
	"github.com/FardadA/samp-crush/internal/services/access"
	auditsvc "github.com/FardadA/samp-crush/internal/services/audit"
	channelsvc "github.com/FardadA/samp-crush/internal/services/channels"
	"github.com/FardadA/samp-crush/internal/services/gate"
	"github.com/FardadA/samp-crush/internal/services/onboarding"
	profilesvc "github.com/FardadA/samp-crush/internal/services/profile"
	"github.com/FardadA/samp-crush/internal/services/referral"
	schoolsvc "github.com/FardadA/samp-crush/internal/services/schools"
	opshttp "github.com/FardadA/samp-crush/internal/transport/http"
)

type App struct {
	cfg    config.Config
	logger *zap.Logger

	redis *goredis.Client
	tg    *telegram.Client
	ops   *opshttp.Server

	profileRepo *redisrepo.ProfileRepo

	accessService   *access.Service
	gateService     *gate.Service
	regService      *onboarding.Service
	referralService *referral.Service
	profileService  *profilesvc.Service
	schoolService   *schoolsvc.Service
	channelService  *channelsvc.Service
	auditService    *auditsvc.Service

	sessions *sessions
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Warn("postgres unavailable, continuing without audit trail", zap.Error(err))
		pool = nil
	}

	profileRepo := redisrepo.NewProfileRepo(redisClient)
	adminRepo := redisrepo.NewAdminRepo(redisClient)
	channelRepo := redisrepo.NewChannelRepo(redisClient)
	chatsRepo := redisrepo.NewChatsRepo(redisClient)
	schoolRepo := redisrepo.NewSchoolRepo(redisClient)
	auditRepo := postgres.NewAuditRepo(pool)

	a := &App{
		cfg:         cfg,
		logger:      logger,
		redis:       redisClient,
		profileRepo: profileRepo,
		sessions:    newSessions(),
	}

	tg, err := telegram.NewClient(cfg.Bot.Token, cfg.Bot.PollTimeoutSeconds, logger, a.routeUpdate)
	if err != nil {
		return nil, fmt.Errorf("create telegram client: %w", err)
	}
	a.tg = tg

	a.accessService = access.NewService(adminRepo)
	a.gateService = gate.NewService(channelRepo, tg, logger)
	a.regService = onboarding.NewService(profileRepo)
	a.referralService = referral.NewService(profileRepo, cfg.Rewards.WelcomeCoins, cfg.Rewards.ReferralCoins, logger)
	a.profileService = profilesvc.NewService(profileRepo, schoolRepo, cfg.Rewards.AgeMin, cfg.Rewards.AgeMax, cfg.Rewards.CompletionCoins, logger)
	a.schoolService = schoolsvc.NewService(schoolRepo)
	a.channelService = channelsvc.NewService(channelRepo, chatsRepo, tg, logger)
	a.auditService = auditsvc.NewService(auditRepo, logger)

	a.ops = opshttp.NewServer(cfg.Ops.Addr, redisClient, logger)

	return a, nil
}

// Run blocks until ctx is canceled, then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	a.ops.Start()
	defer a.ops.Shutdown()
	defer func() { _ = a.redis.Close() }()

	a.logger.Info("bot started",
		zap.String("env", a.cfg.Env),
		zap.String("ops_addr", a.cfg.Ops.Addr))

	return a.tg.Start(ctx)
}
