package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpadapter "omerta/internal/adapter/http"
	metricsinmem "omerta/internal/adapter/metrics/inmemory"
	"omerta/internal/adapter/notify/zlog"
	gormrepo "omerta/internal/adapter/repo/gorm"
	memrepo "omerta/internal/adapter/repo/memory"
	redisrepo "omerta/internal/adapter/repo/redis"
	"omerta/internal/app/action"
	"omerta/internal/app/ledger"
	"omerta/internal/app/ports"
	"omerta/internal/app/progression"
	"omerta/internal/app/status"
	"omerta/internal/app/timers"
	"omerta/internal/config"
	"omerta/internal/domain/game"
	"omerta/internal/pkg/lock"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	players, timerRepo, attempts, catalog, txManager := buildRepos(ctx, cfg)
	timerStore := timers.Store{Timers: timerRepo}
	recorder := metricsinmem.NewRecorder()
	notifier := zlog.New(log.Logger)

	progress := progression.Service{
		TxManager: txManager,
		Players:   players,
		Catalog:   catalog,
		Notifier:  notifier,
		Now:       time.Now,
	}

	h := httpadapter.Handler{
		ActionUC: action.UseCase{
			TxManager:       txManager,
			Players:         players,
			Timers:          timerStore,
			Attempts:        attempts,
			Catalog:         catalog,
			Progress:        progress,
			Locks:           lock.NewPlayerLock(),
			LockTimeout:     cfg.Engine.LockTimeout,
			ConflictRetries: cfg.Engine.ConflictRetries,
			Metrics:         recorder,
			Notifier:        notifier,
			Roller:          game.NewRoller(cfg.Engine.RandomSeed),
			Rules:           action.DefaultRules(),
			Now:             time.Now,
		},
		StatusUC: status.UseCase{
			Players: players,
			Timers:  timerStore,
			Now:     time.Now,
		},
		Ledger: ledger.Ledger{
			TxManager: txManager,
			Players:   players,
		},
		KPI: recorder,
	}

	if cfg.Timers.ReaperEnabled {
		reaper := timers.Reaper{
			Store:    timerStore,
			Interval: cfg.Timers.ReaperInterval,
			Logger:   log.Logger,
			Now:      time.Now,
		}
		go reaper.Run(ctx)
	}

	s := server.Default(server.WithHostPorts(cfg.Server.Addr))
	h.RegisterRoutes(s)

	log.Info().Str("addr", cfg.Server.Addr).Str("backend", cfg.Storage.Backend).Msg("omerta server listening")
	s.Spin()
}

func buildRepos(ctx context.Context, cfg *config.Config) (ports.PlayerRepository, ports.TimerRepository, ports.AttemptRepository, ports.CatalogRepository, ports.TxManager) {
	if cfg.Storage.Backend == "memory" {
		store := memrepo.NewStore()
		seedMemoryCatalog(store)
		store.SeedPlayer(game.NewPlayer(1, "demo", 1))
		return memrepo.NewPlayerRepo(store), memrepo.NewTimerRepo(store), memrepo.NewAttemptRepo(store), memrepo.NewCatalogRepo(store), memrepo.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("open postgres")
	}
	if err := gormrepo.ApplyMigrations(ctx, db, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	players := gormrepo.NewPlayerRepo(db)
	seedDemoPlayer(ctx, players)

	var timerRepo ports.TimerRepository = gormrepo.NewTimerRepo(db)
	if cfg.Storage.TimerBackend == "redis" {
		rdb, err := redisrepo.New(redisrepo.Config{
			URL:          cfg.Redis.URL,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("connect redis")
		}
		timerRepo = rdb
	}

	return players, timerRepo, gormrepo.NewAttemptRepo(db), gormrepo.NewCatalogRepo(db), gormrepo.NewTxManager(db)
}

func seedDemoPlayer(ctx context.Context, players ports.PlayerRepository) {
	_, err := players.GetByID(ctx, 1)
	if err == nil {
		return
	}
	if !errors.Is(err, ports.ErrNotFound) {
		log.Fatal().Err(err).Msg("load demo player")
	}
	p := game.NewPlayer(1, "demo", 1)
	if saveErr := players.SaveWithVersion(ctx, p, 0); saveErr != nil {
		log.Fatal().Err(saveErr).Msg("seed demo player")
	}
}

// seedMemoryCatalog loads a small playable catalog so the memory backend
// works out of the box without SQL seed files.
func seedMemoryCatalog(store *memrepo.Store) {
	store.SeedRanks([]game.Rank{
		{ID: 1, Name: "Street Thug", RequiredExp: 0, CashReward: 0, BulletReward: 0, MaxHealth: 100},
		{ID: 2, Name: "Soldier", RequiredExp: 2500, CashReward: 5000, BulletReward: 100, MaxHealth: 120},
		{ID: 3, Name: "Capo", RequiredExp: 25000, CashReward: 25000, BulletReward: 500, MaxHealth: 150},
	})
	store.SeedDefinition(game.ActionDefinition{
		Kind: game.KindCrime, ID: 1, Name: "Pickpocket",
		RequiredLevel: 1, EnergyCost: 5, CooldownSeconds: 60,
		SuccessRate: 80, MinCash: 50, MaxCash: 200, ExperienceGain: 25,
	})
	store.SeedDefinition(game.ActionDefinition{
		Kind: game.KindTheft, ID: 1, Name: "Bicycle",
		RequiredLevel: 1, CooldownSeconds: 120,
		SuccessRate: 70, MinCash: 100, MaxCash: 400, ExperienceGain: 40, MaxBulletBonus: 5,
	})
	store.SeedDefinition(game.ActionDefinition{
		Kind: game.KindGym, ID: 1, Name: "Workout",
		RequiredLevel: 1, EnergyCost: 10, CooldownSeconds: 300,
		SuccessRate: 100, ExperienceGain: 30, RespectGain: 5,
	})
	store.SeedDefinition(game.ActionDefinition{
		Kind: game.KindHospital, ID: 1, Name: "Patch Up",
		RequiredLevel: 1, CashCost: 500, CooldownSeconds: 600,
		SuccessRate: 100, HealthGain: 50,
	})
	store.SeedDefinition(game.ActionDefinition{
		Kind: game.KindTravel, ID: 1, Name: "Chicago",
		RequiredLevel: 1, CashCost: 1000, CooldownSeconds: 1800,
		SuccessRate: 100, DestinationID: 2,
	})
	store.SeedDefinition(game.ActionDefinition{
		Kind: game.KindJailbreak, ID: 1, Name: "Bribe a Guard",
		RequiredLevel: 1, CashCost: 250, CooldownSeconds: 60,
		SuccessRate: 40,
	})
}
