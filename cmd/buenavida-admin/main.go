package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/roger120981/buenavida-admin/internal/cache"
	"github.com/roger120981/buenavida-admin/internal/config"
	"github.com/roger120981/buenavida-admin/internal/gateway"
	"github.com/roger120981/buenavida-admin/internal/logger"
	"github.com/roger120981/buenavida-admin/internal/store"
)

const usage = `buenavida-admin - home-care program record administration

Usage:
  buenavida-admin <command> [flags]

Commands:
  list       List participants using the saved filters and pagination
  get        Show one participant by id
  create     Create a participant from a JSON file
  update     Update a participant from a JSON file
  delete     Deactivate a participant
  assign     Assign a caregiver to a participant
  unassign   Remove a caregiver assignment
  export     Export participants to an .xlsx file
  filters    Show or change the saved list filters

  caregivers     List caregivers, or add one (caregivers add -name ...)
  case-managers  List case managers, or add one (case-managers add -name -agency ...)
  agencies       List agencies

Environment:
  API_BASE_URL, API_TIMEOUT_SECONDS, REDIS_ENABLED, REDIS_ADDR,
  REDIS_PASSWORD, CACHE_TTL_SECONDS, LOG_LEVEL, LOG_FORMAT
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "buenavida-admin")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()
	kv := newKV(ctx, cfg, log)

	gw := gateway.New(
		cfg.API.BaseURL,
		time.Duration(cfg.API.TimeoutSeconds)*time.Second,
		log,
	)
	queries := cache.New(gw, kv, time.Duration(cfg.Cache.TTLSeconds)*time.Second, log)
	filters := store.NewFilterStore(ctx, kv, log)

	app := &app{queries: queries, filters: filters, logger: log}

	var runErr error
	switch os.Args[1] {
	case "list":
		runErr = app.list(ctx, os.Args[2:])
	case "get":
		runErr = app.get(ctx, os.Args[2:])
	case "create":
		runErr = app.create(ctx, os.Args[2:])
	case "update":
		runErr = app.update(ctx, os.Args[2:])
	case "delete":
		runErr = app.delete(ctx, os.Args[2:])
	case "assign":
		runErr = app.assign(ctx, os.Args[2:])
	case "unassign":
		runErr = app.unassign(ctx, os.Args[2:])
	case "export":
		runErr = app.export(ctx, os.Args[2:])
	case "filters":
		runErr = app.filtersCmd(ctx, os.Args[2:])
	case "caregivers":
		runErr = app.caregivers(ctx, os.Args[2:])
	case "case-managers":
		runErr = app.caseManagers(ctx, os.Args[2:])
	case "agencies":
		runErr = app.agencies(ctx, os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
}

// newKV connects to redis when enabled, falling back to the in-memory store
// so the CLI still works without one (preferences then last only for the
// process).
func newKV(ctx context.Context, cfg *config.Config, log *zap.Logger) store.KV {
	if !cfg.RedisEnabled {
		return store.NewMemoryKV()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, falling back to in-memory store", zap.Error(err))
		return store.NewMemoryKV()
	}
	return store.NewRedisKV(client)
}
