package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"horse.fit/lucid/internal/cache"
	"horse.fit/lucid/internal/cli"
	"horse.fit/lucid/internal/db"
	"horse.fit/lucid/internal/translation"
)

func runHealth(args []string) int {
	fs := flag.NewFlagSet("health", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 10*time.Second, "Command timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, logger, err := bootstrap(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	status := map[string]any{
		"providers": translation.NewRegistryFromConfig(cfg).ProviderNames(),
		"simplify":  strings.TrimSpace(cfg.OpenAIAPIKey) != "",
	}
	healthy := true

	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Error().Err(err).Msg("database health check failed")
			status["database"] = fmt.Sprintf("error: %v", err)
			healthy = false
		} else {
			status["database"] = "ok"
			_ = pool.Close()
		}
	} else {
		status["database"] = "not configured"
	}

	if url := strings.TrimSpace(cfg.RedisURL); url != "" {
		redisCache, err := cache.NewRedis(url, 0)
		if err != nil {
			logger.Error().Err(err).Msg("redis health check failed")
			status["redis"] = fmt.Sprintf("error: %v", err)
			healthy = false
		} else {
			status["redis"] = "ok"
			_ = redisCache.Close()
		}
	} else {
		status["redis"] = "not configured"
	}

	if err := printJSON(status); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		return 1
	}
	if !healthy {
		return 1
	}
	return 0
}
