package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/and161185/gas2door/internal/auth"
	"github.com/and161185/gas2door/internal/backend"
	"github.com/and161185/gas2door/internal/config"
	"github.com/and161185/gas2door/internal/deps"
	"github.com/and161185/gas2door/internal/server"
	"github.com/and161185/gas2door/internal/session"
	"github.com/and161185/gas2door/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := config.NewConfig()
	logger := config.Logger

	codec, err := session.NewCodec(config.Key)
	if err != nil {
		logger.Fatal(err)
	}

	var store server.Storage
	var orphans storage.OrphanStore
	if config.DatabaseURI != "" {
		pg, err := storage.NewPostgreStorage(ctx, config.DatabaseURI, codec)
		if err != nil {
			logger.Fatal(err)
		}
		defer pg.Close()
		store, orphans = pg, pg
	} else {
		logger.Warn("no database configured, sessions and orphaned addresses are kept in memory")
		mem := storage.NewMemoryStorage()
		store, orphans = mem, mem
	}

	if config.RedisAddr != "" {
		rs, err := session.NewRedisStore(ctx, config.RedisAddr, config.RedisPassword, 0, codec, auth.VisitorTTL)
		if err != nil {
			logger.Fatal(err)
		}
		defer rs.Close()
		store = storage.Layered{Store: rs, OrphanStore: orphans}
	}

	client := backend.NewClient(config.BackendAddress, config.BackendTimeout, config.Region, logger)

	srv := server.NewServer(client, store, config, deps.NewDependencies(config.Key, logger))
	if err := srv.Run(ctx); err != nil {
		logger.Fatal(err)
	}
}
