// Command dely-sync runs the projection worker: it wires
// configuration, logging, the EventStoreDB subscription client and the
// Meilisearch client, then drives the all-streams subscriber loop
// until the process is terminated.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kuraya-dely/dely/internal/config"
	"github.com/kuraya-dely/dely/internal/domain/extraservice"
	"github.com/kuraya-dely/dely/internal/domain/media"
	"github.com/kuraya-dely/dely/internal/domain/prostitute"
	"github.com/kuraya-dely/dely/internal/domain/reservation"
	"github.com/kuraya-dely/dely/internal/domain/schedule"
	"github.com/kuraya-dely/dely/internal/domain/service"
	"github.com/kuraya-dely/dely/internal/eventstore"
	"github.com/kuraya-dely/dely/internal/kurrentdb"
	"github.com/kuraya-dely/dely/internal/logging"
	"github.com/kuraya-dely/dely/internal/projection"
	"github.com/kuraya-dely/dely/internal/searchindex"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "dely-sync: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logging.New("dely-sync", cfg.Logger.Level)

	esClient, err := kurrentdb.NewClient(cfg.EventStore.AsKurrentDB())
	if err != nil {
		return fmt.Errorf("connecting to event store: %w", err)
	}
	defer esClient.Close()

	siClient := searchindex.New(cfg.Meilisearch.AsSearchIndex())

	registry := eventstore.NewRegistry(
		extraservice.Codec{},
		media.Codec{},
		prostitute.Codec{},
		schedule.Codec{},
		reservation.Codec{},
		service.Codec{},
	)

	indexes := projection.NewIndexes(siClient)
	worker := projection.NewWorker(esClient, registry, indexes, log)

	log.Info("dely-sync: starting projection worker")
	if err := worker.Run(ctx); err != nil {
		if ctx.Err() != nil {
			log.Info("dely-sync: shutting down")
			return nil
		}
		return fmt.Errorf("running projection worker: %w", err)
	}
	return nil
}
