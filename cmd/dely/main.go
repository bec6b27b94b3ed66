// Command dely is the service's trivial HTTP front end: it wires
// configuration, logging, id generation, the EventStoreDB client and
// the Meilisearch client, constructs the event-sourced repository for
// every aggregate, and serves health/readiness/metrics. It carries no
// business routes of its own — those are out of scope per this
// module's spec.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kuraya-dely/dely/internal/config"
	"github.com/kuraya-dely/dely/internal/domain/extraservice"
	"github.com/kuraya-dely/dely/internal/domain/media"
	"github.com/kuraya-dely/dely/internal/domain/prostitute"
	"github.com/kuraya-dely/dely/internal/domain/reservation"
	"github.com/kuraya-dely/dely/internal/domain/schedule"
	"github.com/kuraya-dely/dely/internal/domain/service"
	"github.com/kuraya-dely/dely/internal/eventstore"
	"github.com/kuraya-dely/dely/internal/httpapi"
	"github.com/kuraya-dely/dely/internal/idgen"
	"github.com/kuraya-dely/dely/internal/kurrentdb"
	"github.com/kuraya-dely/dely/internal/logging"
	"github.com/kuraya-dely/dely/internal/searchindex"
)

// App holds this binary's wired dependencies, mirroring the teacher's
// App-struct-in-main convention.
type App struct {
	Config       *config.Config
	Log          *logging.Logger
	IDGen        *idgen.Generator
	EventStore   *kurrentdb.Client
	SearchIndex  *searchindex.Client
	Repositories Repositories
}

// Repositories groups the event-sourced repository for every aggregate,
// the command surface the rest of this service builds on.
type Repositories struct {
	ExtraService *kurrentdb.Repository[*extraservice.ExtraService]
	Media        *kurrentdb.Repository[*media.Media]
	Prostitute   *kurrentdb.Repository[*prostitute.Prostitute]
	Schedule     *kurrentdb.Repository[*schedule.Schedule]
	Reservation  *kurrentdb.Repository[*reservation.Reservation]
	Service      *kurrentdb.Repository[*service.Service]
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "dely: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logging.New("dely", cfg.Logger.Level)

	gen, err := idgen.New(ctx, cfg.IDGen.DatacenterID, cfg.IDGen.WorkerID)
	if err != nil {
		return fmt.Errorf("starting id generator: %w", err)
	}

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

	app := &App{
		Config:      cfg,
		Log:         log,
		IDGen:       gen,
		EventStore:  esClient,
		SearchIndex: siClient,
		Repositories: Repositories{
			ExtraService: kurrentdb.NewRepository(esClient, registry, extraservice.New),
			Media:        kurrentdb.NewRepository(esClient, registry, media.New),
			Prostitute:   kurrentdb.NewRepository(esClient, registry, prostitute.New),
			Schedule:     kurrentdb.NewRepository(esClient, registry, schedule.New),
			Reservation:  kurrentdb.NewRepository(esClient, registry, reservation.New),
			Service:      kurrentdb.NewRepository(esClient, registry, service.New),
		},
	}

	router := httpapi.NewRouter(httpapi.Dependencies{
		EventStore:  app.EventStore,
		Meilisearch: app.SearchIndex,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("dely: listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errs:
		return fmt.Errorf("serving http: %w", err)
	}
}
