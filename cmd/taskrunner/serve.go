package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/taskrunner/api/v1"
	"github.com/kubev2v/taskrunner/internal/config"
	"github.com/kubev2v/taskrunner/internal/handlers"
	"github.com/kubev2v/taskrunner/internal/server"
	"github.com/kubev2v/taskrunner/internal/services"
	"github.com/kubev2v/taskrunner/internal/store"
	"github.com/kubev2v/taskrunner/internal/util"
	"github.com/kubev2v/taskrunner/pkg/target"
)

const pruneInterval = time.Hour

type serveFlags struct {
	serverMode      *cobraflags.StringFlag
	httpPort        *cobraflags.IntFlag
	shutdownTimeout *cobraflags.StringFlag
	runner          *runnerFlags
	targetURL       *cobraflags.StringFlag
	targetJWTFile   *cobraflags.StringFlag
	targetMaxTries  *cobraflags.IntFlag
	targetRetry     *cobraflags.StringFlag
	targetTimeout   *cobraflags.StringFlag
	authEnabled     *cobraflags.BoolFlag
	authSecretFile  *cobraflags.StringFlag
	store           *storeFlags
}

func newServeFlags(cfg *config.Configuration) *serveFlags {
	return &serveFlags{
		serverMode: &cobraflags.StringFlag{
			Name:  "server-mode",
			Value: cfg.Server.ServerMode,
			Usage: "Server mode: dev or prod",
		},
		httpPort: &cobraflags.IntFlag{
			Name:  "http-port",
			Value: cfg.Server.HTTPPort,
			Usage: "HTTP listen port",
		},
		shutdownTimeout: durationFlag("shutdown-timeout", cfg.Server.ShutdownTimeout, "Grace period for in-flight requests on shutdown"),
		runner:          newRunnerFlags(cfg.Runner),
		targetURL: &cobraflags.StringFlag{
			Name:  "target-url",
			Value: cfg.Target.URL,
			Usage: "Endpoint receiving dispatched items",
		},
		targetJWTFile: &cobraflags.StringFlag{
			Name:  "target-jwt-file",
			Value: cfg.Target.JWTFilePath,
			Usage: "File holding a bearer token sent to the target",
		},
		targetMaxTries: &cobraflags.IntFlag{
			Name:         "target-max-tries",
			Value:        int(cfg.Target.MaxTries),
			Usage:        "Attempts per target request",
			ValidateFunc: positive("target-max-tries"),
		},
		targetRetry:   durationFlag("target-retry-interval", cfg.Target.RetryInterval, "First backoff interval between attempts"),
		targetTimeout: durationFlag("target-timeout", cfg.Target.Timeout, "Timeout of a single target request"),
		authEnabled: &cobraflags.BoolFlag{
			Name:  "auth-enabled",
			Value: cfg.Auth.Enabled,
			Usage: "Require an HS256 bearer token on the API",
		},
		authSecretFile: &cobraflags.StringFlag{
			Name:  "auth-secret-file",
			Value: cfg.Auth.SecretFilePath,
			Usage: "File holding the HMAC secret for API tokens",
		},
		store: newStoreFlags(cfg.Store),
	}
}

func (f *serveFlags) register(cmd *cobra.Command) {
	cobraflags.Register(cmd, f.serverMode, f.httpPort, f.shutdownTimeout)
	f.runner.register(cmd)
	cobraflags.Register(cmd, f.targetURL, f.targetJWTFile, f.targetMaxTries, f.targetRetry, f.targetTimeout)
	cobraflags.Register(cmd, f.authEnabled, f.authSecretFile)
	f.store.register(cmd)
}

// apply copies the resolved flag values (command line, environment, config
// file or default) into cfg.
func (f *serveFlags) apply(cfg *config.Configuration) error {
	shutdownTimeout, err := getDuration(f.shutdownTimeout)
	if err != nil {
		return err
	}
	runner, err := f.runner.runner()
	if err != nil {
		return err
	}
	maxTries, err := f.targetMaxTries.GetIntE()
	if err != nil {
		return err
	}
	retryInterval, err := getDuration(f.targetRetry)
	if err != nil {
		return err
	}
	timeout, err := getDuration(f.targetTimeout)
	if err != nil {
		return err
	}
	st, err := f.store.store()
	if err != nil {
		return err
	}

	cfg.WithOptions(
		config.WithServer(*config.NewServerWithOptions(
			config.WithServerMode(f.serverMode.GetString()),
			config.WithHTTPPort(f.httpPort.GetInt()),
			config.WithShutdownTimeout(shutdownTimeout),
		)),
		config.WithRunner(*runner),
		config.WithTarget(*config.NewTargetWithOptions(
			config.WithURL(f.targetURL.GetString()),
			config.WithJWTFilePath(f.targetJWTFile.GetString()),
			config.WithMaxTries(uint(maxTries)),
			config.WithRetryInterval(retryInterval),
			config.WithTimeout(timeout),
		)),
		config.WithAuth(*config.NewAuthenticationWithOptions(
			config.WithEnabled(f.authEnabled.GetBool()),
			config.WithSecretFilePath(f.authSecretFile.GetString()),
		)),
		config.WithStore(*st),
	)
	return nil
}

func NewServeCommand(cfg *config.Configuration) *cobra.Command {
	flags := newServeFlags(cfg)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dispatch API",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if err := flags.apply(cfg); err != nil {
				return err
			}
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
	flags.register(cmd)

	return cmd
}

func serve(ctx context.Context, cfg *config.Configuration) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := zap.S().Named("serve")

	db, err := store.NewDB(cfg.Store.DBPath())
	if err != nil {
		return err
	}
	st := store.NewStore(db)
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	token, err := util.ReadTrimmedFile(cfg.Target.JWTFilePath)
	if err != nil {
		return fmt.Errorf("failed to read target token: %w", err)
	}
	client, err := target.NewClient(cfg.Target.URL,
		target.WithToken(token),
		target.WithRetry(cfg.Target.MaxTries, cfg.Target.RetryInterval),
		target.WithHTTPClient(&http.Client{Timeout: cfg.Target.Timeout}),
	)
	if err != nil {
		return err
	}

	dispatcher, err := services.NewDispatcher(context.WithoutCancel(ctx), client, st.Dispatch(), services.DispatcherConfig{
		QueueConcurrency: cfg.Runner.QueueConcurrency,
		CargoBatchSize:   cfg.Runner.CargoBatchSize,
		CargoConcurrency: cfg.Runner.CargoConcurrency,
	})
	if err != nil {
		return err
	}

	h := handlers.New(dispatcher, services.NewDispatchService(st))
	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
		v1.RegisterHandlers(router, h)
	})
	if err != nil {
		dispatcher.Close()
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start(ctx)
	}()

	prune := time.NewTicker(pruneInterval)
	defer prune.Stop()
	pruneJournal(ctx, st, cfg.Store.Retention)

	log.Infow("taskrunner started", "config", cfg.DebugMap())

	for {
		select {
		case <-ctx.Done():
			log.Infow("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				log.Warnw("server shutdown", "error", err)
			}
			dispatcher.Close()
			return nil
		case <-dispatcher.Done():
			// A runner defect leaves admitted work in an unknown state.
			log.Fatalw("runner stopped on a defect", "error", dispatcher.Err())
		case err := <-serverErr:
			if errors.Is(err, http.ErrServerClosed) {
				continue
			}
			dispatcher.Close()
			return fmt.Errorf("http server failed: %w", err)
		case <-prune.C:
			pruneJournal(ctx, st, cfg.Store.Retention)
		}
	}
}

func pruneJournal(ctx context.Context, st *store.Store, retention time.Duration) {
	if retention <= 0 {
		return
	}
	removed, err := st.Dispatch().DeleteBefore(ctx, time.Now().Add(-retention))
	if err != nil {
		zap.S().Named("serve").Warnw("failed to prune journal", "error", err)
		return
	}
	if removed > 0 {
		zap.S().Named("serve").Infow("journal pruned", "removed", removed)
	}
}
