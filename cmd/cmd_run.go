package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common"
	"github.com/gaze-network/dutch-auction/common/errs"
	"github.com/gaze-network/dutch-auction/internal/config"
	"github.com/gaze-network/dutch-auction/modules/auction"
	"github.com/gaze-network/dutch-auction/pkg/automaxprocs"
	"github.com/gaze-network/dutch-auction/pkg/btcclient"
	"github.com/gaze-network/dutch-auction/pkg/errorhandler"
	"github.com/gaze-network/dutch-auction/pkg/logger"
	"github.com/gaze-network/dutch-auction/pkg/logger/slogx"
	"github.com/gaze-network/dutch-auction/pkg/middleware/requestlogger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

var auctionModule = common.ModuleAuction.String()

// Register Modules
var Modules = do.Package(
	do.LazyNamed(auctionModule, auction.New),
)

func NewRunCommand() *cobra.Command {
	// Create command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start dutch-auction service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := automaxprocs.Init(); err != nil {
				logger.Error("Failed to set GOMAXPROCS", slogx.Error(err))
			}
			return runHandler(cmd, args)
		},
	}

	// Add local flags
	flags := runCmd.Flags()
	flags.Bool("api-only", false, "Run only API server, without reconciliation and ZMQ listener")

	// Bind flags to configuration
	config.BindPFlag("api_only", flags.Lookup("api-only"))

	return runCmd
}

const (
	shutdownTimeout = 60 * time.Second
)

func runHandler(cmd *cobra.Command, _ []string) error {
	conf := config.Load()

	// Validate inputs and configurations
	{
		if !conf.Network.IsSupported() {
			return errors.Wrapf(errs.Unsupported, "%q network is not supported", conf.Network.String())
		}
	}

	// Initialize application process context
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	injector := do.New(Modules)
	do.ProvideValue(injector, conf)
	do.ProvideValue(injector, ctx)

	// Initialize Bitcoin RPC client
	do.Provide(injector, func(i do.Injector) (*btcclient.Client, error) {
		conf := do.MustInvoke[config.Config](i)

		client, err := btcclient.New(btcclient.Config{
			ConnConfig: rpcclient.ConnConfig{
				Host:       conf.BitcoinNode.Host,
				User:       conf.BitcoinNode.User,
				Pass:       conf.BitcoinNode.Pass,
				DisableTLS: conf.BitcoinNode.DisableTLS,
			},
			Network:   conf.Network,
			BatchSize: conf.Auction.Monitor.BatchSize,
		})
		if err != nil {
			return nil, errors.Wrap(err, "invalid Bitcoin node configuration")
		}

		// Check Bitcoin RPC connection. An unreachable node is reported by the health endpoint instead of failing startup.
		{
			start := time.Now()
			logger.InfoContext(ctx, "Connecting to Bitcoin Core RPC Server...", slogx.String("host", conf.BitcoinNode.Host))
			height, err := client.CurrentHeight(ctx)
			if err != nil {
				logger.WarnContext(ctx, "Can't reach Bitcoin Core RPC Server, continuing", slogx.String("host", conf.BitcoinNode.Host), slogx.Error(err))
			} else {
				logger.InfoContext(ctx, "Connected to Bitcoin Core RPC Server", slog.Duration("latency", time.Since(start)), slog.Int64("block_height", height))
			}
		}

		return client, nil
	})

	// Initialize HTTP server
	do.Provide(injector, func(i do.Injector) (*fiber.App, error) {
		app := fiber.New(fiber.Config{
			AppName:      "Dutch Auction",
			ErrorHandler: errorhandler.NewHTTPErrorHandler(),
		})
		app.
			Use(favicon.New()).
			Use(cors.New()).
			Use(requestid.New()).
			Use(requestlogger.New(conf.HTTPServer.Logger)).
			Use(fiberrecover.New(fiberrecover.Config{
				EnableStackTrace: true,
				StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
					buf := make([]byte, 1024) // bufLen = 1024
					buf = buf[:runtime.Stack(buf, false)]
					logger.ErrorContext(c.UserContext(), "Something went wrong, panic in http handler", errors.Newf("panic: %v", e), slog.String("stacktrace", string(buf)))
				},
			})).
			Use(compress.New(compress.Config{
				Level: compress.LevelDefault,
			}))

		// Liveness probe
		app.Get("/", func(c *fiber.Ctx) error {
			return errors.WithStack(c.SendStatus(http.StatusOK))
		})

		if conf.Metrics.Enabled {
			app.Get(conf.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
		}

		return app, nil
	})

	// Initialize worker context to separate worker's lifecycle from main process
	ctxWorker, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	// Add logger context
	ctxWorker = logger.WithContext(ctxWorker, slogx.Stringer("network", conf.Network))

	// Run module
	{
		ctx := logger.WithContext(ctxWorker, slogx.String("module", auctionModule))

		module, err := do.InvokeNamed[*auction.Module](injector, auctionModule)
		if err != nil {
			return errors.Wrapf(err, "can't init module %q", auctionModule)
		}

		if !conf.APIOnly {
			go func() {
				// stop main process if module stopped
				defer stop()

				logger.InfoContext(ctx, "Starting auction reconciliation")
				if err := module.Run(ctx); err != nil {
					logger.PanicContext(ctx, "Something went wrong, error during running auction module", slogx.Error(err))
				}
			}()
		}
	}

	// Run API server
	httpServer := do.MustInvoke[*fiber.App](injector)
	go func() {
		// stop main process if API stopped
		defer stop()

		logger.InfoContext(ctx, "Started HTTP server", slog.Int("port", conf.HTTPServer.Port))
		if err := httpServer.Listen(fmt.Sprintf(":%d", conf.HTTPServer.Port)); err != nil {
			logger.PanicContext(ctx, "Something went wrong, error during running HTTP server", slogx.Error(err))
		}
	}()

	// Stop application if worker context is done
	go func() {
		<-ctxWorker.Done()
		defer stop()

		logger.InfoContext(ctx, "Auction worker is stopped. Stopping application...")
	}()

	logger.InfoContext(ctxWorker, "Dutch auction service started")

	// Wait for interrupt signal to gracefully stop the server
	<-ctx.Done()

	// Stop background passes before the shared services go away
	stopWorker()

	// Force shutdown if timeout exceeded or got signal again
	go func() {
		defer os.Exit(1)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		select {
		case <-ctx.Done():
			logger.FatalContext(ctx, "Received exit signal again. Force shutdown...")
		case <-time.After(shutdownTimeout + 15*time.Second):
			logger.FatalContext(ctx, "Shutdown timeout exceeded. Force shutdown...")
		}
	}()

	ctxShutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if report := injector.ShutdownWithContext(ctxShutdown); report != nil && !report.Succeed {
		logger.PanicContext(ctx, "Failed while gracefully shutting down", slogx.Error(report))
	}

	return nil
}
