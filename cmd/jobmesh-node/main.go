package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-kit/log/level"
	"github.com/jessevdk/go-flags"

	"github.com/maxpoletaev/jobmesh/eventbus"
	"github.com/maxpoletaev/jobmesh/membership"
)

func main() {
	p := flags.NewParser(&opts, flags.Default)

	if _, err := p.Parse(); err != nil {
		if err.(*flags.Error).Type != flags.ErrHelp {
			fmt.Println("cli error:", err)
		}

		os.Exit(2)
	}

	appctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	wg := sync.WaitGroup{}
	logger, closeLogger := setupLogger()

	self, err := setupSelf()
	if err != nil {
		level.Error(logger).Log("msg", "invalid node configuration", "err", err)
		os.Exit(2)
	}

	logger.Log("msg", "starting node", "node", self)

	bus := eventbus.New(logger)
	manager := setupManager(self, bus, logger)

	// Components must be shut down in a particular order.
	shutdownOrder := []shutdownFunc{closeLogger}

	shutdownOrder = append([]shutdownFunc{setupKafkaBridge(bus, logger)}, shutdownOrder...)

	if self.Type == membership.NodeTypeCoordinator {
		closeFailover, err := setupFailover(appctx, bus, logger)
		if err != nil {
			level.Error(logger).Log("msg", "failed to open job queue", "err", err)
			os.Exit(1)
		}

		shutdownOrder = append([]shutdownFunc{closeFailover}, shutdownOrder...)
	}

	closeDiscovery, err := setupDiscovery(appctx, &wg, self, manager, logger)
	if err != nil {
		level.Error(logger).Log("msg", "failed to start discovery", "transport", opts.Discovery, "err", err)
		os.Exit(1)
	}

	shutdownOrder = append([]shutdownFunc{closeDiscovery}, shutdownOrder...)

	if opts.API.Enabled {
		setupAPIServer(appctx, &wg, manager, logger)
	}

	// Block until we receive a signal to shut down.
	<-appctx.Done()
	level.Info(logger).Log("msg", "received interrupt signal, shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	for _, f := range shutdownOrder {
		if err := f(shutdownCtx); err != nil {
			level.Error(logger).Log("msg", "failed to shutdown component", "err", err)
		}
	}

	// Wait for all components to finish background tasks.
	wg.Wait()
	bus.Wait()
}
