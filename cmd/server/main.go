package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arnavsood/lumendb/internal/config"
	"github.com/arnavsood/lumendb/internal/keyspace"
	"github.com/arnavsood/lumendb/internal/logger"
	"github.com/arnavsood/lumendb/internal/server"
	"github.com/sourcegraph/conc"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// handleConnection drains one client's pipelined requests until it
// disconnects or a write fails.
func handleConnection(peer *server.Peer, engine *server.Engine, log *zap.Logger) {
	addr := peer.RemoteAddr().String()
	if log.Core().Enabled(zap.DebugLevel) {
		log.Debug("client connected", zap.String("addr", addr))
	}
	defer func() {
		peer.Close() //nolint:errcheck
		if log.Core().Enabled(zap.DebugLevel) {
			log.Debug("client disconnected", zap.String("addr", addr))
		}
	}()

	for {
		args, err := peer.ReadCommand()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Warn("read command failed", zap.Error(err))
			}
			return
		}
		if len(args) == 0 {
			continue
		}

		result := engine.Execute(args[0], args[1:])

		if err := peer.SendNoFlush(result); err != nil {
			log.Error("error writing response", zap.Error(err))
			return
		}
		if peer.InputBuffered() == 0 {
			if err := peer.Flush(); err != nil {
				return
			}
		}
	}
}

func main() {
	os.Exit(run())
}

// run carries the bulk of main so tests can eventually exercise startup
// without calling os.Exit directly.
func run() int {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <port>\n", os.Args[0])
	}
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		return 1
	}
	port := pflag.Arg(0)

	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	cfg.Server.Port = port // the positional argument always wins

	log, atomicLevel := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync() //nolint:errcheck

	config.WatchForChanges(".", func(updated *config.Config) {
		if lvl, err := zap.ParseAtomicLevel(updated.Log.Level); err == nil {
			atomicLevel.SetLevel(lvl.Level())
			log.Info("log level hot-reloaded", zap.String("level", updated.Log.Level))
		}
	})

	log.Info("lumendb starting", zap.String("port", cfg.Server.Port))

	ks := keyspace.New()
	engine := server.NewEngine(ks, cfg, log)

	address := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		log.Error("listener error", zap.Error(err))
		return 1
	}
	log.Info("listening", zap.String("address", address))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg conc.WaitGroup
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				if errors.Is(err, net.ErrClosed) {
					return
				}
				log.Error("accept error", zap.Error(err))
				continue
			}

			peer := server.NewPeer(conn)
			wg.Go(func() {
				handleConnection(peer, engine, log)
			})
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	var shutdownErr error
	if err := listener.Close(); err != nil {
		shutdownErr = multierr.Append(shutdownErr, err)
	}
	engine.Shutdown()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("all connections closed gracefully")
	case <-time.After(shutdownTimeout):
		log.Warn("shutdown timed out, forcing exit", zap.Duration("timeout", shutdownTimeout))
	}

	if shutdownErr != nil {
		log.Error("errors during shutdown", zap.Error(shutdownErr))
		return 1
	}
	log.Info("lumendb stopped")
	return 0
}
