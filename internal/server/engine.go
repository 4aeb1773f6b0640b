package server

import (
	"strings"
	"sync"
	"time"

	"github.com/arnavsood/lumendb/internal/config"
	"github.com/arnavsood/lumendb/internal/keyspace"
	"github.com/arnavsood/lumendb/internal/wire"
	"go.uber.org/zap"
)

// Engine coordinates command dispatch and the background active-expiration
// sweep. It owns no network state of its own — cmd/server wires one Engine
// per listener and hands each accepted connection's commands to Execute.
type Engine struct {
	commands map[string]Command
	keyspace *keyspace.Keyspace
	cfg      *config.Config
	stopGC   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

// NewEngine builds the command registry and, if cfg.GC.Enabled, starts the
// background expiration sweep goroutine.
func NewEngine(ks *keyspace.Keyspace, cfg *config.Config, logger *zap.Logger) *Engine {
	engine := &Engine{
		commands: make(map[string]Command),
		keyspace: ks,
		cfg:      cfg,
		stopGC:   make(chan struct{}),
		logger:   logger,
	}
	engine.registerCommands()

	if cfg.GC.Enabled {
		go engine.startGCLoop()
	}

	return engine
}

func (e *Engine) register(name string, cmd Command) {
	e.commands[strings.ToUpper(name)] = cmd
}

func (e *Engine) registerCommands() {
	e.register("PING", CommandFunc(ping))

	e.register("GET", CommandFunc(get))
	e.register("SET", CommandFunc(set))

	e.register("DEL", CommandFunc(del))
	e.register("EXISTS", CommandFunc(exists))
	e.register("EXPIRE", CommandFunc(expire))
	e.register("TTL", CommandFunc(ttl))
	e.register("DBSIZE", CommandFunc(dbsize))
	e.register("FLUSHDB", CommandFunc(flushdb))

	e.register("ZADD", CommandFunc(zadd))
	e.register("ZREM", CommandFunc(zrem))
	e.register("ZSCORE", CommandFunc(zscore))
	e.register("ZCARD", CommandFunc(zcard))
	e.register("ZRANK", CommandFunc(zrank))
	e.register("ZRANGE", CommandFunc(zrange))
	e.register("ZRANGEBYSCORE", CommandFunc(zrangebyscore))
}

// startGCLoop drives the bounded-sample active expiration sweep described in
// spec.md §4.7: every cfg.GC.Interval tick (capped at one second; a
// non-positive interval also falls back to one second), evict up to
// SamplesPerCheck already-expired keys.
func (e *Engine) startGCLoop() {
	interval := e.cfg.GC.Interval
	if interval <= 0 || interval > time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			evicted := e.keyspace.DeleteExpired(e.cfg.GC.SamplesPerCheck)
			if evicted > 0 {
				e.logger.Debug("gc swept expired keys", zap.Int("evicted", evicted))
			}
		case <-e.stopGC:
			e.logger.Info("gc loop stopped")
			return
		}
	}
}

// Execute resolves name (case-insensitively) against the command registry,
// validates arity, and dispatches. Unknown commands and arity violations are
// reported as wire errors rather than disconnecting the peer.
func (e *Engine) Execute(name string, args []string) wire.Value {
	upper := strings.ToUpper(name)

	if e.logger.Core().Enabled(zap.DebugLevel) {
		e.logger.Debug("executing command",
			zap.String("cmd", upper),
			zap.Int("args_count", len(args)),
		)
	}

	meta, ok := commandRegistry[upper]
	if !ok {
		return errUnknownCommand(name)
	}
	if len(args) < meta.min || (meta.max >= 0 && len(args) > meta.max) {
		return errWrongArity(upper)
	}

	cmd, ok := e.commands[upper]
	if !ok {
		return errUnknownCommand(name)
	}

	ctx := &Context{Args: args, Keyspace: e.keyspace}
	return cmd.Execute(ctx)
}

// Shutdown stops the background GC loop. Safe to call more than once.
func (e *Engine) Shutdown() {
	e.stopOnce.Do(func() {
		if e.cfg.GC.Enabled {
			close(e.stopGC)
		}
		e.logger.Info("engine shut down")
	})
}
