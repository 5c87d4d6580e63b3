// Command headless runs a session without a window, optionally driven by a
// scripted player, and logs the economy as it grows.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/combiner/clicker/internal/config"
	"github.com/combiner/clicker/internal/core/event"
	"github.com/combiner/clicker/internal/data"
	"github.com/combiner/clicker/internal/game"
	"github.com/combiner/clicker/internal/logging"
	"github.com/combiner/clicker/internal/scripting"
	"github.com/combiner/clicker/internal/system"
	"github.com/combiner/clicker/internal/world"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("headless", flag.ExitOnError)
	duration := fs.Duration("duration", 0, "stop after this much simulated time (0 = until interrupted)")
	autoplay := fs.Bool("autoplay", true, "drive the pointer and build tool with the scripted player")
	report := fs.Duration("report", 5*time.Second, "interval between progress logs")
	fast := fs.Bool("fast", false, "tick as fast as possible instead of in real time")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	catalog, err := data.DefaultMachineCatalog()
	if cfg.Data.CatalogPath != "" {
		catalog, err = data.LoadMachineCatalog(cfg.Data.CatalogPath)
	}
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	lua, err := scripting.NewEngine(cfg.Data.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer lua.Close()

	g := game.New(game.Options{
		Config:  cfg,
		Catalog: catalog,
		Economy: lua.GetEconomy(),
		Log:     log,
	})

	var st stats
	game.Subscribe(g, func(e event.CoinCollected) { st.collected[e.Source]++ })
	game.Subscribe(g, func(event.CoinSpawned) { st.spawned++ })
	game.Subscribe(g, func(e event.PlaceResult) {
		if e.Outcome == world.Placed {
			log.Info("machine placed", zap.Stringer("kind", e.Kind), zap.Stringer("tile", e.Tile))
		}
	})

	var bot *autoplayer
	if *autoplay {
		bot = newAutoplayer(g)
		g.SetSource(bot)
	} else {
		g.SetSource(system.IdleSource{})
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	step := cfg.Simulation.TickRate
	ticker := time.NewTicker(step)
	defer ticker.Stop()
	log.Info("simulation started", zap.Duration("tick", step), zap.Bool("autoplay", *autoplay))

	var sinceReport time.Duration
	for {
		if *fast {
			select {
			case sig := <-shutdownCh:
				return stop(log, g, &st, sig.String())
			default:
			}
		} else {
			select {
			case <-ticker.C:
			case sig := <-shutdownCh:
				return stop(log, g, &st, sig.String())
			}
		}

		if bot != nil {
			bot.plan()
		}
		g.Tick(step)

		sinceReport += step
		if sinceReport >= *report {
			sinceReport = 0
			st.log(log, g)
		}
		if *duration > 0 && g.Elapsed() >= *duration {
			return stop(log, g, &st, "duration reached")
		}
	}
}

func stop(log *zap.Logger, g *game.Game, st *stats, reason string) error {
	st.log(log, g)
	log.Info("simulation stopped", zap.String("reason", reason))
	return nil
}

type stats struct {
	spawned   int
	collected [3]int // by world.PayoutSource
}

func (s *stats) log(log *zap.Logger, g *game.Game) {
	tiles, entries := g.IndexStats()
	log.Info("progress",
		zap.Duration("elapsed", g.Elapsed()),
		zap.Stringer("balance", g.Balance()),
		zap.Int("machines", len(g.Machines())),
		zap.Int("coins", len(g.Coins())),
		zap.Int("indexed_tiles", tiles),
		zap.Int("indexed_entries", entries),
		zap.Int("spawned", s.spawned),
		zap.Int("collected_by_machine", s.collected[world.PayoutCollector]),
		zap.Int("collected_by_hover", s.collected[world.PayoutHover]),
	)
}
