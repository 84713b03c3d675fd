// Command walker suggests one random closed walk from home and writes it as
// a Google Maps link plus the full coordinate list.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/justzen0/random-walker/internal/adapters/render"
	"github.com/justzen0/random-walker/internal/app"
	"github.com/justzen0/random-walker/internal/config"
	"github.com/justzen0/random-walker/internal/domain"
	"github.com/justzen0/random-walker/internal/platform/logging"
	"github.com/justzen0/random-walker/internal/services"
	"github.com/spf13/pflag"
)

const (
	exitOK = iota
	exitError
	exitNoWalk
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := pflag.NewFlagSet("walker", pflag.ContinueOnError)
	fs.Float64("lat", 0, "start latitude (default from config)")
	fs.Float64("lon", 0, "start longitude (default from config)")
	fs.Float64("distance", 4, "target walk distance in km")
	fs.Float64("tolerance", 0.15, "accepted relative deviation from the distance, in (0, 1)")
	fs.Int("max-attempts", services.DefaultMaxAttempts, "loop attempts before giving up")
	seed := fs.Uint64("seed", 0, "random seed, for reproducible walks")
	fs.String("output", "my_random_walk.txt", "text file for the Google Maps link and coordinates")
	fs.String("geojson", "", "optional GeoJSON export path")
	fs.String("area", "", "area whose walking network is downloaded once, e.g. \"Kolkata, West Bengal, India\"")
	fs.String("log-level", "info", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		slog.Error("setup failed", "err", err)
		return exitError
	}
	defer a.Close()

	req := services.WalkRequest{}
	if fs.Changed("seed") {
		req.Seed = seed
	}

	res, err := a.Walks.Suggest(ctx, req)
	switch {
	case errors.Is(err, domain.ErrStartTooFar):
		fmt.Fprintln(os.Stderr, "Your start point is outside the downloaded map area. Pick a larger --area or a closer start.")
		return exitError
	case err != nil:
		slog.Error("suggest walk", "err", err)
		return exitError
	}

	if !res.Found() {
		fmt.Printf("Could not find a suitable path after %d attempts (seed %d). Try increasing the distance or tolerance.\n",
			res.Search.Attempts, res.Seed)
		return exitNoWalk
	}

	walk := res.Walk
	if err := render.SaveText(cfg.Output.Text, walk); err != nil {
		slog.Error("save walk", "err", err)
		return exitError
	}
	if cfg.Output.GeoJSON != "" {
		if err := render.SaveGeoJSON(cfg.Output.GeoJSON, walk); err != nil {
			slog.Error("save geojson", "err", err)
			return exitError
		}
	}

	fmt.Printf("Found a %.2f km walk after %d attempts (seed %d). Open %s for your Google Maps link.\n",
		walk.LengthKm(), walk.Attempts, res.Seed, cfg.Output.Text)
	return exitOK
}
