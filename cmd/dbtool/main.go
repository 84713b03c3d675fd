package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/justzen0/random-walker/internal/adapters/repositories"
	"github.com/justzen0/random-walker/internal/app"
	"github.com/justzen0/random-walker/internal/config"
)

// dbtool prepares the walk history database and prints recent walks.
// It reads the same configuration as the server, so both use one database.
func main() {
	cfg, err := config.Load(nil)
	if err != nil {
		log.Fatal(err)
	}

	limit, err := strconv.Atoi(config.Get("LIST_LIMIT", "10"))
	if err != nil {
		log.Fatalf("LIST_LIMIT: %v", err)
	}

	if err := run(context.Background(), cfg.Database, limit, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.DatabaseConfig, limit int, out io.Writer) error {
	log.Printf("Initializing %s database schema...", cfg.Driver)
	conn, err := app.OpenDatabase(ctx, cfg)
	if err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	defer conn.Close()
	log.Println("Schema ready.")

	walks, err := repositories.NewSQLWalkRepository(conn, cfg.Driver).ListWalks(ctx, limit)
	if err != nil {
		return fmt.Errorf("list walks: %w", err)
	}
	for _, w := range walks {
		fmt.Fprintf(out, "#%d  %s  %.2f km (target %.1f km)  %s\n",
			w.ID, w.CreatedAt.Format("2006-01-02 15:04"), w.LengthKm(), w.TargetKm, w.MapsURL)
	}
	return nil
}
