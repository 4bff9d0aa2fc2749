// Command queries runs the fixed IMDb query catalog once and prints each
// result to stdout.
//
//	queries [-config config.yaml] [SELECTOR]
//
// SELECTOR is a single digit 1-7 picking one query; omitted or 0 runs all
// seven in catalog order.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/imdb_search_go/internal/config"
	"github.com/imdb_search_go/internal/store"
)

const usage = "Usage: queries [-config path] [SELECTOR]  (SELECTOR: 1-7, omit or 0 for all)"

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, log.Default()))
}

func run(args []string, stdout io.Writer, logger *log.Logger) int {
	fs := flag.NewFlagSet("queries", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "config.yaml", "path to YAML config (optional)")
	if err := fs.Parse(args); err != nil {
		logger.Printf("%v\n%s", err, usage)
		return exitUsage
	}

	sel, err := parseArgs(fs.Args())
	if err != nil {
		logger.Printf("%v\n%s", err, usage)
		return exitUsage
	}

	if err := godotenv.Load(); err != nil {
		logger.Println("no .env file loaded, relying on process environment")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Printf("failed to load config: %v", err)
		return exitFailed
	}

	ctx := context.Background()
	db, err := store.Open(ctx, cfg.Database.ConnParams(), cfg.Database.PoolOptions())
	if err != nil {
		logger.Printf("failed to connect to mysql: %v", err)
		return exitFailed
	}
	defer db.Close()

	fmt.Fprintf(stdout, "Connection to %s at %s established!\n", cfg.Database.Name, cfg.Database.Host)

	engine := store.NewEngine(db, stdout, logger)
	results, err := engine.Run(ctx, sel, cfg.Catalog)
	if err != nil {
		logger.Printf("%v", err)
		return exitUsage
	}
	return exitCode(results)
}

// parseArgs validates the positional arguments before anything touches the
// store.
func parseArgs(args []string) (store.Selector, error) {
	switch len(args) {
	case 0:
		return store.SelectAll, nil
	case 1:
		return store.ParseSelector(args[0])
	default:
		return 0, errors.New("expected at most one SELECTOR argument")
	}
}

// exitCode reports exitFailed when any query failed.
func exitCode(results []store.Result) int {
	for _, res := range results {
		if res.Status() == store.StatusFailed {
			return exitFailed
		}
	}
	return exitOK
}
