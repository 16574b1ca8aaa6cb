// Command discover scores every ordered column pair of a tabular dataset and
// prints the result as JSON or as a markdown report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/battyone/beyond-correlation/adapters/excel"
	"github.com/battyone/beyond-correlation/adapters/postgres"
	"github.com/battyone/beyond-correlation/adapters/rforest"
	"github.com/battyone/beyond-correlation/app"
	"github.com/battyone/beyond-correlation/domain/relate"
	"github.com/battyone/beyond-correlation/internal"
	"github.com/battyone/beyond-correlation/internal/config"
	"github.com/battyone/beyond-correlation/internal/profile"
	"github.com/battyone/beyond-correlation/ports"
)

func main() {
	var (
		input       = flag.String("input", "", "path to a .csv or .xlsx dataset (required)")
		method      = flag.String("method", "", "scoring method: pearson, spearman, kendall or rf")
		classifiers = flag.String("classifiers", "", "comma-separated columns scored with a classifier when used as target")
		seedStr     = flag.String("seed", "", "seed for reproducible rf scoring")
		naInfo      = flag.Bool("na-info", false, "include per-pair missing-data diagnostics")
		workers     = flag.Int("workers", 0, "number of concurrent pair scorers")
		withProfile = flag.Bool("profile", false, "include per-column descriptive statistics in the JSON output")
		report      = flag.Bool("report", false, "print a markdown report instead of JSON")
		store       = flag.Bool("store", false, "persist the run to the configured database")
	)
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if *method == "" {
		*method = cfg.DefaultMethod
	}
	if *workers == 0 {
		*workers = cfg.DefaultWorkers
	}

	var seed *int64
	if *seedStr != "" {
		v, err := strconv.ParseInt(*seedStr, 10, 64)
		if err != nil {
			log.Fatalf("invalid -seed %q", *seedStr)
		}
		seed = &v
	}

	var overrides []string
	for _, name := range strings.Split(*classifiers, ",") {
		if name = strings.TrimSpace(name); name != "" {
			overrides = append(overrides, name)
		}
	}

	frame, err := excel.NewDataReader(*input).ReadFrame()
	if err != nil {
		log.Fatalf("read dataset: %v", err)
	}

	var repo ports.ResultRepository
	if *store {
		if !cfg.HasDatabase() {
			log.Fatal("-store requires DATABASE_URL to be set")
		}
		db, err := postgres.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(db); err != nil {
			log.Fatalf("database: %v", err)
		}
		repo = postgres.NewRunRepository(db)
	}

	service := app.NewDiscoveryService(rforest.NewFactory(), repo, internal.DefaultLogger)

	run, err := service.Discover(context.Background(), app.DiscoverRequest{
		Source:              *input,
		Frame:               frame,
		Method:              *method,
		ClassifierOverrides: overrides,
		Seed:                seed,
		IncludeNAInfo:       *naInfo,
		Workers:             *workers,
		Persist:             *store,
	})
	if err != nil {
		log.Fatalf("discover: %v", err)
	}

	if *report {
		fmt.Print(service.Report(run, frame))
		return
	}

	var out interface{} = run
	if *withProfile {
		out = struct {
			Run      *relate.Run             `json:"run"`
			Profiles []profile.ColumnProfile `json:"profiles"`
		}{Run: run, Profiles: profile.Frame(frame)}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encode result: %v", err)
	}
}
