// Command tastematch prints similarity scores, closest matches and
// recommendations for one entity of a ratings matrix.
//
// Usage:
//
//	tastematch -entity Toby
//	tastematch -entity "Lisa Rose" -other "Gene Seymour" -method euclidean
//	tastematch -items -entity "Superman Returns" -n 3
//	tastematch -config tastematch.yaml -data ratings.json -entity alice
//
// Without -data (or data.path in the config) the built-in critics sample is used.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/botirk38/tastematch"
	"github.com/botirk38/tastematch/config"
	"github.com/botirk38/tastematch/dataset"
	"github.com/botirk38/tastematch/logging"
	"github.com/botirk38/tastematch/options"
	"github.com/botirk38/tastematch/types"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "tastematch:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("tastematch", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file (default $TASTEMATCH_CONFIG)")
	dataPath := fs.String("data", "", "JSON ratings file (default: built-in critics sample)")
	entity := fs.String("entity", "", "entity to query")
	other := fs.String("other", "", "second entity; prints the similarity of the pair")
	method := fs.String("method", "", "similarity method: pearson, euclidean, cosine, manhattan")
	n := fs.Int("n", 0, "number of matches (default engine.matches)")
	items := fs.Bool("items", false, "item-based mode: entities and items swap roles")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *method != "" {
		cfg.Engine.Method = *method
	}
	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(cfg.LoggerConfig())

	ratings, err := loadRatings(cfg.Data.Path)
	if err != nil {
		return err
	}
	logger.Debug().
		Str("path", cfg.Data.Path).
		Int("entities", len(ratings)).
		Msg("ratings loaded")

	opts := append(cfg.EngineOptions(), options.WithLogger(logger))
	base, err := tastematch.New(ratings, opts...)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer func() {
		if err := base.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close cache backend")
		}
	}()

	engine := base
	if *items {
		engine = base.Transposed()
	}

	if *entity == "" {
		return listEntities(out, engine)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return report(ctx, out, logger, engine, *entity, *other, *n)
}

func loadRatings(path string) (types.Ratings, error) {
	if path == "" {
		return dataset.Critics(), nil
	}
	return dataset.LoadFile(path)
}

func listEntities(out io.Writer, engine *tastematch.Engine) error {
	for _, id := range engine.Entities() {
		if _, err := fmt.Fprintln(out, id); err != nil {
			return err
		}
	}
	return nil
}

func report(ctx context.Context, out io.Writer, logger zerolog.Logger, engine *tastematch.Engine, entity, other string, n int) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	if other != "" {
		sim, err := engine.Similarity(ctx, entity, other)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s similarity\t%s / %s\t%.4f\n", engine.Method(), entity, other, sim)
		return w.Flush()
	}

	matches, err := engine.TopMatches(ctx, entity, n)
	if err != nil {
		if errors.Is(err, tastematch.ErrUnknownEntity) {
			logger.Error().Str("entity", entity).Msg("entity not found")
		}
		return err
	}
	recs, err := engine.Recommend(ctx, entity)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Closest to %s (%s)\n", entity, engine.Method())
	writeScored(w, matches)
	fmt.Fprintf(w, "\nRecommended for %s\n", entity)
	writeScored(w, recs)

	return w.Flush()
}

func writeScored(w io.Writer, scored []types.Scored) {
	if len(scored) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, s := range scored {
		fmt.Fprintf(w, "  %s\t%.4f\n", s.ID, s.Score)
	}
}
