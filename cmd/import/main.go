// Command import loads a JSON file of records into MongoDB one record at a
// time, continuing past records that fail.
//
//	go run ./cmd/import -file articles.json
//	go run ./cmd/import -kind source -file sources.ndjson -dry-run
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"content-api/internal/config"
	mongoRepo "content-api/internal/infra/adapter/persistence/mongodb"
	"content-api/internal/infra/db"
	"content-api/internal/observability/logging"
	"content-api/internal/resilience/circuitbreaker"
	artUC "content-api/internal/usecase/article"
	"content-api/internal/usecase/bulkimport"
	srcUC "content-api/internal/usecase/source"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

type options struct {
	file   string
	kind   bulkimport.Kind
	dryRun bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(stderr)

	file := fs.String("file", "./articles.json", "JSON array or NDJSON file to import")
	kind := fs.String("kind", string(bulkimport.KindArticle), "collection to import into: article or source")
	dryRun := fs.Bool("dry-run", false, "validate records without writing them")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	k, err := bulkimport.ParseKind(*kind)
	if err != nil {
		return options{}, err
	}
	return options{file: *file, kind: k, dryRun: *dryRun}, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, err)
		}
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "invalid configuration:", err)
		return exitUsage
	}
	logger := logging.New(stderr, cfg.LogLevel)
	slog.SetDefault(logger)

	f, err := os.Open(opts.file)
	if err != nil {
		logger.Error("error reading import file", slog.String("file", opts.file), slog.Any("error", err))
		return exitFailed
	}
	defer f.Close()

	svc := &bulkimport.Service{Rules: cfg.Articles, DryRun: opts.dryRun, Logger: logger}

	// dry run never touches the database
	if !opts.dryRun {
		client, database, err := db.Open(ctx, cfg.Mongo.ConnectionConfig())
		if err != nil {
			logger.Error("failed to connect to database",
				slog.String("uri", db.RedactURI(cfg.Mongo.URI)),
				slog.Any("error", err))
			return exitFailed
		}
		defer func() {
			if err := db.Close(client, cfg.Server.ShutdownTimeout); err != nil {
				logger.Error("failed to disconnect database", slog.Any("error", err))
			}
		}()

		if err := mongoRepo.EnsureIndexes(ctx, database); err != nil {
			logger.Error("failed to ensure indexes", slog.Any("error", err))
			return exitFailed
		}

		repoOpts := mongoRepo.Options{OpTimeout: cfg.Mongo.OpTimeout, Breaker: circuitbreaker.NewMongo()}
		svc.Articles = artUC.NewService(
			mongoRepo.NewArticleRepo(database, repoOpts),
			mongoRepo.NewLikeRepo(database, repoOpts),
			cfg.Articles,
		)
		svc.Sources = &srcUC.Service{Repo: mongoRepo.NewSourceArticleRepo(database, repoOpts), Origin: "import"}
	}

	res, err := svc.Import(ctx, opts.kind, f)
	printSummary(stdout, opts, res)
	if err != nil {
		logger.Error("import aborted", slog.Any("error", err))
		return exitFailed
	}
	if res.AllFailed() {
		return exitFailed
	}
	return exitOK
}

func printSummary(w io.Writer, opts options, res bulkimport.Result) {
	mode := "imported"
	if opts.dryRun {
		mode = "validated"
	}
	fmt.Fprintf(w, "%s %d of %d %s records from %s in %s (invalid: %d, failed: %d)\n",
		mode, res.Succeeded(), res.Total, opts.kind, opts.file,
		res.Duration.Round(time.Millisecond), res.Invalid, res.Failed)
	for _, f := range res.Failures {
		fmt.Fprintf(w, "  record %d: %v\n", f.Index, f.Err)
	}
}
