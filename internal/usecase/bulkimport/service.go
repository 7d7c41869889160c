// Package bulkimport loads articles or source articles from a JSON file and
// inserts them one by one. Every record is reported individually and a
// failing record never stops the import.
package bulkimport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"content-api/internal/domain/entity"
	"content-api/internal/observability/metrics"
	artUC "content-api/internal/usecase/article"
	srcUC "content-api/internal/usecase/source"
)

// Kind selects the collection records are imported into.
type Kind string

// Supported import kinds.
const (
	KindArticle Kind = "article"
	KindSource  Kind = "source"
)

// ParseKind validates a kind given on the command line.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindArticle, KindSource:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown import kind %q (want %q or %q)", s, KindArticle, KindSource)
}

// ArticleCreator is satisfied by the article use case.
type ArticleCreator interface {
	Create(ctx context.Context, in artUC.CreateInput) (*entity.Article, error)
}

// SourceCreator is satisfied by the source article use case.
type SourceCreator interface {
	Create(ctx context.Context, in srcUC.CreateInput) (*entity.SourceArticle, error)
}

// Failure describes one record that was not imported.
type Failure struct {
	Index int
	Err   error
}

// Result summarizes an import run.
type Result struct {
	Total     int
	Inserted  int
	Validated int // dry run only
	Invalid   int
	Failed    int
	Failures  []Failure
	Duration  time.Duration
}

// Succeeded reports how many records were accepted.
func (r Result) Succeeded() int {
	return r.Inserted + r.Validated
}

// AllFailed reports whether there were records and none of them were accepted.
func (r Result) AllFailed() bool {
	return r.Total > 0 && r.Succeeded() == 0
}

// Service imports records through the regular use cases so that imported
// data is normalized and validated exactly like API writes.
type Service struct {
	Articles ArticleCreator
	Sources  SourceCreator
	// Rules validates articles in dry-run mode.
	Rules  entity.ArticleRules
	DryRun bool
	Logger *slog.Logger
}

// Import reads every record from r and inserts it.
// The returned error is non-nil only when r could not be read or ctx ended;
// per-record failures are reported in Result.
func (s *Service) Import(ctx context.Context, kind Kind, r io.Reader) (Result, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("kind", string(kind)), slog.Bool("dry_run", s.DryRun))

	start := time.Now()
	var res Result

	records := make(chan rawRecord, 64)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readRecords(gctx, r, records)
	})
	g.Go(func() error {
		// 1件ずつ順番に挿入する
		for rec := range records {
			if gctx.Err() != nil {
				break
			}
			res.Total++
			s.importOne(gctx, logger, kind, rec, &res)
		}
		return gctx.Err()
	})

	err := g.Wait()
	res.Duration = time.Since(start)

	logger.Info("data import completed",
		slog.Int("total", res.Total),
		slog.Int("inserted", res.Inserted),
		slog.Int("validated", res.Validated),
		slog.Int("invalid", res.Invalid),
		slog.Int("failed", res.Failed),
		slog.Duration("duration", res.Duration))

	return res, err
}

func (s *Service) importOne(ctx context.Context, logger *slog.Logger, kind Kind, rec rawRecord, res *Result) {
	fail := func(result string, err error) {
		res.Failures = append(res.Failures, Failure{Index: rec.Index, Err: err})
		if result == "invalid" {
			res.Invalid++
		} else {
			res.Failed++
		}
		metrics.RecordImportRecord(string(kind), result)
		logger.Warn("error inserting document",
			slog.Int("record", rec.Index),
			slog.String("result", result),
			slog.Any("error", err))
	}

	if rec.Err != nil {
		fail("invalid", rec.Err)
		return
	}

	id, err := s.insert(ctx, kind, rec.Data)
	switch {
	case errors.Is(err, entity.ErrValidationFailed), isDecodeError(err):
		fail("invalid", err)
	case err != nil:
		fail("failed", err)
	case s.DryRun:
		res.Validated++
		metrics.RecordImportRecord(string(kind), "skipped")
		logger.Debug("document is valid", slog.Int("record", rec.Index))
	default:
		res.Inserted++
		metrics.RecordImportRecord(string(kind), "inserted")
		logger.Info("inserted document", slog.Int("record", rec.Index), slog.String("id", id))
	}
}

type decodeError struct{ err error }

func (e *decodeError) Error() string { return "decode record: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

func isDecodeError(err error) bool {
	var de *decodeError
	return errors.As(err, &de)
}

func (s *Service) insert(ctx context.Context, kind Kind, data json.RawMessage) (string, error) {
	switch kind {
	case KindArticle:
		var r articleRecord
		if err := json.Unmarshal(data, &r); err != nil {
			return "", &decodeError{err}
		}
		if s.DryRun {
			return "", s.validateArticle(r)
		}
		a, err := s.Articles.Create(ctx, r.input())
		if err != nil {
			return "", err
		}
		return a.ID, nil

	case KindSource:
		var r sourceRecord
		if err := json.Unmarshal(data, &r); err != nil {
			return "", &decodeError{err}
		}
		if s.DryRun {
			return "", validateSource(r)
		}
		a, err := s.Sources.Create(ctx, r.input())
		if err != nil {
			return "", err
		}
		return a.ID, nil
	}
	return "", fmt.Errorf("unknown import kind %q", kind)
}

func (s *Service) validateArticle(r articleRecord) error {
	in := r.input()
	a := entity.Article{
		Title:    in.Title,
		Content:  in.Content,
		Summary:  in.Summary,
		ImageURL: in.ImageURL,
		Category: entity.Category(in.Category),
		Level:    entity.Level(in.Level),
		Author:   in.Author,
		SourceID: in.SourceID,
	}
	a.Normalize()
	return s.Rules.ValidateArticle(&a)
}

func validateSource(r sourceRecord) error {
	in := r.input()
	a := entity.SourceArticle{
		Title:     in.Title,
		Content:   in.Content,
		SourceURL: in.SourceURL,
		ImageURL:  in.ImageURL,
		Source:    entity.Source(in.Source),
	}
	a.Normalize()
	return entity.ValidateSourceArticle(&a)
}
