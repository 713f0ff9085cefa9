// Package pipeline runs the single-pass fetch → classify → extract → append
// flow of one scheduled invocation.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bauradar/baugesuche-crawler/internal/amtsblatt"
	"github.com/bauradar/baugesuche-crawler/internal/extract"
	"github.com/bauradar/baugesuche-crawler/internal/permit"
)

// Source lists recent publications and fetches their detail XML.
type Source interface {
	ListPublications(ctx context.Context) ([]amtsblatt.Summary, error)
	FetchDetail(ctx context.Context, ref string) (string, error)
}

// Matcher tests announcement text for the MFH signal.
type Matcher interface {
	Match(text string) (term string, ok bool)
}

// Sink appends qualifying records, skipping duplicates.
type Sink interface {
	Append(records []permit.Record) (added int, err error)
}

// Counters tracks what happened to each listed publication during a run.
type Counters struct {
	Listed         int
	DetailFailed   int
	Matched        int
	ExtractSkipped int
	Appended       int
	Duplicates     int
}

// Engine orchestrates one run. Execution is strictly sequential; the only
// failure that aborts a run is the list call or the final sink write.
type Engine struct {
	source  Source
	matcher Matcher
	sink    Sink
	logger  *zap.Logger
}

// New wires the pipeline components together.
func New(source Source, matcher Matcher, sink Sink, logger *zap.Logger) *Engine {
	return &Engine{
		source:  source,
		matcher: matcher,
		sink:    sink,
		logger:  logger,
	}
}

// Run executes the pipeline to completion and reports counters. Per-item
// failures (detail fetch, extraction) skip the item and continue.
func (e *Engine) Run(ctx context.Context) (Counters, error) {
	var counters Counters

	summaries, err := e.source.ListPublications(ctx)
	if err != nil {
		return counters, fmt.Errorf("list publications: %w", err)
	}
	counters.Listed = len(summaries)
	e.logger.Info("Listed publications", zap.Int("total", counters.Listed))

	var records []permit.Record
	for _, s := range summaries {
		detail, err := e.source.FetchDetail(ctx, s.Ref)
		if err != nil {
			counters.DetailFailed++
			e.logger.Warn("Skipping publication, detail fetch failed",
				zap.String("publication_number", s.PublicationNumber),
				zap.Error(err))
			continue
		}

		term, ok := e.matcher.Match(extract.ClassifierText(detail, s.Title))
		if !ok {
			continue
		}
		counters.Matched++
		e.logger.Debug("MFH match",
			zap.String("publication_number", s.PublicationNumber),
			zap.String("term", term),
			zap.String("ref", s.Ref))

		canton, ok := permit.ParseCanton(s.Canton)
		if !ok {
			// The list filter only admits ZH and ZG; a missing code on the
			// entry itself means ZH in practice.
			canton = permit.CantonZH
		}

		applicant, err := extract.Applicant(detail, canton)
		if err != nil {
			counters.ExtractSkipped++
			e.logger.Warn("Skipping publication, extraction failed",
				zap.String("publication_number", s.PublicationNumber),
				zap.Error(err))
			continue
		}

		records = append(records, permit.Record{
			PublicationID:    s.PublicationNumber,
			Canton:           canton,
			ApplicantName:    applicant.Name,
			ApplicantAddress: applicant.Address,
			IsMFH:            true,
			PublicationDate:  s.PublicationDate,
		})
	}

	added, err := e.sink.Append(records)
	if err != nil {
		return counters, fmt.Errorf("append records: %w", err)
	}
	counters.Appended = added
	counters.Duplicates = len(records) - added

	e.logger.Info("Run complete",
		zap.Int("listed", counters.Listed),
		zap.Int("detail_failed", counters.DetailFailed),
		zap.Int("matched", counters.Matched),
		zap.Int("extract_skipped", counters.ExtractSkipped),
		zap.Int("appended", counters.Appended),
		zap.Int("duplicates", counters.Duplicates))
	return counters, nil
}
