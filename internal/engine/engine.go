// Package engine orchestrates batch classification of email records.
package engine

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/sisifus/jobflow/internal/classification"
	"github.com/sisifus/jobflow/internal/model"
)

// DefaultChunkSize is the number of emails per processing chunk.
// Chunking exists for throughput telemetry only; chunk boundaries have
// no effect on individual results.
const DefaultChunkSize = 1000

// Options tunes the engine. Zero values select defaults.
type Options struct {
	Relevance        *classification.RelevanceConfig
	GenericProviders []string
	ChunkSize        int
	BodyScanLimit    int
	Threshold        float64
}

// Engine runs the full two-stage classification pipeline: relevance
// gate, then status classification with company extraction and
// confidence scoring. It holds no cross-message state.
type Engine struct {
	filter     *classification.RelevanceFilter
	classifier *classification.Classifier
	company    *classification.CompanyExtractor
	scorer     classification.Scorer
	chunkSize  int
}

// New builds an engine over the given registry. Configuration errors
// (malformed relevance patterns) fail construction before any message
// is processed.
func New(registry *classification.Registry, opts Options) (*Engine, error) {
	relevanceCfg := classification.DefaultRelevanceConfig()
	if opts.Relevance != nil {
		relevanceCfg = *opts.Relevance
	}
	if opts.BodyScanLimit > 0 {
		relevanceCfg.BodyScanLimit = opts.BodyScanLimit
	}

	filter, err := classification.NewRelevanceFilter(relevanceCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build relevance filter: %w", err)
	}

	providers := opts.GenericProviders
	if providers == nil {
		providers = classification.DefaultGenericProviders()
	}

	scorer := classification.NewScorer()
	if opts.Threshold > 0 {
		scorer.Threshold = opts.Threshold
	}

	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &Engine{
		filter:     filter,
		classifier: classification.NewClassifier(registry, opts.BodyScanLimit),
		company:    classification.NewCompanyExtractor(providers, filter),
		scorer:     scorer,
		chunkSize:  chunkSize,
	}, nil
}

// Threshold returns the engine's high-confidence cutoff.
func (e *Engine) Threshold() float64 {
	return e.scorer.Threshold
}

// ClassifyOne classifies a single email. Deterministic: the same email
// against the same registry always yields an identical result (modulo
// ClassifiedAt).
func (e *Engine) ClassifyOne(email model.Email) model.Classification {
	result := model.Classification{
		EmailID:      email.ID,
		ClassifiedAt: time.Now().UTC(),
		Company:      model.UnknownCompany,
	}

	if !e.filter.IsRelevant(email) {
		// Deliberate short-circuit: out-of-scope mail never reaches the
		// status classifier or company extractor and is excluded from
		// lifecycle statistics entirely.
		result.Status = model.StatusNotJobRelated
		return result
	}

	result.IsJobRelated = true
	matches := e.classifier.Classify(email)
	winner := classification.WinningMatch(matches)
	result.Status = winner.Status
	result.MatchedRuleCount = winner.RuleCount
	result.Confidence = e.scorer.Score(winner)
	result.Company = e.company.Extract(email)
	return result
}

// classifyRecovered wraps ClassifyOne with panic recovery so one bad
// message can never abort the rest of a batch. Failures degrade to
// no_reply with the cause recorded as diagnostics.
func (e *Engine) classifyRecovered(email model.Email) (result model.Classification) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("classification failed, degrading to no_reply",
				"email_id", email.ID, "panic", r)
			result = model.Classification{
				EmailID:      email.ID,
				ClassifiedAt: time.Now().UTC(),
				IsJobRelated: true,
				Status:       model.StatusNoReply,
				Confidence:   0.0,
				Company:      model.UnknownCompany,
				Notes:        fmt.Sprintf("classification failed: %v", r),
			}
		}
	}()
	return e.ClassifyOne(email)
}

// Stream returns a lazy, restartable sequence of classification
// results, ordered one-to-one with the input. The caller controls
// termination by ceasing to pull; ranging again reprocesses from the
// start with identical results.
func (e *Engine) Stream(emails []model.Email) iter.Seq[model.Classification] {
	return func(yield func(model.Classification) bool) {
		for _, email := range emails {
			if !yield(e.classifyRecovered(email)) {
				return
			}
		}
	}
}

// ProcessAll classifies every email in fixed-size chunks and returns
// the results in input order. The progress callback (may be nil)
// receives the running total after each message. Context cancellation
// is honored between chunks.
func (e *Engine) ProcessAll(ctx context.Context, emails []model.Email, progress func(done int)) ([]model.Classification, error) {
	results := make([]model.Classification, 0, len(emails))

	for start := 0; start < len(emails); start += e.chunkSize {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		end := start + e.chunkSize
		if end > len(emails) {
			end = len(emails)
		}

		chunkStart := time.Now()
		for result := range e.Stream(emails[start:end]) {
			results = append(results, result)
			if progress != nil {
				progress(len(results))
			}
		}
		slog.Debug("processed chunk",
			"from", start, "to", end,
			"elapsed", time.Since(chunkStart))
	}

	return results, nil
}
