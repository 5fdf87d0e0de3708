package assessment

import (
	"context"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/corpus"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/logging"
	"github.com/nikhilesh-s/mfr-material-risk-engine/pkg/errors"
)

// LoadCorpus fetches and decodes src, reporting skipped records at Warn.
func LoadCorpus(ctx context.Context, src corpus.Source, log logging.Logger) (*corpus.Corpus, corpus.LoadReport, error) {
	c, report, err := corpus.Load(ctx, src)
	if err != nil {
		return nil, report, errors.Wrap(err, errors.ErrCodeCorpusLoadFailed, "failed to load reference corpus").WithDetail(src.Name())
	}
	for _, issue := range report.Issues {
		log.Warn("corpus record skipped", logging.String("source", src.Name()), logging.String("issue", issue))
	}
	log.Info("reference corpus loaded",
		logging.String("source", src.Name()),
		logging.Int("records", report.Records),
		logging.Int("skipped", report.Skipped))
	return c, report, nil
}

// Reload loads src and swaps it in. On failure the current corpus stays.
func (e *Engine) Reload(ctx context.Context, src corpus.Source) (corpus.LoadReport, error) {
	c, report, err := LoadCorpus(ctx, src, e.logger)
	e.metrics.RecordCorpusLoad(report.Records, err)
	if err != nil {
		e.logger.Warn("corpus reload failed, keeping current corpus",
			logging.Int("records", e.Corpus().Len()), logging.Err(err))
		return report, err
	}
	e.SwapCorpus(c)
	return report, nil
}

// LoadOrEmpty is Reload for startup: a failure leaves the engine with an
// empty corpus and only degrades comparable materials and confidence.
func (e *Engine) LoadOrEmpty(ctx context.Context, src corpus.Source) {
	if src == nil {
		e.logger.Warn("no reference corpus configured, comparable materials disabled")
		return
	}
	if _, err := e.Reload(ctx, src); err != nil {
		e.SwapCorpus(corpus.Empty())
	}
}

//Personal.AI order the ending
