package condition

import "go.uber.org/zap"

// Evaluator runs the conditions of configuration units and records their
// outcomes in a Report.
type Evaluator struct {
	report *Report
	logger *zap.Logger
}

// NewEvaluator creates an evaluator. A nil report or logger is replaced by a
// fresh report or a no-op logger.
func NewEvaluator(report *Report, logger *zap.Logger) *Evaluator {
	if report == nil {
		report = NewReport()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{report: report, logger: logger}
}

// ShouldSkip evaluates conditions in order and reports whether source must be
// skipped. Evaluation stops at the first non-matching condition.
func (e *Evaluator) ShouldSkip(source string, ctx Context, md Metadata, conditions ...Condition) bool {
	for _, c := range Sort(conditions) {
		outcome := c.MatchOutcome(ctx, md)
		e.report.Record(source, c, outcome)
		e.logger.Debug("condition evaluated",
			zap.String("source", source),
			zap.String("condition", fmtCondition(c)),
			zap.Bool("match", outcome.IsMatch()),
			zap.String("message", outcome.Message))
		if !outcome.IsMatch() {
			return true
		}
	}
	return false
}

func (e *Evaluator) Report() *Report {
	return e.report
}
