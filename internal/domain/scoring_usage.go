package domain

import "context"

type scoringUsageKey struct{}

// ScoringUsage collects per-request scoring counters.
// The handler puts a mutable pointer into the context before calling the service;
// the service records outcomes; the handler reads it for response headers.
type ScoringUsage struct {
	Candidates   int
	Scored       int
	Omitted      int
	ModelVersion int
}

// NewContextWithScoringUsage returns a context with an embedded usage collector.
func NewContextWithScoringUsage(ctx context.Context) (context.Context, *ScoringUsage) {
	u := &ScoringUsage{}
	return context.WithValue(ctx, scoringUsageKey{}, u), u
}

// ScoringUsageFromContext extracts the usage collector from context. Returns nil if not set.
func ScoringUsageFromContext(ctx context.Context) *ScoringUsage {
	u, _ := ctx.Value(scoringUsageKey{}).(*ScoringUsage)
	return u
}

// Record stores the outcome of one scoring call.
func (u *ScoringUsage) Record(candidates, scored, modelVersion int) {
	if u != nil {
		u.Candidates += candidates
		u.Scored += scored
		u.Omitted += candidates - scored
		u.ModelVersion = modelVersion
	}
}
