package tracing

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

// Outcomes recorded with editor measures
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
	OutcomeDone     = "done"
	OutcomeFailed   = "failed"
)

var (
	// EditorMutations counts editor operations, tagged by operation and outcome
	EditorMutations = stats.Int64("keywordconsole/editor/mutations", "Flex editor operations", stats.UnitDimensionless)
	// ImageReads counts finished image reads, tagged by outcome
	ImageReads = stats.Int64("keywordconsole/editor/image_reads", "Image reads finished", stats.UnitDimensionless)
	// ImageReadLatency is the time from upload to the element update
	ImageReadLatency = stats.Float64("keywordconsole/editor/image_read_latency", "Image read latency", stats.UnitMilliseconds)
	// ActiveSessions is the number of open editor sessions
	ActiveSessions = stats.Int64("keywordconsole/editor/sessions", "Open editor sessions", stats.UnitDimensionless)

	KeyOperation = tag.MustNewKey("operation")
	KeyOutcome   = tag.MustNewKey("outcome")
)

// EditorViews aggregate the editor measures
var EditorViews = []*view.View{
	{
		Name:        "keywordconsole/editor/mutation_count",
		Measure:     EditorMutations,
		Description: "Flex editor operations by operation and outcome",
		TagKeys:     []tag.Key{KeyOperation, KeyOutcome},
		Aggregation: view.Count(),
	},
	{
		Name:        "keywordconsole/editor/image_read_count",
		Measure:     ImageReads,
		Description: "Image reads by outcome",
		TagKeys:     []tag.Key{KeyOutcome},
		Aggregation: view.Count(),
	},
	{
		Name:        "keywordconsole/editor/image_read_latency",
		Measure:     ImageReadLatency,
		Description: "Image read latency distribution",
		TagKeys:     []tag.Key{KeyOutcome},
		Aggregation: view.Distribution(5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000),
	},
	{
		Name:        "keywordconsole/editor/sessions",
		Measure:     ActiveSessions,
		Description: "Open editor sessions",
		Aggregation: view.LastValue(),
	},
}

// RegisterEditorViews registers EditorViews
func RegisterEditorViews() error {
	return view.Register(EditorViews...)
}

// RecordMutation counts one editor operation
func RecordMutation(ctx context.Context, operation string, changed bool) {
	outcome := OutcomeApplied
	if !changed {
		outcome = OutcomeRejected
	}
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyOperation, operation), tag.Upsert(KeyOutcome, outcome)},
		EditorMutations.M(1),
	)
}

// RecordImageRead counts one finished image read and its latency
func RecordImageRead(ctx context.Context, outcome string, elapsed time.Duration) {
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyOutcome, outcome)},
		ImageReads.M(1),
		ImageReadLatency.M(float64(elapsed)/float64(time.Millisecond)),
	)
}

// RecordActiveSessions reports the current number of open sessions
func RecordActiveSessions(ctx context.Context, n int) {
	stats.Record(ctx, ActiveSessions.M(int64(n)))
}
