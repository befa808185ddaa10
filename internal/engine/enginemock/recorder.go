// Package enginemock declares the narrow interface the parallel
// orchestrator's tests mock with gomock. engine.OnSuccessFunc and
// engine.OnErrorFunc are plain function types (so production callers
// never need an interface), but gomock needs a method set to generate
// a call-count-and-ordering-insensitive recorder against, so the tests
// wrap them behind Recorder.
package enginemock

import "github.com/LeJamon/txengine/internal/engine"

// Recorder receives every success/error callback the orchestrators
// deliver. Tests adapt the two function-typed callback slots into
// calls against a mock Recorder so concurrent delivery from many
// worker goroutines can be asserted with gomock's call matchers.
type Recorder interface {
	Success(rec engine.TransactionRecord)
	Error(err *engine.Error)
}
