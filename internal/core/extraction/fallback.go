package extraction

import (
	"context"
	"errors"
	"fmt"

	"github.com/tavalos/papeleo/internal/core/domain"
)

// runResult is the explicit outcome of one method run. Modeling both arms
// keeps the single-retry policy a visible function instead of control
// flow buried in error propagation.
type runResult struct {
	fields domain.FieldSet
	err    error
}

func okRun(fields domain.FieldSet) runResult { return runResult{fields: fields} }
func errRun(err error) runResult             { return runResult{err: err} }

// runWithFallback executes the primary method and, when it fails and a
// simpler target exists, retries exactly once with that target, marking
// the run "<primary>_fallback". A second failure is terminal. The caller
// learns which method actually produced the fields.
func runWithFallback(
	ctx context.Context,
	primary domain.ExtractionMethod,
	fallbackFor func(domain.ExtractionMethod) (domain.ExtractionMethod, bool),
	run func(context.Context, domain.ExtractionMethod) runResult,
) (domain.FieldSet, domain.ExtractionMethod, string, error) {
	first := run(ctx, primary)
	if first.err == nil {
		return first.fields, primary, string(primary), nil
	}

	target, hasFallback := fallbackFor(primary)
	if !hasFallback {
		return nil, "", "", domain.WrapError(domain.ErrExtractionFailed, fmt.Sprintf("method %s", primary), first.err)
	}

	second := run(ctx, target)
	if second.err != nil {
		return nil, "", "", domain.WrapError(
			domain.ErrExtractionFailed,
			fmt.Sprintf("method %s and fallback %s", primary, target),
			errors.Join(first.err, second.err),
		)
	}
	return second.fields, target, string(primary) + "_fallback", nil
}
