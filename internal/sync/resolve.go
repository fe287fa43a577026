package sync

import (
	"context"
	"errors"

	"toggldash/internal/store"
	"toggldash/internal/toggl"
)

// cycle carries the state shared across one refresh: whether the API may be
// called at all and which cache fallbacks have happened so far.
type cycle struct {
	allowAPI  bool
	fallbacks []Provenance
}

func (cy *cycle) recordFallback(p Provenance) {
	cy.fallbacks = append(cy.fallbacks, p)
}

// resolve applies the per-resource resolution rule: skip the API when the
// cycle forbids it or the budget is spent, otherwise call it and write
// through; fall back to cache on any remote failure except Unauthorized,
// which aborts the whole refresh.
func resolve[T any](
	e *Engine,
	ctx context.Context,
	cy *cycle,
	resource string,
	lookup func() (store.Cached[T], bool),
	fetch func(context.Context) (T, error),
	put func(T),
) (T, Provenance, error) {
	var zero T

	reason := ReasonCacheOnly
	var remoteErr error
	if cy.allowAPI {
		if !e.ledger.Allow() {
			reason = ReasonQuota
		} else {
			e.ledger.Consume()
			data, err := fetch(ctx)
			if err == nil {
				put(data)
				return data, apiProvenance(e.now()), nil
			}
			if errors.Is(err, toggl.ErrUnauthorized) {
				e.handleUnauthorized()
				return zero, Provenance{}, ErrLoginRequired
			}
			reason = ReasonAPIError
			remoteErr = err
		}
	}

	if cached, ok := lookup(); ok {
		prov := Provenance{FromCache: true, Reason: reason, Err: remoteErr}
		if t, ok := cached.FetchedTime(); ok {
			prov.FetchedAt = t
		}
		cy.recordFallback(prov)
		return cached.Data, prov, nil
	}

	if remoteErr != nil {
		return zero, Provenance{}, remoteErr
	}
	return zero, Provenance{}, &NoDataError{
		Resource:       resource,
		QuotaExhausted: reason == ReasonQuota,
	}
}
