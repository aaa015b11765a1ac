// Package sources provides HTTP clients for the upstream biodiversity data
// providers: GBIF occurrence search, Wikipedia summaries, iNaturalist taxon
// metadata, xeno-canto recordings, and the Google News RSS feed.
package sources

// Status classifies the outcome of an optional per-species lookup.
type Status string

const (
	// StatusFound means the provider returned usable data.
	StatusFound Status = "found"
	// StatusNotFound means the provider answered but had no data for the
	// species. This is not a fault.
	StatusNotFound Status = "not_found"
	// StatusFailed means the provider could not be reached or returned
	// garbage. The reason is recorded; the batch continues.
	StatusFailed Status = "failed"
)

// Result is the single "found / not found / failed" shape every optional
// source normalizes through. Earlier revisions of this feature mixed string
// sentinels and empty lists for absence; every caller now branches on
// Status instead.
type Result[T any] struct {
	Status Status `json:"status"`
	Value  T      `json:"value,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Found wraps a value in a successful Result.
func Found[T any](v T) Result[T] {
	return Result[T]{Status: StatusFound, Value: v}
}

// NotFound returns the no-data Result.
func NotFound[T any]() Result[T] {
	return Result[T]{Status: StatusNotFound}
}

// Failed returns a failure Result carrying the reason.
func Failed[T any](reason string) Result[T] {
	return Result[T]{Status: StatusFailed, Reason: reason}
}

// Ok reports whether the result carries data.
func (r Result[T]) Ok() bool {
	return r.Status == StatusFound
}
