package quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrNoSource is reported when a Fetcher was built without a Source.
var ErrNoSource = errors.New("no quote source configured")

// Fetcher turns Source lookups into Quote values. Fetch never fails: every
// error, including a panic inside the Source, becomes the error variant.
type Fetcher struct {
	src Source
	log zerolog.Logger
}

// NewFetcher returns a Fetcher reading from src.
func NewFetcher(src Source, log zerolog.Logger) *Fetcher {
	return &Fetcher{src: src, log: log.With().Str("component", "quote").Logger()}
}

// Source returns the underlying lookup.
func (f *Fetcher) Source() Source { return f.src }

// Fetch looks up symbol once. No retry and no caching.
func (f *Fetcher) Fetch(ctx context.Context, symbol string) (q Quote) {
	if f.src == nil {
		return Failure(symbol, ErrNoSource)
	}
	defer func() {
		if rec := recover(); rec != nil {
			f.log.Error().Str("symbol", symbol).Interface("panic", rec).Msg("quote source panicked")
			q = Failure(symbol, fmt.Errorf("%s: %v", f.src.Name(), rec))
		}
	}()

	data, err := f.src.Lookup(ctx, symbol)
	if err != nil {
		f.log.Warn().Err(err).Str("symbol", symbol).Str("source", f.src.Name()).Msg("quote lookup failed")
		return Failure(symbol, err)
	}
	f.log.Debug().Str("symbol", symbol).Str("source", f.src.Name()).Msg("quote fetched")
	return Success(symbol, data)
}
