package command

import (
	"context"

	"github.com/aomurata/wordbridge/internal/apperr"
	"github.com/aomurata/wordbridge/internal/protocol"
	"github.com/aomurata/wordbridge/internal/vocabulary"
)

// maxSuggestions caps the "did you mean" list on a failed lookup.
const maxSuggestions = 5

func (d *Dispatcher) handleLookupWord(ctx context.Context, req any) (any, error) {
	request := req.(*protocol.LookupWordRequest)

	entry := d.dict.Lookup(ctx, request.Word)
	if entry == nil {
		return protocol.LookupWordData{
			Found:       false,
			Suggestions: d.dict.FuzzyMatch(request.Word, maxSuggestions),
		}, nil
	}

	// Best effort: a failed history write must not fail the lookup.
	if err := d.stores.Searches.Add(ctx, entry.Word, d.now()); err != nil {
		d.logger.Warn().Err(err).Str("word", entry.Word).Msg("failed to record recent search")
	}

	return protocol.LookupWordData{
		Found: true,
		Entry: protocol.DictionaryEntryToWire(entry),
	}, nil
}

func (d *Dispatcher) handleAddRecentSearch(ctx context.Context, req any) (any, error) {
	request := req.(*protocol.AddRecentSearchRequest)
	if err := d.stores.Searches.Add(ctx, request.Word, d.now()); err != nil {
		return nil, apperr.Store(err)
	}
	return protocol.EmptyData{}, nil
}

func (d *Dispatcher) handleFetchRecentSearches(ctx context.Context, req any) (any, error) {
	request := req.(*protocol.FetchRecentSearchesRequest)
	words, err := d.stores.Searches.Recent(ctx, request.Limit)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if words == nil {
		words = []string{}
	}
	return protocol.RecentSearchesData{Words: words}, nil
}

func (d *Dispatcher) handleIncrementLookupCount(ctx context.Context, req any) (any, error) {
	request := req.(*protocol.IncrementLookupCountRequest)
	key := vocabulary.NormalizeWord(request.Word)
	if key == "" {
		return protocol.LookupCountData{Word: key, Count: 0}, nil
	}

	if err := d.stores.Stats.Record(ctx, key, d.now()); err != nil {
		return nil, apperr.Store(err)
	}
	stats, err := d.stores.Stats.Find(ctx, key)
	if err != nil {
		return nil, apperr.Store(err)
	}
	count := 0
	if stats != nil {
		count = stats.Count
	}
	return protocol.LookupCountData{Word: key, Count: count}, nil
}

func (d *Dispatcher) handleFetchLookupCount(ctx context.Context, req any) (any, error) {
	request := req.(*protocol.FetchLookupCountRequest)
	count, err := d.dict.LookupCount(ctx, request.Word)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return protocol.LookupCountData{
		Word:  vocabulary.NormalizeWord(request.Word),
		Count: count,
	}, nil
}

func (d *Dispatcher) handleFetchLookupStats(ctx context.Context, req any) (any, error) {
	stats, err := d.stores.Stats.FindAll(ctx)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return protocol.LookupStatsToWire(stats), nil
}
