package command

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/aomurata/wordbridge/internal/apperr"
	"github.com/aomurata/wordbridge/internal/dictionary"
	"github.com/aomurata/wordbridge/internal/protocol"
	"github.com/aomurata/wordbridge/internal/vocabulary"
)

// loadList resolves a wire list id to a loaded list. A malformed id is a
// validation failure, a missing list a not-found.
func (d *Dispatcher) loadList(ctx context.Context, rawID string) (*vocabulary.List, uuid.UUID, error) {
	id, err := protocol.ParseListID(rawID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	list, err := d.stores.Lists.Find(ctx, id)
	if err != nil {
		return nil, uuid.Nil, apperr.Store(err)
	}
	if list == nil {
		return nil, uuid.Nil, apperr.NotFound("Vocabulary list not found")
	}
	return list, id, nil
}

func (d *Dispatcher) handleCreateList(ctx context.Context, req any) (any, error) {
	request := req.(*protocol.CreateListRequest)

	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, apperr.Validation("List name cannot be empty")
	}

	list := &vocabulary.List{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: d.now(),
		IsDefault: request.IsDefault,
		Words:     make(map[string]*vocabulary.WordEntry),
	}
	if err := d.stores.Lists.Create(ctx, list); err != nil {
		return nil, apperr.Store(err)
	}
	return protocol.ListToWire(list), nil
}

func (d *Dispatcher) handleFetchAllLists(ctx context.Context, req any) (any, error) {
	lists, err := d.stores.Lists.FindAll(ctx)
	if err != nil {
		return nil, apperr.Store(err)
	}
	payloads := make([]protocol.ListPayload, len(lists))
	for i, list := range lists {
		payloads[i] = protocol.ListToWire(list)
	}
	return protocol.ListsData{Lists: payloads}, nil
}

func (d *Dispatcher) handleFetchListWords(ctx context.Context, req any) (any, error) {
	request := req.(*protocol.FetchListWordsRequest)

	list, _, err := d.loadList(ctx, request.ListID)
	if err != nil {
		return nil, err
	}

	collection := vocabulary.NewCollection(list, d.dict)
	all := collection.Words()
	entries := vocabulary.FilterByDifficulty(all, request.FilterBy)
	entries = vocabulary.SearchWords(entries, request.Search, d.dict)

	allStats, err := d.stores.Stats.FindAll(ctx)
	if err != nil {
		return nil, apperr.Store(err)
	}
	statsByWord := make(map[string]dictionary.LookupStats, len(allStats))
	lookupCounts := make(map[string]int, len(allStats))
	for _, s := range allStats {
		statsByWord[s.Word] = s
		lookupCounts[s.Word] = s.Count
	}

	criteria := vocabulary.SortCriteria(request.SortBy)
	if criteria == "" {
		criteria = vocabulary.SortAlphabetical
	}
	order := vocabulary.SortOrder(request.SortOrder)
	if order == "" {
		order = vocabulary.OrderAsc
	}
	vocabulary.SortWords(entries, criteria, order, lookupCounts)

	words := make([]protocol.WordEntryPayload, len(entries))
	stats := make(map[string]protocol.LookupStatsPayload, len(entries))
	for i, entry := range entries {
		payload := protocol.WordEntryToWire(entry)
		payload.Dictionary = protocol.DictionaryEntryToWire(d.dict.Get(entry.Word))
		words[i] = payload

		key := vocabulary.NormalizeWord(entry.Word)
		if s, ok := statsByWord[key]; ok {
			stats[key] = protocol.LookupStatsEntryToWire(s)
		}
	}
	return protocol.ListWordsData{
		Words:       words,
		LookupStats: stats,
		Statistics:  protocol.StatisticsToWire(vocabulary.ComputeStatistics(all, d.now())),
	}, nil
}

func (d *Dispatcher) handleAddWord(ctx context.Context, req any) (any, error) {
	request := req.(*protocol.AddWordRequest)

	id, err := protocol.ParseListID(request.ListID)
	if err != nil {
		return nil, err
	}
	unlock := d.locks.lock(id.String())
	defer unlock()

	list, id, err := d.loadList(ctx, request.ListID)
	if err != nil {
		return nil, err
	}

	meta := vocabulary.Metadata{}
	if request.Metadata != nil {
		meta.Difficulty = request.Metadata.Difficulty
		meta.CustomNotes = request.Metadata.CustomNotes
	}

	collection := vocabulary.NewCollection(list, d.dict)
	entry, err := collection.AddWord(request.Word, meta, d.now())
	if err != nil {
		return nil, err
	}
	key := vocabulary.NormalizeWord(request.Word)
	if err := d.stores.Words.Insert(ctx, id, key, entry); err != nil {
		return nil, apperr.Store(err)
	}
	return protocol.WordEntryData{Word: protocol.WordEntryToWire(entry)}, nil
}

func (d *Dispatcher) handleUpdateWord(ctx context.Context, req any) (any, error) {
	request := req.(*protocol.UpdateWordRequest)

	id, err := protocol.ParseListID(request.ListID)
	if err != nil {
		return nil, err
	}
	unlock := d.locks.lock(id.String())
	defer unlock()

	list, id, err := d.loadList(ctx, request.ListID)
	if err != nil {
		return nil, err
	}

	collection := vocabulary.NewCollection(list, d.dict)
	entry, err := collection.UpdateWord(request.Word, vocabulary.Updates{
		Difficulty:  request.Updates.Difficulty,
		CustomNotes: request.Updates.CustomNotes,
	})
	if err != nil {
		return nil, err
	}
	if err := d.stores.Words.Update(ctx, id, vocabulary.NormalizeWord(request.Word), entry); err != nil {
		return nil, apperr.Store(err)
	}
	return protocol.WordEntryData{Word: protocol.WordEntryToWire(entry)}, nil
}
