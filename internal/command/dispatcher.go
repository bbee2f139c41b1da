// Package command routes validated protocol requests to their handlers
// and shapes every outcome into a response envelope.
package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aomurata/wordbridge/internal/apperr"
	"github.com/aomurata/wordbridge/internal/dictionary"
	"github.com/aomurata/wordbridge/internal/protocol"
	"github.com/aomurata/wordbridge/internal/store"
)

// Stores bundles the repositories the handlers execute against.
type Stores struct {
	Lists    store.ListRepository
	Words    store.WordRepository
	Stats    dictionary.StatsRepository
	Searches store.SearchRepository
	Settings store.SettingsRepository
}

// handlerFunc executes one decoded request and returns its success payload.
type handlerFunc func(ctx context.Context, req any) (any, error)

// Dispatcher validates, routes and executes protocol messages. Exactly one
// handler serves each action; every path resolves to a response envelope
// and nothing escapes as a panic. Mutations on the same list are
// serialized through a per-list lock so concurrent transports can share
// one Dispatcher.
type Dispatcher struct {
	validator *protocol.Validator
	dict      *dictionary.Service
	stores    Stores
	logger    zerolog.Logger
	now       func() time.Time
	locks     *keyedMutex
	handlers  map[protocol.Action]handlerFunc
}

// NewDispatcher creates a Dispatcher over the given collaborators.
func NewDispatcher(validator *protocol.Validator, dict *dictionary.Service, stores Stores, logger zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		validator: validator,
		dict:      dict,
		stores:    stores,
		logger:    logger,
		now:       time.Now,
		locks:     newKeyedMutex(),
	}
	d.handlers = map[protocol.Action]handlerFunc{
		protocol.ActionLookupWord:           d.handleLookupWord,
		protocol.ActionAddWord:              d.handleAddWord,
		protocol.ActionCreateList:           d.handleCreateList,
		protocol.ActionFetchAllLists:        d.handleFetchAllLists,
		protocol.ActionFetchListWords:       d.handleFetchListWords,
		protocol.ActionUpdateWord:           d.handleUpdateWord,
		protocol.ActionSubmitReview:         d.handleSubmitReview,
		protocol.ActionFetchReviewQueue:     d.handleFetchReviewQueue,
		protocol.ActionAddRecentSearch:      d.handleAddRecentSearch,
		protocol.ActionFetchRecentSearches:  d.handleFetchRecentSearches,
		protocol.ActionFetchSettings:        d.handleFetchSettings,
		protocol.ActionUpdateSettings:       d.handleUpdateSettings,
		protocol.ActionIncrementLookupCount: d.handleIncrementLookupCount,
		protocol.ActionFetchLookupCount:     d.handleFetchLookupCount,
		protocol.ActionFetchLookupStats:     d.handleFetchLookupStats,
	}
	return d
}

// Handle processes one raw message end to end: request validation, routing,
// execution, response validation. Each request is answered exactly once and
// never retried.
func (d *Dispatcher) Handle(ctx context.Context, raw []byte) (response protocol.Response) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().Interface("panic", r).Msg("handler panicked")
			response = protocol.Fail(fmt.Sprintf("internal error: %v", r))
		}
	}()

	action, req, err := d.validator.DecodeRequest(raw)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			return protocol.Fail("Invalid request: " + err.Error())
		}
		return protocol.Fail(err.Error())
	}

	handler, ok := d.handlers[action]
	if !ok {
		return protocol.Fail(fmt.Sprintf("Unknown action: %s", action))
	}

	data, err := handler(ctx, req)
	if err != nil {
		d.logger.Debug().Str("action", string(action)).Err(err).Msg("command failed")
		return protocol.Fail(err.Error())
	}

	if err := d.validator.ValidateResponse(action, data); err != nil {
		d.logger.Error().Str("action", string(action)).Err(err).Msg("handler built an invalid response")
		return protocol.Fail("Invalid response: " + err.Error())
	}
	return protocol.OK(data)
}
