package command

import (
	"context"

	"github.com/aomurata/wordbridge/internal/apperr"
	"github.com/aomurata/wordbridge/internal/protocol"
	"github.com/aomurata/wordbridge/internal/review"
	"github.com/aomurata/wordbridge/internal/vocabulary"
)

func (d *Dispatcher) handleSubmitReview(ctx context.Context, req any) (any, error) {
	request := req.(*protocol.SubmitReviewRequest)

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
	entry, nextInterval, err := collection.SubmitReview(
		request.Word, review.Result(request.ReviewResult), request.TimeSpent, d.now())
	if err != nil {
		return nil, err
	}

	record := entry.ReviewHistory[len(entry.ReviewHistory)-1]
	key := vocabulary.NormalizeWord(request.Word)
	if err := d.stores.Words.SaveReview(ctx, id, key, entry, record); err != nil {
		return nil, apperr.Store(err)
	}

	return protocol.SubmitReviewData{
		NextInterval: nextInterval,
		NextReview:   entry.NextReview,
		Word:         protocol.WordEntryToWire(entry),
	}, nil
}

func (d *Dispatcher) handleFetchReviewQueue(ctx context.Context, req any) (any, error) {
	request := req.(*protocol.FetchReviewQueueRequest)

	lists, err := d.stores.Lists.FindAll(ctx)
	if err != nil {
		return nil, apperr.Store(err)
	}

	var candidates []review.DueWord
	for _, list := range lists {
		for _, entry := range list.Words {
			candidates = append(candidates, review.DueWord{
				Word:       entry.Word,
				ListID:     list.ID.String(),
				ListName:   list.Name,
				NextReview: entry.NextReview,
				Difficulty: entry.Difficulty,
			})
		}
	}

	queue := review.BuildQueue(candidates, request.MaxWords, d.now())
	words := make([]protocol.DueWordPayload, len(queue))
	for i, due := range queue {
		words[i] = protocol.DueWordToWire(due)
	}
	return protocol.ReviewQueueData{Words: words}, nil
}
