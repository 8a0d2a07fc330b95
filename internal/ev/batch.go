package ev

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/railbird/railbird/internal/allin"
	"github.com/railbird/railbird/internal/equity"
	"github.com/railbird/railbird/internal/handlog"
)

// Skip identifies a hand the batch evaluated but could not score.
type Skip struct {
	HandNumber int
	HandID     string
	Reason     string
}

// Batch is the outcome of evaluating a slice of hands: records in input
// order, plus the hands that were skipped and why. Hands with no all-in
// are filtered silently; they are neither records nor skips.
type Batch struct {
	Records []*Record
	Skipped []Skip
}

// EvaluateAll scores every all-in hand, fanning hands out across workers
// and reassembling results in input order. A non-positive worker count
// uses one worker per CPU. Per-hand failures become skips; only context
// cancellation aborts the batch.
func (e *Evaluator) EvaluateAll(ctx context.Context, hands []*handlog.Hand, workers int) (*Batch, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type slot struct {
		record *Record
		skip   *Skip
	}
	slots := make([]slot, len(hands))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, hand := range hands {
		i, hand := i, hand
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			record, err := e.Evaluate(hand)
			switch {
			case err == nil:
				slots[i] = slot{record: record}
			case errors.Is(err, allin.ErrNoAllIn):
				// Most hands never see an all-in; not worth reporting.
			case errors.Is(err, allin.ErrInsufficientData),
				errors.Is(err, equity.ErrEnumerationLimit):
				slots[i] = slot{skip: &Skip{
					HandNumber: hand.Number,
					HandID:     hand.ID,
					Reason:     err.Error(),
				}}
			default:
				return err
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	batch := &Batch{}
	for _, s := range slots {
		if s.record != nil {
			batch.Records = append(batch.Records, s.record)
		}
		if s.skip != nil {
			batch.Skipped = append(batch.Skipped, *s.skip)
		}
	}
	return batch, nil
}
