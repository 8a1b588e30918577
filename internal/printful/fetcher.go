// Package printful reads orders from the Printful REST API.
//
// The orders collection is paged with limit/offset and Printful returns it
// newest first. Fetcher relies on that ordering: it walks pages from offset 0
// and stops as soon as it has seen an order older than the requested window.
// When the ordering does not hold the report may be incomplete, so every
// page is checked and a violation is logged as a warning.
//
// Required Environment Variables:
//   - PRINTFUL_API_KEY: Private token for the Printful store
//
// Printful API Limitations:
//   - Page size is capped at 100 orders
//   - Requests are rate limited; Fetcher pauses after every page
package printful

import (
	"context"
	"iter"
	"math"
	"time"

	"github.com/rs/zerolog"
	"vatreport/internal/logger"
	"vatreport/pkg/models"
)

// PageSize is the number of orders requested per page.
const PageSize = 100

// DefaultPageDelay is the pause after every fetched page.
const DefaultPageDelay = 100 * time.Millisecond

// PageSource returns one page of the orders collection.
type PageSource interface {
	ListOrders(ctx context.Context, offset, limit int) (*OrdersPage, error)
}

// Fetcher walks the orders collection backward in time.
type Fetcher struct {
	source PageSource
	delay  time.Duration
	pause  func(ctx context.Context, d time.Duration) error
	log    zerolog.Logger
}

// NewFetcher creates a fetcher pausing delay after each page.
func NewFetcher(source PageSource, delay time.Duration) *Fetcher {
	return &Fetcher{
		source: source,
		delay:  delay,
		pause:  pause,
		log:    logger.WithComponent("printful-fetcher"),
	}
}

// traversal is the paging state of one Orders run.
type traversal struct {
	offset      int
	total       int
	pages       int
	pastWindow  bool
	lastCreated int64
}

// done is the stop rule: an order older than the window was seen, or the
// next offset lies beyond the collection.
func (t *traversal) done() bool {
	if t.pages == 0 {
		return false
	}
	return t.pastWindow || t.offset >= t.total
}

// Orders lazily yields the orders created inside w, in the order Printful
// returns them. The first error ends the sequence.
func (f *Fetcher) Orders(ctx context.Context, w models.Window) iter.Seq2[models.Order, error] {
	return func(yield func(models.Order, error) bool) {
		state := traversal{lastCreated: math.MaxInt64}

		for !state.done() {
			page, err := f.source.ListOrders(ctx, state.offset, PageSize)
			if err != nil {
				yield(models.Order{}, err)
				return
			}
			if page.Paging == nil || page.Paging.Total == nil {
				yield(models.Order{}, NewAPIError("Orders", ErrInvalidResponse, "missing paging.total"))
				return
			}
			state.pages++

			inWindow, outOfOrder := 0, 0
			for _, order := range page.Result {
				if order.Created > state.lastCreated {
					outOfOrder++
				}
				state.lastCreated = order.Created

				switch {
				case w.Contains(order.Created):
					inWindow++
					if !yield(order, nil) {
						return
					}
				case w.Precedes(order.Created):
					state.pastWindow = true
				}
			}

			if outOfOrder > 0 {
				f.log.Warn().
					Int("offset", state.offset).
					Int("out_of_order", outOfOrder).
					Msg("Orders are not sorted newest first, report may be incomplete")
			}

			f.log.Info().
				Int("page", state.pages).
				Int("offset", state.offset).
				Int("orders", len(page.Result)).
				Int("in_window", inWindow).
				Bool("past_window", state.pastWindow).
				Msg("Processing...")

			state.offset += PageSize
			state.total = *page.Paging.Total

			// once per page, the last one included
			if err := f.pause(ctx, f.delay); err != nil {
				yield(models.Order{}, err)
				return
			}
		}

		f.log.Debug().
			Int("pages", state.pages).
			Msg("Order traversal finished")
	}
}

// pause waits d to stay under the Printful rate limit.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
