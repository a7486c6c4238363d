// Daily price repository. The "daily_price" collection is an append-only,
// time-ordered feed; the dashboard only ever reads its single most recent
// entry, either on demand (Latest) or through a push subscription (Watch).
package repo

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/store"
)

// RateEvent is one push notification from Watch. A nil Rate with a nil
// Err is the explicit empty state: the feed has no entries yet.
type RateEvent struct {
	Rate *domain.Rate
	Err  error
}

// RateRepo reads and appends daily price entries.
type RateRepo struct {
	store store.DocumentStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewRateRepo constructs a RateRepo.
func NewRateRepo(s store.DocumentStore, log zerolog.Logger) *RateRepo {
	return &RateRepo{store: s, log: log, now: time.Now}
}

// Latest returns the most recent entry, or (nil, nil) when the feed is
// empty — callers distinguish "no rate yet" from a query failure.
func (r *RateRepo) Latest(ctx context.Context) (*domain.Rate, error) {
	doc, err := r.store.Latest(ctx, colDailyPrice, "createdAt")
	if err == store.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		r.log.Error().Err(err).Msg("latest rate")
		return nil, err
	}
	rate := decodeRate(doc)
	return &rate, nil
}

// Watch subscribes to the most recent entry. Every event carries a full
// replacement snapshot, never a merge, since only one document is
// tracked; events arrive in store-emitted order, at most once per store
// change. The subscription ends and the channel closes when ctx is
// cancelled, on every exit path.
func (r *RateRepo) Watch(ctx context.Context) (<-chan RateEvent, error) {
	events, err := r.store.WatchLatest(ctx, colDailyPrice, "createdAt")
	if err != nil {
		r.log.Error().Err(err).Msg("watch rate feed")
		return nil, err
	}

	out := make(chan RateEvent, 1)
	go func() {
		defer close(out)
		for ev := range events {
			re := RateEvent{Err: ev.Err}
			if ev.Doc != nil {
				rate := decodeRate(*ev.Doc)
				re.Rate = &rate
			}
			if re.Err != nil {
				r.log.Error().Err(re.Err).Msg("rate feed stream")
			}
			select {
			case out <- re:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Post appends a new price entry, recording the previous latest price as
// oldPrice. Entries are immutable once written.
func (r *RateRepo) Post(ctx context.Context, newPrice float64) (string, error) {
	var oldPrice float64
	if latest, err := r.Latest(ctx); err != nil {
		return "", err
	} else if latest != nil {
		oldPrice = latest.NewPrice
	}

	id, err := r.store.Create(ctx, colDailyPrice, map[string]any{
		"newPrice":  newPrice,
		"oldPrice":  oldPrice,
		"createdAt": r.now(),
	})
	if err != nil {
		r.log.Error().Err(err).Msg("post rate")
		return "", err
	}
	return id, nil
}

func decodeRate(d store.Document) domain.Rate {
	return domain.Rate{
		ID:        d.ID,
		NewPrice:  docFloat(d.Data, "newPrice"),
		OldPrice:  docFloat(d.Data, "oldPrice"),
		CreatedAt: docTime(d.Data, "createdAt"),
	}
}
