package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/tripmates/itinerary-backend/internal/model"
	"github.com/tripmates/itinerary-backend/internal/pkg/apperr"
	"github.com/tripmates/itinerary-backend/internal/repo/selector"
)

type Itinerary struct {
	db  *bun.DB
	sel selector.S[model.Itinerary]
}

func NewItinerary(db *bun.DB) *Itinerary {
	return &Itinerary{
		db:  db,
		sel: selector.New[model.Itinerary](db),
	}
}

// CreateItinerary inserts itinerary and populates its store-assigned id.
func (r *Itinerary) CreateItinerary(ctx context.Context, idb bun.IDB, itinerary *model.Itinerary) error {
	now := time.Now()
	itinerary.CreatedAt = now
	itinerary.UpdatedAt = now

	_, err := idb.NewInsert().
		Model(itinerary).
		Exec(ctx)
	return err
}

func (r *Itinerary) GetItineraryByID(ctx context.Context, idb bun.IDB, itineraryID int64) (*model.Itinerary, error) {
	return r.sel.Using(idb).SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("it.id = ?", itineraryID)
	})
}

func (r *Itinerary) GetItineraryWithActivities(ctx context.Context, idb bun.IDB, itineraryID int64) (*model.Itinerary, error) {
	return r.sel.Using(idb).SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Relation("Activities", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Order("activity_order ASC", "id ASC")
			}).
			Where("it.id = ?", itineraryID)
	})
}

// UpdateItineraryColumns writes only the named columns of itinerary, plus updated_at.
func (r *Itinerary) UpdateItineraryColumns(ctx context.Context, idb bun.IDB, itinerary *model.Itinerary, columns ...string) error {
	itinerary.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	res, err := idb.NewUpdate().
		Model(itinerary).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteItinerary removes the itinerary row only. Callers are expected to have
// removed its activities and memberships in the same transaction beforehand.
func (r *Itinerary) DeleteItinerary(ctx context.Context, idb bun.IDB, itineraryID int64) error {
	res, err := idb.NewDelete().
		Model((*model.Itinerary)(nil)).
		Where("id = ?", itineraryID).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
