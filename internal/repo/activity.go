package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/tripmates/itinerary-backend/internal/model"
	"github.com/tripmates/itinerary-backend/internal/repo/selector"
)

type Activity struct {
	db  *bun.DB
	sel selector.S[model.Activity]
}

func NewActivity(db *bun.DB) *Activity {
	return &Activity{
		db:  db,
		sel: selector.New[model.Activity](db),
	}
}

// CreateActivities bulk-inserts activities in a single statement.
func (r *Activity) CreateActivities(ctx context.Context, idb bun.IDB, activities []*model.Activity) error {
	if len(activities) == 0 {
		return nil
	}

	now := time.Now()
	for _, activity := range activities {
		activity.CreatedAt = now
	}

	_, err := idb.NewInsert().
		Model(&activities).
		Exec(ctx)
	return err
}

func (r *Activity) GetActivitiesByItineraryID(ctx context.Context, idb bun.IDB, itineraryID int64) ([]*model.Activity, error) {
	return r.sel.Using(idb).SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("act.itinerary_id = ?", itineraryID).
			Order("activity_order ASC", "id ASC")
	})
}

func (r *Activity) DeleteActivitiesByItineraryID(ctx context.Context, idb bun.IDB, itineraryID int64) (int64, error) {
	res, err := idb.NewDelete().
		Model((*model.Activity)(nil)).
		Where("itinerary_id = ?", itineraryID).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
