package repo

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/tripmates/itinerary-backend/internal/model"
	"github.com/tripmates/itinerary-backend/internal/repo/selector"
)

// ErrCreatorExists is returned when a second creator membership is written for an itinerary.
var ErrCreatorExists = errors.New("itinerary already has a creator")

type Membership struct {
	db  *bun.DB
	sel selector.S[model.Membership]
}

func NewMembership(db *bun.DB) *Membership {
	return &Membership{
		db:  db,
		sel: selector.New[model.Membership](db),
	}
}

// GetMembership returns the (user, itinerary) membership with the itinerary attached.
func (r *Membership) GetMembership(ctx context.Context, idb bun.IDB, userID, itineraryID int64) (*model.Membership, error) {
	return r.sel.Using(idb).SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Relation("Itinerary").
			Where("ui.user_id = ?", userID).
			Where("ui.itinerary_id = ?", itineraryID)
	})
}

func (r *Membership) GetMembershipsByItineraryID(ctx context.Context, idb bun.IDB, itineraryID int64) ([]*model.Membership, error) {
	return r.sel.Using(idb).SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("ui.itinerary_id = ?", itineraryID).
			Order("user_id ASC")
	})
}

// CreateCreatorMembership makes userID the creator of itineraryID. It refuses to
// write a second creator for the same itinerary.
func (r *Membership) CreateCreatorMembership(ctx context.Context, idb bun.IDB, userID, itineraryID int64) (*model.Membership, error) {
	exists, err := idb.NewSelect().
		Model((*model.Membership)(nil)).
		Where("ui.itinerary_id = ?", itineraryID).
		Where("ui.is_creator = ?", true).
		Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCreatorExists
	}

	return r.create(ctx, idb, userID, itineraryID, true)
}

// AddMember adds userID to itineraryID without creator rights.
func (r *Membership) AddMember(ctx context.Context, idb bun.IDB, userID, itineraryID int64) (*model.Membership, error) {
	return r.create(ctx, idb, userID, itineraryID, false)
}

func (r *Membership) DeleteMembershipsByItineraryID(ctx context.Context, idb bun.IDB, itineraryID int64) (int64, error) {
	res, err := idb.NewDelete().
		Model((*model.Membership)(nil)).
		Where("itinerary_id = ?", itineraryID).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *Membership) create(ctx context.Context, idb bun.IDB, userID, itineraryID int64, isCreator bool) (*model.Membership, error) {
	membership := &model.Membership{
		UserID:      userID,
		ItineraryID: itineraryID,
		IsCreator:   isCreator,
		CreatedAt:   time.Now(),
	}

	_, err := idb.NewInsert().
		Model(membership).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return membership, nil
}
