package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/tripmates/itinerary-backend/internal/model"
	"github.com/tripmates/itinerary-backend/internal/pkg/apperr"
	"github.com/tripmates/itinerary-backend/internal/pkg/testdb"
	"github.com/tripmates/itinerary-backend/internal/repo"
	"github.com/tripmates/itinerary-backend/internal/service"
)

func TestAuthorizeCreatorAction(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	itineraryRepo := repo.NewItinerary(db)
	membershipRepo := repo.NewMembership(db)
	authority := service.NewMembership(membershipRepo)

	itinerary := &model.Itinerary{Name: "Lisbon", MaxPax: 2}
	require.NoError(t, itineraryRepo.CreateItinerary(ctx, db, itinerary))
	_, err := membershipRepo.CreateCreatorMembership(ctx, db, 10, itinerary.ItineraryID)
	require.NoError(t, err)
	_, err = membershipRepo.AddMember(ctx, db, 11, itinerary.ItineraryID)
	require.NoError(t, err)

	membership, err := authority.AuthorizeCreatorAction(ctx, db, 10, itinerary.ItineraryID)
	require.NoError(t, err)
	assert.True(t, membership.IsCreator)
	require.NotNil(t, membership.Itinerary)
	assert.Equal(t, "Lisbon", membership.Itinerary.Name)

	_, err = authority.AuthorizeCreatorAction(ctx, db, 11, itinerary.ItineraryID)
	assert.ErrorIs(t, err, apperr.ErrNotCreator)

	_, err = authority.AuthorizeCreatorAction(ctx, db, 12, itinerary.ItineraryID)
	assert.ErrorIs(t, err, apperr.ErrNotAMember)

	_, err = authority.AuthorizeCreatorAction(ctx, db, 10, itinerary.ItineraryID+1)
	assert.ErrorIs(t, err, apperr.ErrNotAMember)

	err = db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := authority.AuthorizeCreatorAction(ctx, tx, 10, itinerary.ItineraryID)
		return err
	})
	assert.NoError(t, err)
}
