package service

import (
	"context"
	"errors"

	"github.com/uptrace/bun"

	"github.com/tripmates/itinerary-backend/internal/model"
	"github.com/tripmates/itinerary-backend/internal/pkg/apperr"
	"github.com/tripmates/itinerary-backend/internal/repo"
)

type Membership struct {
	MembershipRepo *repo.Membership
}

func NewMembership(membershipRepo *repo.Membership) *Membership {
	return &Membership{
		MembershipRepo: membershipRepo,
	}
}

// AuthorizeCreatorAction checks that userID is the creator of itineraryID. On
// success the membership is returned with its itinerary attached. db may be a
// transaction so the check and the guarded write observe the same snapshot.
func (s *Membership) AuthorizeCreatorAction(ctx context.Context, db bun.IDB, userID, itineraryID int64) (*model.Membership, error) {
	membership, err := s.MembershipRepo.GetMembership(ctx, db, userID, itineraryID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrNotAMember
	} else if err != nil {
		return nil, err
	}

	if !membership.IsCreator {
		return nil, apperr.ErrNotCreator
	}

	return membership, nil
}
