package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/uptrace/bun"
	"go.uber.org/fx"

	"github.com/tripmates/itinerary-backend/internal/app/appconfig"
	"github.com/tripmates/itinerary-backend/internal/constant"
	"github.com/tripmates/itinerary-backend/internal/model"
	"github.com/tripmates/itinerary-backend/internal/model/types"
	"github.com/tripmates/itinerary-backend/internal/pkg/apperr"
	"github.com/tripmates/itinerary-backend/internal/pkg/chatgen"
	"github.com/tripmates/itinerary-backend/internal/pkg/jetstream"
	"github.com/tripmates/itinerary-backend/internal/pkg/observability"
	"github.com/tripmates/itinerary-backend/internal/repo"
	"github.com/tripmates/itinerary-backend/internal/util/activityparse"
)

// Generator produces the raw activity list for a trip.
type Generator interface {
	Generate(ctx context.Context, prompts *model.ItineraryPrompts) (string, error)
}

type ItineraryDeps struct {
	fx.In

	DB                *bun.DB
	Config            *appconfig.Config
	ItineraryRepo     *repo.Itinerary
	ActivityRepo      *repo.Activity
	MembershipRepo    *repo.Membership
	MembershipService *Membership
	Generator         Generator
	Publisher         jetstream.Publisher
}

// Itinerary runs the itinerary workflows. It holds no per-request state and is
// safe for concurrent use.
type Itinerary struct {
	db                *bun.DB
	generationTimeout time.Duration
	itineraryRepo     *repo.Itinerary
	activityRepo      *repo.Activity
	membershipRepo    *repo.Membership
	membershipService *Membership
	generator         Generator
	publisher         jetstream.Publisher
}

func NewItinerary(deps ItineraryDeps) *Itinerary {
	return &Itinerary{
		db:                deps.DB,
		generationTimeout: deps.Config.GenerationTimeout,
		itineraryRepo:     deps.ItineraryRepo,
		activityRepo:      deps.ActivityRepo,
		membershipRepo:    deps.MembershipRepo,
		membershipService: deps.MembershipService,
		generator:         deps.Generator,
		publisher:         deps.Publisher,
	}
}

// CreateItinerary generates activities for req.Prompts, then persists the
// itinerary, its activities and the creator membership in one transaction.
// The generation call happens before the transaction is opened.
func (s *Itinerary) CreateItinerary(ctx context.Context, req *types.CreateItineraryRequest) (*model.Itinerary, error) {
	raw, err := s.generate(ctx, req.Prompts)
	if err != nil {
		observability.ItineraryWorkflow.WithLabelValues("create", "generation_unavailable").Inc()
		log.Ctx(ctx).Warn().
			Str("evt.name", "itinerary.generation.failed").
			Err(err).
			Msg("activity generation failed")
		return nil, apperr.ErrGenerationUnavailable.Wrap(err)
	}

	records, err := activityparse.Parse(raw)
	if err != nil {
		observability.ItineraryWorkflow.WithLabelValues("create", "generation_malformed").Inc()
		log.Ctx(ctx).Warn().
			Str("evt.name", "itinerary.generation.malformed").
			Err(err).
			Int("raw.length", len(raw)).
			Msg("generated activities rejected")
		return nil, apperr.ErrGenerationMalformed.Msg("generated activities are malformed: %s", err.Error()).Wrap(err)
	}

	itinerary := &model.Itinerary{
		Name:             req.Name,
		Prompts:          req.Prompts,
		IsPublic:         req.IsPublic,
		MaxPax:           req.MaxPax,
		GenderPreference: req.GenderPreference,
	}
	var activities []*model.Activity

	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := s.itineraryRepo.CreateItinerary(ctx, tx, itinerary); err != nil {
			return errors.Wrap(err, "insert itinerary")
		}

		activities = toActivities(itinerary.ItineraryID, records)
		if err := s.activityRepo.CreateActivities(ctx, tx, activities); err != nil {
			return errors.Wrap(err, "insert activities")
		}

		if _, err := s.membershipRepo.CreateCreatorMembership(ctx, tx, req.UserID, itinerary.ItineraryID); err != nil {
			return errors.Wrap(err, "insert creator membership")
		}

		return nil
	})
	if err != nil {
		observability.ItineraryWorkflow.WithLabelValues("create", "creation_failed").Inc()
		log.Ctx(ctx).Error().
			Str("evt.name", "itinerary.create.rollback").
			Err(err).
			Int64("userId", req.UserID).
			Msg("itinerary creation rolled back")
		return nil, apperr.ErrCreationFailed.Msg("failed to create itinerary: %s", err.Error()).Wrap(err)
	}

	itinerary.Activities = activities

	observability.ItineraryWorkflow.WithLabelValues("create", "ok").Inc()
	observability.ActivitiesCreated.Add(float64(len(activities)))
	log.Ctx(ctx).Info().
		Str("evt.name", "itinerary.created").
		Int64("itineraryId", itinerary.ItineraryID).
		Int64("userId", req.UserID).
		Int("activities", len(activities)).
		Msg("itinerary created")

	s.publish(ctx, constant.ItinerarySubjectCreated, &types.ItineraryEvent{
		Kind:          types.ItineraryEventCreated,
		ItineraryID:   itinerary.ItineraryID,
		UserID:        req.UserID,
		Name:          itinerary.Name,
		ActivityCount: len(activities),
		OccurredAt:    itinerary.CreatedAt,
	})

	return itinerary, nil
}

// EditItinerary applies the fields present in req to the itinerary. Only its
// creator may edit it. Activities and memberships are left untouched.
func (s *Itinerary) EditItinerary(ctx context.Context, userID, itineraryID int64, req *types.EditItineraryRequest) (*model.Itinerary, error) {
	itinerary, err := s.itineraryRepo.GetItineraryByID(ctx, s.db, itineraryID)
	if err != nil {
		observability.ItineraryWorkflow.WithLabelValues("edit", outcomeOf(err)).Inc()
		return nil, err
	}

	if _, err := s.membershipService.AuthorizeCreatorAction(ctx, s.db, userID, itineraryID); err != nil {
		observability.ItineraryWorkflow.WithLabelValues("edit", outcomeOf(err)).Inc()
		return nil, err
	}

	columns := applyPatch(itinerary, req)
	if len(columns) == 0 {
		observability.ItineraryWorkflow.WithLabelValues("edit", "noop").Inc()
		return itinerary, nil
	}

	if err := s.itineraryRepo.UpdateItineraryColumns(ctx, s.db, itinerary, columns...); err != nil {
		observability.ItineraryWorkflow.WithLabelValues("edit", outcomeOf(err)).Inc()
		return nil, err
	}

	observability.ItineraryWorkflow.WithLabelValues("edit", "ok").Inc()
	log.Ctx(ctx).Info().
		Str("evt.name", "itinerary.edited").
		Int64("itineraryId", itineraryID).
		Int64("userId", userID).
		Strs("columns", columns).
		Msg("itinerary edited")

	return itinerary, nil
}

// DeleteItinerary removes the itinerary with all of its activities and
// memberships. Only its creator may delete it. The authorization check runs in
// the same transaction as the deletes.
func (s *Itinerary) DeleteItinerary(ctx context.Context, userID, itineraryID int64) (*types.DeleteConfirmation, error) {
	var (
		confirmation  *types.DeleteConfirmation
		activityCount int64
	)

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		membership, err := s.membershipService.AuthorizeCreatorAction(ctx, tx, userID, itineraryID)
		if err != nil {
			return err
		}
		if membership.Itinerary == nil {
			return apperr.ErrNotFound
		}

		activityCount, err = s.activityRepo.DeleteActivitiesByItineraryID(ctx, tx, itineraryID)
		if err != nil {
			return errors.Wrap(err, "delete activities")
		}

		if _, err := s.membershipRepo.DeleteMembershipsByItineraryID(ctx, tx, itineraryID); err != nil {
			return errors.Wrap(err, "delete memberships")
		}

		if err := s.itineraryRepo.DeleteItinerary(ctx, tx, itineraryID); err != nil {
			return errors.Wrap(err, "delete itinerary")
		}

		name := membership.Itinerary.Name
		confirmation = &types.DeleteConfirmation{
			Message:     fmt.Sprintf(constant.DeleteConfirmationFormat, name),
			ItineraryID: itineraryID,
			Name:        name,
		}
		return nil
	})
	if err != nil {
		observability.ItineraryWorkflow.WithLabelValues("delete", outcomeOf(err)).Inc()
		if _, ok := apperr.From(err); ok {
			return nil, err
		}
		log.Ctx(ctx).Error().
			Str("evt.name", "itinerary.delete.rollback").
			Err(err).
			Int64("itineraryId", itineraryID).
			Msg("itinerary deletion rolled back")
		return nil, err
	}

	observability.ItineraryWorkflow.WithLabelValues("delete", "ok").Inc()
	log.Ctx(ctx).Info().
		Str("evt.name", "itinerary.deleted").
		Int64("itineraryId", itineraryID).
		Int64("userId", userID).
		Int64("activities", activityCount).
		Msg("itinerary deleted")

	s.publish(ctx, constant.ItinerarySubjectDeleted, &types.ItineraryEvent{
		Kind:          types.ItineraryEventDeleted,
		ItineraryID:   itineraryID,
		UserID:        userID,
		Name:          confirmation.Name,
		ActivityCount: int(activityCount),
		OccurredAt:    time.Now(),
	})

	return confirmation, nil
}

// GetItinerary returns the itinerary with its activities in activity order.
func (s *Itinerary) GetItinerary(ctx context.Context, itineraryID int64) (*model.Itinerary, error) {
	return s.itineraryRepo.GetItineraryWithActivities(ctx, s.db, itineraryID)
}

func (s *Itinerary) generate(ctx context.Context, prompts *model.ItineraryPrompts) (string, error) {
	if s.generationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.generationTimeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := s.generator.Generate(ctx, prompts)
	if err == nil && strings.TrimSpace(raw) == "" {
		err = chatgen.ErrEmptyCompletion
	}
	observability.GenerationDuration.
		WithLabelValues(lo.Ternary(err == nil, "ok", "error")).
		Observe(time.Since(start).Seconds())

	return raw, err
}

// publish is best-effort: the change is already committed, so a failure is
// only logged and counted.
func (s *Itinerary) publish(ctx context.Context, subject string, event *types.ItineraryEvent) {
	msgID := fmt.Sprintf("%s:%d", event.Kind, event.ItineraryID)
	if err := s.publisher.Publish(ctx, subject, msgID, event); err != nil {
		observability.EventPublishFailures.WithLabelValues(subject).Inc()
		log.Ctx(ctx).Warn().
			Str("evt.name", "itinerary.event.publish_failed").
			Str("subject", subject).
			Int64("itineraryId", event.ItineraryID).
			Err(err).
			Msg("failed to publish itinerary event")
	}
}

func toActivities(itineraryID int64, records []*activityparse.Record) []*model.Activity {
	return lo.Map(records, func(r *activityparse.Record, _ int) *model.Activity {
		return &model.Activity{
			ItineraryID:       itineraryID,
			Date:              r.Date,
			Name:              r.Name,
			Description:       r.Description,
			Type:              r.Type,
			ActivityOrder:     r.ActivityOrder,
			TimeOfDay:         r.TimeOfDay,
			SuggestedDuration: r.SuggestedDuration,
			Location:          r.Location,
			Latitude:          r.Latitude,
			Longitude:         r.Longitude,
		}
	})
}

// applyPatch copies the present fields of req onto itinerary and returns the
// columns that need writing.
func applyPatch(itinerary *model.Itinerary, req *types.EditItineraryRequest) []string {
	var columns []string
	if req.Name.Valid {
		itinerary.Name = req.Name.String
		columns = append(columns, "name")
	}
	if req.Prompts != nil {
		itinerary.Prompts = req.Prompts
		columns = append(columns, "prompts")
	}
	if req.IsPublic.Valid {
		itinerary.IsPublic = req.IsPublic.Bool
		columns = append(columns, "is_public")
	}
	if req.MaxPax.Valid {
		itinerary.MaxPax = int(req.MaxPax.Int64)
		columns = append(columns, "max_pax")
	}
	if req.GenderPreference.Valid {
		itinerary.GenderPreference = req.GenderPreference.String
		columns = append(columns, "gender_preference")
	}
	return columns
}

func outcomeOf(err error) string {
	if e, ok := apperr.From(err); ok {
		return strings.ToLower(e.ErrorCode)
	}
	return "error"
}
