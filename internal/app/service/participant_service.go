package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"medicamp_api/internal/common"
	"medicamp_api/internal/domain/model"
	"medicamp_api/internal/domain/repository"
	"medicamp_api/internal/platform/lock"
)

// ParticipantService owns registration and cancellation, the two writes that
// keep Camp.participantCount in step with the participants collection.
//
// Both are two-phase and eventually consistent: the participant write and the
// counter write are separate store calls, each reported on its own. A failure
// in the second phase is returned to the caller but the first phase is not
// undone.
type ParticipantService struct {
	participantRepo repository.ParticipantRepository
	campRepo        repository.CampRepository
	locker          lock.Locker
	now             func() time.Time
}

func NewParticipantService(participantRepo repository.ParticipantRepository, campRepo repository.CampRepository, locker lock.Locker) *ParticipantService {
	if locker == nil {
		locker = lock.NopLocker{}
	}
	return &ParticipantService{
		participantRepo: participantRepo,
		campRepo:        campRepo,
		locker:          locker,
		now:             time.Now,
	}
}

type RegisterRequest struct {
	ParticipantName  string `json:"participantName"`
	ParticipantEmail string `json:"participantEmail"`
	Age              int    `json:"age"`
	Phone            string `json:"phone"`
	Gender           string `json:"gender"`
	EmergencyContact string `json:"emergencyContact"`
}

// RegisterParticipant inserts a participant for campIDHex and, when that camp
// exists, increments its participantCount by one. A participant registered for
// an unknown camp is still stored. The email defaults to the caller's.
func (s *ParticipantService) RegisterParticipant(ctx context.Context, campIDHex, callerEmail string, req RegisterRequest) (*model.Registration, error) {
	campID, err := parseID(campIDHex, "camp")
	if err != nil {
		return nil, err
	}
	email := strings.TrimSpace(req.ParticipantEmail)
	if email == "" {
		email = callerEmail
	}
	if email == "" {
		return nil, common.Errorf("participantEmail is required: %w", common.ErrValidation)
	}
	if req.Age < 0 {
		return nil, common.Errorf("age must not be negative: %w", common.ErrValidation)
	}

	release, err := s.locker.Acquire(ctx, lock.CampKey(campID.Hex()))
	if err != nil {
		return nil, fmt.Errorf("register for camp %s: %w", campID.Hex(), err)
	}
	defer release()

	participant := &model.Participant{
		CampID:             campID,
		ParticipantName:    req.ParticipantName,
		ParticipantEmail:   email,
		Age:                req.Age,
		Phone:              req.Phone,
		Gender:             req.Gender,
		EmergencyContact:   req.EmergencyContact,
		PaymentStatus:      false,
		ConfirmationStatus: false,
		CreatedAt:          s.now().UTC(),
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		return nil, fmt.Errorf("failed to insert participant: %w", err)
	}

	reg := &model.Registration{Participant: participant}
	matched, err := s.campRepo.AddParticipants(ctx, campID, 1)
	if err != nil {
		log.Printf("ERROR: participant %s stored but counter of camp %s not incremented: %v", participant.ID.Hex(), campID.Hex(), err)
		return reg, fmt.Errorf("participant stored, counter update failed: %w", err)
	}
	reg.CampFound = matched
	reg.CounterIncreased = matched
	if !matched {
		log.Printf("WARN: participant %s registered for unknown camp %s", participant.ID.Hex(), campID.Hex())
	}
	return reg, nil
}

// CancelParticipant deletes the participant and decrements the camp counter.
// The decrement runs even when nothing was deleted, so repeated or stale
// cancellations drive the counter down (and possibly below zero).
// TODO: gate the decrement on Cancellation.Deleted once clients stop relying
// on the unconditional decrement.
func (s *ParticipantService) CancelParticipant(ctx context.Context, participantIDHex, campIDHex string) (*model.Cancellation, error) {
	participantID, err := parseID(participantIDHex, "participant")
	if err != nil {
		return nil, err
	}
	campID, err := parseID(campIDHex, "camp")
	if err != nil {
		return nil, err
	}

	release, err := s.locker.Acquire(ctx, lock.CampKey(campID.Hex()))
	if err != nil {
		return nil, fmt.Errorf("cancel for camp %s: %w", campID.Hex(), err)
	}
	defer release()

	deleted, err := s.participantRepo.Delete(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete participant: %w", err)
	}
	if !deleted {
		log.Printf("WARN: cancel matched no participant %s, decrementing camp %s anyway", participantID.Hex(), campID.Hex())
	}

	res := &model.Cancellation{Deleted: deleted}
	matched, err := s.campRepo.AddParticipants(ctx, campID, -1)
	if err != nil {
		return res, fmt.Errorf("participant deleted, counter update failed: %w", err)
	}
	res.CounterDecreased = matched
	return res, nil
}

func (s *ParticipantService) ConfirmParticipant(ctx context.Context, participantIDHex string) error {
	id, err := parseID(participantIDHex, "participant")
	if err != nil {
		return err
	}
	matched, err := s.participantRepo.SetConfirmationStatus(ctx, id, true)
	if err != nil {
		return fmt.Errorf("failed to confirm participant: %w", err)
	}
	if !matched {
		return fmt.Errorf("participant %s: %w", id.Hex(), common.ErrNotFound)
	}
	return nil
}

// ListParticipants returns one page of participants joined with their camps.
func (s *ParticipantService) ListParticipants(ctx context.Context, q model.PageQuery) (*model.Page[model.ParticipantView], error) {
	if q.Page < 0 {
		q.Page = 0
	}
	return s.participantRepo.ListView(ctx, q)
}
