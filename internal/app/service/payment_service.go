package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"medicamp_api/internal/common"
	"medicamp_api/internal/domain/model"
	"medicamp_api/internal/domain/repository"
	"medicamp_api/internal/platform/lock"
	"medicamp_api/internal/platform/payment"
)

// maxIntentFees is the largest single charge the card gateway accepts.
const maxIntentFees = 999_999.99

type PaymentService struct {
	paymentRepo     repository.PaymentRepository
	participantRepo repository.ParticipantRepository
	gateway         payment.Gateway
	locker          lock.Locker
	now             func() time.Time
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	participantRepo repository.ParticipantRepository,
	gateway payment.Gateway,
	locker lock.Locker,
) *PaymentService {
	if locker == nil {
		locker = lock.NopLocker{}
	}
	return &PaymentService{
		paymentRepo:     paymentRepo,
		participantRepo: participantRepo,
		gateway:         gateway,
		locker:          locker,
		now:             time.Now,
	}
}

type IntentRequest struct {
	Fees float64 `json:"fees"`
}

type RecordPaymentRequest struct {
	Email         string  `json:"email"`
	CampFees      float64 `json:"campFees"`
	TransactionID string  `json:"transactionId"`
}

// CreatePaymentIntent asks the gateway for a card intent of fees, converted
// to minor units.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, req IntentRequest) (*payment.Intent, error) {
	if req.Fees <= 0 || math.IsNaN(req.Fees) || math.IsInf(req.Fees, 0) {
		return nil, common.Errorf("fees must be a positive amount: %w", common.ErrValidation)
	}
	if req.Fees > maxIntentFees {
		return nil, common.Errorf("fees must not exceed %.2f: %w", maxIntentFees, common.ErrValidation)
	}
	amount := int64(math.Round(req.Fees * 100))

	intent, err := s.gateway.CreateIntent(ctx, amount)
	if err != nil {
		if errors.Is(err, payment.ErrGatewayDisabled) {
			return nil, fmt.Errorf("%v: %w", err, common.ErrServiceUnavailable)
		}
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return intent, nil
}

// RecordPayment stores the payment, then marks the participant as paid. The
// status update is an unconditional $set and is therefore idempotent; it does
// not check that the stored payment belongs to the participant. A failed
// insert stops before the status update.
func (s *PaymentService) RecordPayment(ctx context.Context, participantIDHex, callerEmail string, req RecordPaymentRequest) (*model.PaymentRecord, error) {
	participantID, err := parseID(participantIDHex, "participant")
	if err != nil {
		return nil, err
	}
	txID := strings.TrimSpace(req.TransactionID)
	if txID == "" {
		return nil, common.Errorf("transactionId is required: %w", common.ErrValidation)
	}
	if req.CampFees < 0 {
		return nil, common.Errorf("campFees must not be negative: %w", common.ErrValidation)
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = callerEmail
	}

	release, err := s.locker.Acquire(ctx, lock.ParticipantKey(participantID.Hex()))
	if err != nil {
		return nil, fmt.Errorf("record payment for %s: %w", participantID.Hex(), err)
	}
	defer release()

	p := &model.Payment{
		ParticipantID: participantID,
		Email:         email,
		CampFees:      req.CampFees,
		TransactionID: txID,
		Date:          s.now().UTC(),
	}
	if err := s.paymentRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	rec := &model.PaymentRecord{Payment: p}
	matched, err := s.participantRepo.SetPaymentStatus(ctx, participantID, true)
	if err != nil {
		log.Printf("ERROR: payment %s stored but participant %s not flagged: %v", txID, participantID.Hex(), err)
		return rec, fmt.Errorf("payment stored, status update failed: %w", err)
	}
	if !matched {
		log.Printf("WARN: payment %s recorded for unknown participant %s", txID, participantID.Hex())
	}
	rec.StatusUpdated = matched
	return rec, nil
}

func (s *PaymentService) PaymentHistory(ctx context.Context, q model.PageQuery) (*model.Page[model.PaymentView], error) {
	if q.Page < 0 {
		q.Page = 0
	}
	return s.paymentRepo.History(ctx, q)
}
