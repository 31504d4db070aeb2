package service

import (
	"context"
	"encoding/json"
	"errors"

	"trasporto-backend/internal/apperr"
	"trasporto-backend/internal/model"
	"trasporto-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransportInput struct {
	Date             string `json:"date" binding:"required"`
	StartTime        string `json:"startTime" binding:"required"`
	EndTime          string `json:"endTime"`
	UserID           string `json:"userId" binding:"required"`
	DriverID         string `json:"driverId" binding:"required"`
	DestinationID    string `json:"destinationId" binding:"required"`
	IsRecurring      bool   `json:"isRecurring"`
	RecurringType    string `json:"recurringType"`
	RecurringEndDate string `json:"recurringEndDate"`
	Notes            string `json:"notes"`
}

// TransportService owns the recurring schedule expander and per-occurrence
// CRUD. A recurring submission fans out into independent sibling rows; the
// whole fan-out runs inside one transaction.
type TransportService interface {
	Create(ctx context.Context, in TransportInput, actingAccountID string) ([]model.Transport, error)
	List(ctx context.Context) ([]model.Transport, error)
	GetByID(ctx context.Context, id string) (*model.Transport, error)
	Update(ctx context.Context, id string, in TransportInput) (*model.Transport, error)
	Delete(ctx context.Context, id string) error
}

type transportService struct {
	transports   repository.TransportRepository
	persons      repository.PersonRepository
	drivers      repository.DriverRepository
	destinations repository.DestinationRepository
	audits       repository.AuditLogRepository
	txm          repository.TransactionManager
}

func NewTransportService(
	transports repository.TransportRepository,
	persons repository.PersonRepository,
	drivers repository.DriverRepository,
	destinations repository.DestinationRepository,
	audits repository.AuditLogRepository,
	txm repository.TransactionManager,
) TransportService {
	return &transportService{
		transports:   transports,
		persons:      persons,
		drivers:      drivers,
		destinations: destinations,
		audits:       audits,
		txm:          txm,
	}
}

// validate checks times, date and references, and returns the normalized
// input. Nothing is persisted before it passes.
func (s *transportService) validate(ctx context.Context, in TransportInput) (TransportInput, error) {
	start, err := normalizeTime(in.StartTime)
	if err != nil {
		return in, err
	}
	in.StartTime = start

	if in.EndTime != "" {
		end, err := normalizeTime(in.EndTime)
		if err != nil {
			return in, err
		}
		in.EndTime = end
	}

	if _, err := parseDate(in.Date, "date"); err != nil {
		return in, err
	}

	if _, err := s.persons.GetByID(ctx, in.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return in, apperr.Validation("userId does not reference an existing user")
		}
		return in, apperr.Internal(err)
	}
	if _, err := s.drivers.GetByID(ctx, in.DriverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return in, apperr.Validation("driverId does not reference an existing driver")
		}
		return in, apperr.Internal(err)
	}
	if _, err := s.destinations.GetByID(ctx, in.DestinationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return in, apperr.Validation("destinationId does not reference an existing destination")
		}
		return in, apperr.Internal(err)
	}

	return in, nil
}

func (s *transportService) buildRow(in TransportInput, date string) (*model.Transport, error) {
	userID, err := uuid.Parse(in.UserID)
	if err != nil {
		return nil, apperr.Validation("invalid userId")
	}
	driverID, err := uuid.Parse(in.DriverID)
	if err != nil {
		return nil, apperr.Validation("invalid driverId")
	}
	destinationID, err := uuid.Parse(in.DestinationID)
	if err != nil {
		return nil, apperr.Validation("invalid destinationId")
	}
	return &model.Transport{
		Date:             date,
		StartTime:        in.StartTime,
		EndTime:          in.EndTime,
		UserID:           userID,
		DriverID:         driverID,
		DestinationID:    destinationID,
		IsRecurring:      in.IsRecurring,
		RecurringType:    in.RecurringType,
		RecurringEndDate: in.RecurringEndDate,
		Notes:            in.Notes,
	}, nil
}

// Create persists one occurrence, or expands a recurring submission into
// one row per generated date. Recurrence fields are denormalized onto every
// row; the rows share no other linkage, so later edits and deletes stay
// per-occurrence.
func (s *transportService) Create(ctx context.Context, in TransportInput, actingAccountID string) ([]model.Transport, error) {
	in, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	dates := []string{in.Date}
	if in.IsRecurring {
		if in.RecurringType == "" || in.RecurringEndDate == "" {
			return nil, apperr.Validation("recurringType and recurringEndDate are required for recurring transports")
		}
		start, err := parseDate(in.Date, "date")
		if err != nil {
			return nil, err
		}
		end, err := parseDate(in.RecurringEndDate, "recurringEndDate")
		if err != nil {
			return nil, err
		}
		dates, err = occurrenceDates(start, end, in.RecurringType)
		if err != nil {
			return nil, err
		}
	}

	created := make([]model.Transport, 0, len(dates))
	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		var createdIDs []string
		for _, date := range dates {
			row, err := s.buildRow(in, date)
			if err != nil {
				return err
			}
			if err := s.transports.Create(txCtx, row); err != nil {
				// the transaction rolls the earlier inserts back; the ids
				// report where the batch broke
				return apperr.PartialFailure(createdIDs, err)
			}
			createdIDs = append(createdIDs, row.ID.String())
			created = append(created, *row)
		}

		if len(created) > 1 {
			return s.auditBatch(txCtx, actingAccountID, createdIDs, in)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *transportService) auditBatch(ctx context.Context, actingAccountID string, createdIDs []string, in TransportInput) error {
	var actorID *uuid.UUID
	if parsed, err := uuid.Parse(actingAccountID); err == nil {
		actorID = &parsed
	}
	details, _ := json.Marshal(map[string]interface{}{
		"recurringType":    in.RecurringType,
		"recurringEndDate": in.RecurringEndDate,
		"occurrences":      len(createdIDs),
	})
	entry := &model.AuditLog{
		AccountID:  actorID,
		Action:     model.ActionCreateTransportBatch,
		EntityID:   createdIDs[0],
		EntityName: "transport batch",
		Details:    string(details),
	}
	if err := s.audits.Create(ctx, entry); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *transportService) List(ctx context.Context) ([]model.Transport, error) {
	transports, err := s.transports.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return transports, nil
}

func (s *transportService) GetByID(ctx context.Context, id string) (*model.Transport, error) {
	transport, err := s.transports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("transport not found")
		}
		return nil, apperr.Internal(err)
	}
	return transport, nil
}

// Update replaces all mutable fields of one occurrence. Sibling occurrences
// from the same recurring batch are never touched.
func (s *transportService) Update(ctx context.Context, id string, in TransportInput) (*model.Transport, error) {
	transport, err := s.transports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("transport not found")
		}
		return nil, apperr.Internal(err)
	}

	in, err = s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	row, err := s.buildRow(in, in.Date)
	if err != nil {
		return nil, err
	}
	row.ID = transport.ID
	row.CreatedAt = transport.CreatedAt

	if err := s.transports.Update(ctx, row); err != nil {
		return nil, apperr.Internal(err)
	}
	return row, nil
}

func (s *transportService) Delete(ctx context.Context, id string) error {
	if _, err := s.transports.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("transport not found")
		}
		return apperr.Internal(err)
	}
	if err := s.transports.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
