package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/ribukumar49/leave-management-mini/internal/employee"
	employeeerrors "github.com/ribukumar49/leave-management-mini/internal/employee/errors"
	"github.com/ribukumar49/leave-management-mini/internal/events"
	leaveerrors "github.com/ribukumar49/leave-management-mini/internal/leave/errors"
	"github.com/ribukumar49/leave-management-mini/internal/messaging/kafka"
	"github.com/ribukumar49/leave-management-mini/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveResponse, error)
	Decide(ctx context.Context, id string, req DecideLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, employeeID, statusFilter string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Balance(ctx context.Context, employeeID string, year int) (BalanceResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employees employee.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, employees, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		outbox:    outboxRepo,
		logger:    l,
	}
}

// Submit validates a new leave request and persists it as PENDING.
// Validation order is fixed: employee existence, date ordering, joining
// date, overlap, balance. The first failure wins and nothing is written.
func (s *service) Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	emp, err := s.employees.WithTx(tx).FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("submit leave employee lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if startDate.Before(emp.JoiningDate) {
		s.logger.Warn("submit leave before joining date",
			zap.String("employee_id", req.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("joining_date", emp.JoiningDate.Format("2006-01-02")),
		)
		return LeaveResponse{}, leaveerrors.ErrBeforeJoiningDate
	}

	existing, err := qtx.FindAllByEmployee(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("submit leave load existing requests failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if conflict := FindOverlapping(existing, startDate, endDate); conflict != nil {
		s.logger.Warn("submit leave overlap detected",
			zap.String("employee_id", req.EmployeeID),
			zap.String("conflicting_id", conflict.ID.String()),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	// Balance is anchored to the start date's year even when the range
	// crosses into the next year. Inherited behavior, kept on purpose.
	bal := ComputeYearlyBalance(existing, startDate.Year())
	requested := InclusiveDayCount(startDate, endDate)
	if requested > bal.Remaining() {
		s.logger.Warn("submit leave insufficient balance",
			zap.String("employee_id", req.EmployeeID),
			zap.Int("requested", requested),
			zap.Int("remaining", bal.Remaining()),
		)
		return LeaveResponse{}, leaveerrors.ErrInsufficientBalance(bal.Remaining())
	}

	lr := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     req.Reason,
		Status:     StatusPending,
	}

	if err := qtx.Create(ctx, lr); err != nil {
		s.logger.Warn("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", lr.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("total_days", requested),
	)

	lr.Employee = emp
	return mapToResponse(*lr), nil
}

// Decide moves a PENDING request to APPROVED or REJECTED. Approval
// re-derives the balance from current records inside the same
// transaction as the status write; a figure computed at submission time
// may be stale by now.
func (s *service) Decide(ctx context.Context, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("decision", req.Decision),
	)

	decision, err := ParseDecision(req.Decision)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDecision
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lr, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if lr.Status != StatusPending {
		s.logger.Warn("decide leave already decided",
			zap.String("leave_id", id),
			zap.String("status", string(lr.Status)),
		)
		return LeaveResponse{}, leaveerrors.ErrAlreadyDecided
	}

	switch decision {
	case DecisionReject:
		// Rejection frees days; no balance check.
		lr.Status = StatusRejected
	case DecisionApprove:
		records, err := qtx.FindAllByEmployee(ctx, lr.EmployeeID.String())
		if err != nil {
			s.logger.Error("decide leave load requests failed", zap.Error(err))
			return LeaveResponse{}, err
		}

		// The request itself is still PENDING in records, so it
		// contributes to PendingDays and never to the remaining figure.
		bal := ComputeYearlyBalance(records, lr.StartDate.Year())
		requested := InclusiveDayCount(lr.StartDate, lr.EndDate)
		if requested > bal.Remaining() {
			s.logger.Warn("decide leave insufficient balance at approval time",
				zap.String("leave_id", id),
				zap.Int("requested", requested),
				zap.Int("remaining", bal.Remaining()),
			)
			// The decision fails; the request stays PENDING.
			return LeaveResponse{}, leaveerrors.ErrInsufficientBalance(bal.Remaining())
		}
		lr.Status = StatusApproved
	}

	if err := qtx.Update(ctx, lr); err != nil {
		s.logger.Error("decide leave persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if s.outbox != nil {
		event := events.LeaveDecidedEvent{
			EventType:  "leave_decided",
			RequestID:  rid,
			LeaveID:    lr.ID.String(),
			EmployeeID: lr.EmployeeID.String(),
			StartDate:  lr.StartDate.Format("2006-01-02"),
			EndDate:    lr.EndDate.Format("2006-01-02"),
			TotalDays:  InclusiveDayCount(lr.StartDate, lr.EndDate),
			Status:     string(lr.Status),
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal leave decided event failed", zap.Error(err))
			return LeaveResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "leave_request",
			AggregateID:   lr.ID.String(),
			EventType:     event.EventType,
			Topic:         events.LeaveDecidedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("decide leave outbox persist failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	s.logger.Info("decide leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("status", string(lr.Status)),
	)
	return mapToResponse(*lr), nil
}

func (s *service) GetAll(ctx context.Context, employeeID, statusFilter string) ([]LeaveResponse, error) {
	filter := ListFilter{EmployeeID: employeeID}
	if statusFilter != "" {
		status, err := ParseStatus(statusFilter)
		if err != nil {
			return nil, leaveerrors.ErrInvalidStatusFilter
		}
		filter.Status = &status
	}

	leaves, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*lr), nil
}

// Balance reports the yearly accounting for an employee. A zero year
// means the current calendar year.
func (s *service) Balance(ctx context.Context, employeeID string, year int) (BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return BalanceResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return BalanceResponse{}, err
	}

	records, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("balance load requests failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	bal := ComputeYearlyBalance(records, year)
	remaining := bal.Remaining()
	if remaining < 0 {
		// Display floor only; checks elsewhere keep the raw value.
		remaining = 0
	}

	return BalanceResponse{
		EmployeeID:     employeeID,
		Year:           year,
		TotalAllowance: AnnualAllowance,
		ApprovedUsed:   bal.ApprovedDays,
		Pending:        bal.PendingDays,
		Remaining:      remaining,
	}, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(lr LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:         lr.ID.String(),
		EmployeeID: lr.EmployeeID.String(),
		StartDate:  lr.StartDate.Format("2006-01-02"),
		EndDate:    lr.EndDate.Format("2006-01-02"),
		TotalDays:  InclusiveDayCount(lr.StartDate, lr.EndDate),
		Reason:     lr.Reason,
		Status:     string(lr.Status),
		CreatedAt:  lr.CreatedAt.UTC().Format(time.RFC3339),
	}
	if lr.Employee != nil {
		resp.EmployeeName = lr.Employee.Name
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, lr := range leaves {
		resp[i] = mapToResponse(lr)
	}
	return resp
}
