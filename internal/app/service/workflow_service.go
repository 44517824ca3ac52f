package service

import (
	"context"

	"github.com/travelapp/flight-booking-client/internal/app/dto"
	"github.com/travelapp/flight-booking-client/internal/app/workflow"
	"github.com/travelapp/flight-booking-client/internal/pkg/logger"
)

// SessionStore resolves the workflow controller for a session.
type SessionStore interface {
	Controller(sessionID string) *workflow.Controller
}

// WorkflowService adapts per-session workflow controllers to the
// endpoints layer: it resolves the caller's session from the context and
// forwards the user intent to that session's controller.
type WorkflowService struct {
	sessions SessionStore
}

func NewWorkflowService(sessions SessionStore) *WorkflowService {
	return &WorkflowService{
		sessions: sessions,
	}
}

func (s *WorkflowService) controller(ctx context.Context) *workflow.Controller {
	sessionID, _ := ctx.Value(logger.SessionIDKey).(string)

	return s.sessions.Controller(sessionID)
}

func (s *WorkflowService) SubmitSearch(ctx context.Context, criteria dto.SearchCriteria) (workflow.State, error) {
	return s.controller(ctx).SubmitSearch(criteria)
}

func (s *WorkflowService) SetSortKey(ctx context.Context, key dto.SortKey) (workflow.State, error) {
	return s.controller(ctx).SetSortKey(key)
}

func (s *WorkflowService) OpenBooking(ctx context.Context, flightID string) (workflow.State, error) {
	return s.controller(ctx).OpenBooking(flightID)
}

func (s *WorkflowService) SubmitPassenger(ctx context.Context, draft dto.PassengerDraft) (workflow.State, error) {
	return s.controller(ctx).SubmitPassenger(draft)
}

func (s *WorkflowService) FieldEdited(ctx context.Context, field string) (workflow.State, error) {
	return s.controller(ctx).FieldEdited(field)
}

func (s *WorkflowService) OpenConfirmation(ctx context.Context, reference string) (workflow.State, error) {
	return s.controller(ctx).OpenConfirmation(reference)
}

func (s *WorkflowService) StartOver(ctx context.Context) (workflow.State, error) {
	return s.controller(ctx).StartOver(), nil
}

func (s *WorkflowService) CurrentState(ctx context.Context) (workflow.State, error) {
	return s.controller(ctx).State(), nil
}
