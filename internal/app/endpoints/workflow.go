package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/travelapp/flight-booking-client/internal/app/dto"
	"github.com/travelapp/flight-booking-client/internal/app/workflow"
)

// WorkflowService is the booking workflow surface exposed over HTTP.
type WorkflowService interface {
	SubmitSearch(ctx context.Context, criteria dto.SearchCriteria) (workflow.State, error)
	SetSortKey(ctx context.Context, key dto.SortKey) (workflow.State, error)
	OpenBooking(ctx context.Context, flightID string) (workflow.State, error)
	SubmitPassenger(ctx context.Context, draft dto.PassengerDraft) (workflow.State, error)
	FieldEdited(ctx context.Context, field string) (workflow.State, error)
	OpenConfirmation(ctx context.Context, reference string) (workflow.State, error)
	StartOver(ctx context.Context) (workflow.State, error)
	CurrentState(ctx context.Context) (workflow.State, error)
}

type Endpoints struct {
	Workflow WorkflowEndpoint
}

type WorkflowEndpoint struct {
	SubmitSearch     endpoint.Endpoint
	SetSortKey       endpoint.Endpoint
	OpenBooking      endpoint.Endpoint
	SubmitPassenger  endpoint.Endpoint
	FieldEdited      endpoint.Endpoint
	OpenConfirmation endpoint.Endpoint
	StartOver        endpoint.Endpoint
	CurrentState     endpoint.Endpoint
}

func MakeWorkflowEndpoint(service WorkflowService) WorkflowEndpoint {
	return WorkflowEndpoint{
		SubmitSearch:     makeSubmitSearchEndpoint(service),
		SetSortKey:       makeSetSortKeyEndpoint(service),
		OpenBooking:      makeOpenBookingEndpoint(service),
		SubmitPassenger:  makeSubmitPassengerEndpoint(service),
		FieldEdited:      makeFieldEditedEndpoint(service),
		OpenConfirmation: makeOpenConfirmationEndpoint(service),
		StartOver:        makeStartOverEndpoint(service),
		CurrentState:     makeCurrentStateEndpoint(service),
	}
}

func makeSubmitSearchEndpoint(service WorkflowService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		criteria, ok := req.(*dto.SearchCriteria)
		if !ok || criteria == nil {
			return nil, errors.New("invalid type")
		}

		state, err := service.SubmitSearch(ctx, *criteria)
		if err != nil {
			return nil, fmt.Errorf("workflow service: %w", err)
		}

		return state, nil
	}
}

func makeSetSortKeyEndpoint(service WorkflowService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.SortRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		state, err := service.SetSortKey(ctx, request.SortBy)
		if err != nil {
			return nil, fmt.Errorf("workflow service: %w", err)
		}

		return state, nil
	}
}

func makeOpenBookingEndpoint(service WorkflowService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		flightID, ok := req.(string)
		if !ok {
			return nil, errors.New("invalid type")
		}

		state, err := service.OpenBooking(ctx, flightID)
		if err != nil {
			return nil, fmt.Errorf("workflow service: %w", err)
		}

		return state, nil
	}
}

func makeSubmitPassengerEndpoint(service WorkflowService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		draft, ok := req.(*dto.PassengerDraft)
		if !ok || draft == nil {
			return nil, errors.New("invalid type")
		}

		state, err := service.SubmitPassenger(ctx, *draft)
		if err != nil {
			return nil, fmt.Errorf("workflow service: %w", err)
		}

		return state, nil
	}
}

func makeFieldEditedEndpoint(service WorkflowService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.FieldEditRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		state, err := service.FieldEdited(ctx, request.Field)
		if err != nil {
			return nil, fmt.Errorf("workflow service: %w", err)
		}

		return state, nil
	}
}

func makeOpenConfirmationEndpoint(service WorkflowService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		reference, ok := req.(string)
		if !ok {
			return nil, errors.New("invalid type")
		}

		state, err := service.OpenConfirmation(ctx, reference)
		if err != nil {
			return nil, fmt.Errorf("workflow service: %w", err)
		}

		return state, nil
	}
}

func makeStartOverEndpoint(service WorkflowService) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		state, err := service.StartOver(ctx)
		if err != nil {
			return nil, fmt.Errorf("workflow service: %w", err)
		}

		return state, nil
	}
}

func makeCurrentStateEndpoint(service WorkflowService) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		state, err := service.CurrentState(ctx)
		if err != nil {
			return nil, fmt.Errorf("workflow service: %w", err)
		}

		return state, nil
	}
}
