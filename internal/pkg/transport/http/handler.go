package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"
	"github.com/travelapp/flight-booking-client/internal/pkg/exception"
)

type DecodeRequestFunc func(r *http.Request) (interface{}, error)

type EncodeResponseFunc func(ctx context.Context, w http.ResponseWriter, response interface{}) error

// MakeHandlerFunc glues a decoder, an endpoint and an encoder into a
// http.HandlerFunc.
func MakeHandlerFunc(ep endpoint.Endpoint,
	decode DecodeRequestFunc,
	encode EncodeResponseFunc,
) http.HandlerFunc {
	return func(respWriter http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		request, err := decode(req)
		if err != nil {
			ErrorResponse(ctx, err, respWriter)

			return
		}

		response, err := ep(ctx, request)
		if err != nil {
			ErrorResponse(ctx, err, respWriter)

			return
		}

		if err := encode(ctx, respWriter, response); err != nil {
			ErrorResponse(ctx, err, respWriter)
		}
	}
}

// DecodeRequest decodes the JSON body into a new T and runs its Bind
// validation. Malformed bodies come back as a 400, not a 500.
func DecodeRequest[T any](req *http.Request) (interface{}, error) {
	request := new(T)

	binder, ok := any(request).(render.Binder)
	if !ok {
		return nil, errors.New("request type does not implement render.Binder")
	}

	if err := render.Bind(req, binder); err != nil {
		var appErr exception.ApplicationError
		if errors.As(err, &appErr) {
			return nil, err
		}

		return nil, exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    "invalid request body",
			Cause:      err,
		}
	}

	return request, nil
}

// DecodePathParam extracts one chi URL parameter as the request.
func DecodePathParam(name string) DecodeRequestFunc {
	return func(req *http.Request) (interface{}, error) {
		value := chi.URLParam(req, name)
		if value == "" {
			return nil, exception.ApplicationError{
				StatusCode: http.StatusBadRequest,
				Message:    name + " is required",
			}
		}

		return value, nil
	}
}

func DecodeEmptyRequest(_ *http.Request) (interface{}, error) {
	return nil, nil
}
