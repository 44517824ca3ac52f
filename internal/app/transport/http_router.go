package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/travelapp/flight-booking-client/internal/app/config"
	"github.com/travelapp/flight-booking-client/internal/app/dto"
	"github.com/travelapp/flight-booking-client/internal/app/endpoints"
	httptransport "github.com/travelapp/flight-booking-client/internal/pkg/transport/http"
)

// MakeHTTPRouter builds the HTTP router with all the workflow endpoints.
// The three stages are addressable: search at the session root, booking by
// flight id, confirmation by booking reference.
func MakeHTTPRouter(
	cfg *config.Config,
	endpts endpoints.Endpoints,
) *chi.Mux {
	// Initialize Router
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		_ = httptransport.NoContentResponse(req.Context(), w, nil)
	})

	router.Route("/api/v1/session", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.SessionID(),
			httptransport.CORSMiddleware(),
			httptransport.Recoverer(slog.Default()),
			render.SetContentType(render.ContentTypeJSON),
		)

		workflow := endpts.Workflow

		router.Get("/", httptransport.MakeHandlerFunc(
			workflow.CurrentState,
			httptransport.DecodeEmptyRequest,
			httptransport.ResponseWithBody,
		))

		router.Post("/search", httptransport.MakeHandlerFunc(
			workflow.SubmitSearch,
			httptransport.DecodeRequest[dto.SearchCriteria],
			httptransport.ResponseWithBody,
		))

		router.Post("/sort", httptransport.MakeHandlerFunc(
			workflow.SetSortKey,
			httptransport.DecodeRequest[dto.SortRequest],
			httptransport.ResponseWithBody,
		))

		router.Post("/flights/{flightID}", httptransport.MakeHandlerFunc(
			workflow.OpenBooking,
			httptransport.DecodePathParam("flightID"),
			httptransport.ResponseWithBody,
		))

		router.Post("/bookings", httptransport.MakeHandlerFunc(
			workflow.SubmitPassenger,
			httptransport.DecodeRequest[dto.PassengerDraft],
			httptransport.ResponseWithBody,
		))

		router.Post("/bookings/field", httptransport.MakeHandlerFunc(
			workflow.FieldEdited,
			httptransport.DecodeRequest[dto.FieldEditRequest],
			httptransport.ResponseWithBody,
		))

		router.Post("/confirmation/{reference}", httptransport.MakeHandlerFunc(
			workflow.OpenConfirmation,
			httptransport.DecodePathParam("reference"),
			httptransport.ResponseWithBody,
		))

		router.Post("/reset", httptransport.MakeHandlerFunc(
			workflow.StartOver,
			httptransport.DecodeEmptyRequest,
			httptransport.ResponseWithBody,
		))
	})

	return router
}
