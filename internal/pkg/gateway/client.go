package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/travelapp/flight-booking-client/internal/app/dto"
)

// Config for the flight API client.
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	MaxRetries      int
	RateLimitRPS    int
	Limiter         *redis_rate.Limiter
	Cache           *SearchCache
	CacheExpiration time.Duration
}

// Client speaks GraphQL-over-HTTP to the remote flight API and normalizes
// every failure to one of the gateway error classes.
type Client struct {
	baseURL         string
	httpClient      *http.Client
	maxRetries      int
	rateLimitRPS    int
	limiter         *redis_rate.Limiter
	cache           *SearchCache
	cacheExpiration time.Duration
}

func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:         cfg.BaseURL,
		httpClient:      &http.Client{Timeout: cfg.Timeout},
		maxRetries:      cfg.MaxRetries,
		rateLimitRPS:    cfg.RateLimitRPS,
		limiter:         cfg.Limiter,
		cache:           cfg.Cache,
		cacheExpiration: cfg.CacheExpiration,
	}
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// SearchFlights issues the search query. An empty result set is not an
// error. Responses are served from the search cache when present.
func (c *Client) SearchFlights(ctx context.Context, criteria dto.SearchCriteria) ([]dto.Flight, error) {
	var cacheKey string

	if c.cache != nil {
		cacheKey = c.cache.Key(criteria)
		if flights, err := c.cache.Get(ctx, cacheKey); err == nil {
			return flights, nil
		}
	}

	var data struct {
		SearchFlights []dto.Flight `json:"searchFlights"`
	}

	err := c.query(ctx, querySearchFlights, map[string]interface{}{
		"origin":        criteria.Origin,
		"destination":   criteria.Destination,
		"departureDate": criteria.DepartureDate,
		"passengers":    criteria.Passengers,
	}, &data)
	if err != nil {
		return nil, err
	}

	flights := data.SearchFlights
	if flights == nil {
		flights = []dto.Flight{}
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, flights, c.cacheExpiration); err != nil {
			slog.WarnContext(ctx, "failed to cache search results", slog.String("error", err.Error()))
		}
	}

	return flights, nil
}

// GetFlight fetches one flight by id. A null record is ErrFlightNotFound.
func (c *Client) GetFlight(ctx context.Context, id string) (dto.Flight, error) {
	var data struct {
		Flight *dto.Flight `json:"flight"`
	}

	err := c.query(ctx, queryGetFlight, map[string]interface{}{"id": id}, &data)
	if err != nil {
		return dto.Flight{}, err
	}

	if data.Flight == nil {
		return dto.Flight{}, ErrFlightNotFound
	}

	return *data.Flight, nil
}

// CreateBooking issues the booking mutation. A success:false result is a
// business rejection carrying the server message; everything else that
// fails is a transport error.
func (c *Client) CreateBooking(ctx context.Context, req dto.BookingRequest) (dto.Booking, error) {
	var data struct {
		CreateBooking struct {
			Success bool         `json:"success"`
			Message string       `json:"message"`
			Booking *dto.Booking `json:"booking"`
		} `json:"createBooking"`
	}

	err := c.query(ctx, mutationCreateBooking, map[string]interface{}{
		"input": map[string]interface{}{
			"flightId":       req.FlightID,
			"passengerName":  req.Passenger.Name,
			"passengerEmail": req.Passenger.Email,
			"passengerPhone": req.Passenger.Phone,
		},
	}, &data)
	if err != nil {
		return dto.Booking{}, err
	}

	result := data.CreateBooking
	if !result.Success || result.Booking == nil {
		return dto.Booking{}, bookingRejected(result.Message)
	}

	return *result.Booking, nil
}

// GetBooking fetches a booking by its reference. A null record is
// ErrBookingNotFound. Read access never mutates the booking.
func (c *Client) GetBooking(ctx context.Context, reference string) (dto.Booking, error) {
	var data struct {
		Booking *dto.Booking `json:"booking"`
	}

	err := c.query(ctx, queryGetBooking, map[string]interface{}{"bookingReference": reference}, &data)
	if err != nil {
		return dto.Booking{}, err
	}

	if data.Booking == nil {
		return dto.Booking{}, ErrBookingNotFound
	}

	return *data.Booking, nil
}

// query posts one GraphQL document, retrying transport failures with
// exponential backoff. GraphQL application errors are not retried.
func (c *Client) query(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	if c.limiter != nil {
		res, err := c.limiter.Allow(ctx, "flight-api:limit", redis_rate.PerSecond(c.rateLimitRPS))
		if err != nil {
			return transportError(fmt.Errorf("failed to rate limit: %w", err))
		}

		if res.Allowed == 0 {
			return ErrRateLimited
		}
	}

	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return transportError(fmt.Errorf("failed to marshal request: %w", err))
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 200ms * 2^(attempt-1)
			backoff := time.Duration(200*(1<<(attempt-1))) * time.Millisecond
			slog.InfoContext(ctx, "retrying flight API call with exponential backoff",
				slog.Duration("backoff", backoff), slog.Int("next_attempt", attempt+1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return transportError(ctx.Err())
			}
		}

		envelope, err := c.post(ctx, body)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return transportError(err)
			}

			lastErr = err
			slog.WarnContext(ctx, "flight API call failed",
				slog.Int("attempt", attempt+1), slog.String("error", err.Error()))
			continue
		}

		if len(envelope.Errors) > 0 {
			return transportError(errors.New(envelope.Errors[0].Message))
		}

		if out != nil && envelope.Data != nil {
			if err := json.Unmarshal(envelope.Data, out); err != nil {
				return transportError(fmt.Errorf("failed to unmarshal response: %w", err))
			}
		}

		return nil
	}

	return transportError(fmt.Errorf("giving up after %d attempts: %w", c.maxRetries+1, lastErr))
}

func (c *Client) post(ctx context.Context, body []byte) (graphqlEnvelope, error) {
	var envelope graphqlEnvelope

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return envelope, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return envelope, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return envelope, fmt.Errorf("flight API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return envelope, fmt.Errorf("failed to decode response: %w", err)
	}

	return envelope, nil
}
