package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kimikokel/weather-wizard/internal/weather"
)

// Phase names a state of the query state machine.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// User-facing failure messages. All gateway causes collapse into one generic
// message; the specific cause goes to the log only.
const (
	MsgGatewayFailure = "could not fetch weather data, please try again"
	MsgNoForecast     = "the weather service returned no forecast data"
)

// Result is the renderable outcome of a successful query: the aggregated
// summary plus the current-conditions details shown next to it.
type Result struct {
	Summary        weather.AggregatedSummary `json:"summary"`
	FeelsLikeC     float64                   `json:"feelsLikeC"`
	WindSpeedMps   float64                   `json:"windSpeedMps"`
	ExtremeWeather bool                      `json:"extremeWeather"`
	FetchedAt      time.Time                 `json:"fetchedAt"`
}

// State is a point-in-time snapshot of the machine.
type State struct {
	Phase      Phase     `json:"phase"`
	City       string    `json:"city,omitempty"`
	Generation uint64    `json:"generation"`
	QueryID    string    `json:"queryId,omitempty"`
	Result     *Result   `json:"result,omitempty"`
	Message    string    `json:"message,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Ticket identifies one started query.
type Ticket struct {
	Generation uint64 `json:"generation"`
	QueryID    string `json:"queryId"`
}

// Session drives queries through the idle -> loading -> success/error state
// machine. Each search gets a new, strictly increasing generation; starting
// one cancels the in-flight query, and a completion carrying a stale
// generation is dropped, so a superseded response can never overwrite the
// state.
type Session struct {
	gw     weather.Gateway
	agg    *weather.Aggregator
	points int

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	state  State
}

// New creates an idle session. points is the forecast length requested from
// the gateway on every query.
func New(gw weather.Gateway, agg *weather.Aggregator, points int) *Session {
	return &Session{
		gw:     gw,
		agg:    agg,
		points: points,
		state:  State{Phase: PhaseIdle, UpdatedAt: time.Now().UTC()},
	}
}

// Search starts an asynchronous query for city and moves the machine to
// loading. Any in-flight query is canceled and superseded.
func (s *Session) Search(city string) Ticket {
	s.mu.Lock()
	s.gen++
	ticket := Ticket{Generation: s.gen, QueryID: uuid.NewString()}
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.state = State{
		Phase:      PhaseLoading,
		City:       city,
		Generation: ticket.Generation,
		QueryID:    ticket.QueryID,
		UpdatedAt:  time.Now().UTC(),
	}
	s.mu.Unlock()

	log.Printf("INFO: query %s started for %q (generation %d)", ticket.QueryID, city, ticket.Generation)
	go s.run(ctx, ticket, city)
	return ticket
}

// Refresh re-runs the most recent city. It reports false when nothing has
// been searched yet.
func (s *Session) Refresh() (Ticket, bool) {
	s.mu.Lock()
	city := s.state.City
	s.mu.Unlock()

	if city == "" {
		return Ticket{}, false
	}
	return s.Search(city), true
}

// Snapshot returns the current state. The embedded Result is never mutated
// after publication, so sharing the pointer is safe.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) run(ctx context.Context, ticket Ticket, city string) {
	res, err := s.QueryOnce(ctx, city)
	if err != nil {
		log.Printf("ERROR: query %s for %q failed: %v", ticket.QueryID, city, err)
		s.apply(ticket, State{
			Phase:   PhaseError,
			City:    city,
			Message: UserMessage(err),
		})
		return
	}

	s.apply(ticket, State{
		Phase:  PhaseSuccess,
		City:   city,
		Result: &res,
	})
}

// apply installs next as the session state unless the ticket was superseded.
func (s *Session) apply(ticket Ticket, next State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket.Generation != s.gen {
		log.Printf("DEBUG: dropping stale completion for generation %d (current %d)", ticket.Generation, s.gen)
		return
	}

	next.Generation = ticket.Generation
	next.QueryID = ticket.QueryID
	next.UpdatedAt = time.Now().UTC()
	s.state = next
}

// QueryOnce performs one synchronous query without touching the state
// machine. Both gateway calls run concurrently and both must succeed before
// the responses are aggregated.
func (s *Session) QueryOnce(ctx context.Context, city string) (Result, error) {
	var (
		wg     sync.WaitGroup
		cur    weather.CurrentConditions
		curErr error
		bundle weather.ForecastBundle
		fcErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		cur, curErr = s.gw.Current(ctx, city)
	}()
	go func() {
		defer wg.Done()
		bundle, fcErr = s.gw.Forecast(ctx, city, s.points)
	}()
	wg.Wait()

	if curErr != nil {
		return Result{}, fmt.Errorf("current conditions: %w", curErr)
	}
	if fcErr != nil {
		return Result{}, fmt.Errorf("forecast: %w", fcErr)
	}

	summary, err := s.agg.Aggregate(cur, bundle.Points, bundle.TimezoneOffsetSeconds)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Summary:        summary,
		FeelsLikeC:     cur.FeelsLikeC,
		WindSpeedMps:   cur.WindSpeedMps,
		ExtremeWeather: weather.IsExtreme(cur),
		FetchedAt:      time.Now().UTC(),
	}, nil
}

// UserMessage collapses an internal failure into the message shown to the
// user.
func UserMessage(err error) string {
	if errors.Is(err, weather.ErrEmptyForecast) {
		return MsgNoForecast
	}
	return MsgGatewayFailure
}
