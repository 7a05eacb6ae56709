package httpapi

import (
	"context"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/example/talentflow/internal/metrics"
)

// RandSource is the randomness the chaos layer draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	Float64() float64
	Int64N(n int64) int64
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Chaos simulates a slow, flaky network in front of the API: every request
// waits a random latency in [MinLatency, MaxLatency), and mutating requests
// fail with a 500 at FailureRate.
type Chaos struct {
	MinLatency  time.Duration
	MaxLatency  time.Duration
	FailureRate float64
	Rand        RandSource
	Sleep       Sleeper
}

// NewChaos returns a chaos layer using the global random source and a real timer.
func NewChaos(minLatency, maxLatency time.Duration, failureRate float64) *Chaos {
	return &Chaos{
		MinLatency:  minLatency,
		MaxLatency:  maxLatency,
		FailureRate: failureRate,
		Rand:        globalRand{},
		Sleep:       sleepContext,
	}
}

// Latency draws one request delay.
func (c *Chaos) Latency() time.Duration {
	span := c.MaxLatency - c.MinLatency
	if span <= 0 {
		return c.MinLatency
	}
	return c.MinLatency + time.Duration(c.Rand.Int64N(int64(span)))
}

// ShouldFail reports whether a request with this method gets a synthetic failure.
func (c *Chaos) ShouldFail(method string) bool {
	if !isMutating(method) || c.FailureRate <= 0 {
		return false
	}
	return c.Rand.Float64() < c.FailureRate
}

// Handler returns the chaos middleware.
func (c *Chaos) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := c.Sleep(r.Context(), c.Latency()); err != nil {
			// client went away
			return
		}
		if c.ShouldFail(r.Method) {
			metrics.IncreaseChaosInjected()
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, ErrorResponse{Error: "Server error", Code: CodeServerError})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

type globalRand struct{}

func (globalRand) Float64() float64     { return rand.Float64() }
func (globalRand) Int64N(n int64) int64 { return rand.Int64N(n) }

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
