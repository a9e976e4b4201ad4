package view

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-now/internal/models"
)

type weatherGetter interface {
	GetWeather(ctx context.Context, rawInput string) (models.ResolvedWeather, error)
}

type cardRenderer interface {
	Render(w models.ResolvedWeather) Card
}

// Controller owns one result slot. Each search takes the next sequence
// number; a result is committed only while its number is still the latest.
type Controller struct {
	logger   zerolog.Logger
	pipeline weatherGetter
	cards    cardRenderer

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	state  State
}

func NewController(logger zerolog.Logger, pipeline weatherGetter, cards cardRenderer) *Controller {
	return &Controller{
		logger:   logger,
		pipeline: pipeline,
		cards:    cards,
		state:    idle(0),
	}
}

// Search runs one query to completion. The returned bool reports whether
// its outcome was committed; when false a newer search or a Clear took
// over and the returned State is whatever is current. A search whose own
// ctx is cancelled commits Idle; a ctx deadline commits a network failure.
func (c *Controller) Search(ctx context.Context, rawInput string) (State, bool) {
	query := strings.TrimSpace(rawInput)

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.cancelLocked()
	queryCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = loading(seq, query)
	c.mu.Unlock()
	defer cancel()

	c.logger.Debug().Ctx(ctx).Uint64("seq", seq).Str("query", query).Msg("search started")

	w, err := c.pipeline.GetWeather(queryCtx, rawInput)

	var next State
	switch {
	case err == nil:
		next = loaded(seq, query, w, c.cards.Render(w))
	case errors.Is(ctx.Err(), context.Canceled):
		// The caller went away; drop back to Idle rather than showing
		// its failure to everyone else.
		next = idle(seq)
	default:
		next = failed(seq, query, models.KindOf(err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.logger.Debug().Ctx(ctx).
			Uint64("seq", seq).
			Uint64("latest", c.seq).
			Msg("discarding superseded search result")
		return c.state, false
	}

	c.state = next
	c.cancel = nil

	c.logger.Info().Ctx(ctx).
		Uint64("seq", seq).
		Str("query", query).
		Str("status", next.Status().String()).
		Str("outcome", models.KindOf(err).String()).
		Msg("search committed")

	return next, true
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Clear drops the current result and invalidates any search in flight.
func (c *Controller) Clear() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.cancelLocked()
	c.state = idle(c.seq)
	return c.state
}

func (c *Controller) cancelLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
