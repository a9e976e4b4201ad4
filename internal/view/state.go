// Package view holds the presentation state of a single search box and
// the controller that moves it between Idle, Loading, Loaded and Failed.
package view

import (
	"encoding/json"

	"github.com/Nazarious-ucu/weather-now/internal/models"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// State is one of Idle, Loading(query), Loaded(query, weather, card) or
// Failed(query, kind). Fields are reachable only through accessors so a
// State cannot carry both a result and a failure.
type State struct {
	status  Status
	seq     uint64
	query   string
	weather models.ResolvedWeather
	card    Card
	failure models.ErrorKind
}

func idle(seq uint64) State {
	return State{status: StatusIdle, seq: seq}
}

func loading(seq uint64, query string) State {
	return State{status: StatusLoading, seq: seq, query: query}
}

func loaded(seq uint64, query string, w models.ResolvedWeather, card Card) State {
	return State{status: StatusLoaded, seq: seq, query: query, weather: w, card: card}
}

func failed(seq uint64, query string, kind models.ErrorKind) State {
	return State{status: StatusFailed, seq: seq, query: query, failure: kind}
}

func (s State) Status() Status { return s.status }

// Seq is the sequence number of the query that produced the state.
func (s State) Seq() uint64 { return s.seq }

func (s State) Query() string { return s.query }

func (s State) Weather() (models.ResolvedWeather, bool) {
	return s.weather, s.status == StatusLoaded
}

func (s State) Card() (Card, bool) {
	return s.card, s.status == StatusLoaded
}

func (s State) Failure() (models.ErrorKind, bool) {
	return s.failure, s.status == StatusFailed
}

// Message is the user-facing text for a Failed state, empty otherwise.
func (s State) Message() string {
	if s.status != StatusFailed {
		return ""
	}
	return s.failure.Message()
}

type failureJSON struct {
	Kind    models.ErrorKind `json:"kind"`
	Message string           `json:"message"`
}

type stateJSON struct {
	Status  Status                  `json:"status"`
	Seq     uint64                  `json:"seq"`
	Query   string                  `json:"query,omitempty"`
	Weather *models.ResolvedWeather `json:"weather,omitempty"`
	Card    *Card                   `json:"card,omitempty"`
	Error   *failureJSON            `json:"error,omitempty"`
}

func (s State) MarshalJSON() ([]byte, error) {
	out := stateJSON{Status: s.status, Seq: s.seq, Query: s.query}
	switch s.status {
	case StatusLoaded:
		w, c := s.weather, s.card
		out.Weather, out.Card = &w, &c
	case StatusFailed:
		out.Error = &failureJSON{Kind: s.failure, Message: s.failure.Message()}
	}
	return json.Marshal(out)
}
