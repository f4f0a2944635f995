// Package widget holds the weather widget's state machine.
//
// All transitions go through Reduce, a pure function of the previous state
// and an event. Side effects (the outbound lookup and the delayed panel
// settle) are returned as Effect values and executed by a Controller.
package widget

import (
	"strings"

	"github.com/weatherwidget/backend/internal/domain"
)

// PanelSize is the maximum extent of the result container
type PanelSize int

const (
	PanelCollapsed PanelSize = iota
	PanelExpanded
	PanelUnconstrained
)

func (p PanelSize) String() string {
	switch p {
	case PanelExpanded:
		return "expanded"
	case PanelUnconstrained:
		return "unconstrained"
	default:
		return "collapsed"
	}
}

// Outcome is one of Idle, Loading, Success or Failure
type Outcome interface {
	outcome()
}

type Idle struct{}

type Loading struct {
	Query string
}

type Success struct {
	Record domain.WeatherRecord
}

type Failure struct {
	Err domain.LookupError
}

func (Idle) outcome()    {}
func (Loading) outcome() {}
func (Success) outcome() {}
func (Failure) outcome() {}

// State is the widget's full state. Treat it as a value.
type State struct {
	Query    string
	Outcome  Outcome
	Seq      uint64 // latest submission issued
	Panel    PanelSize
	Revealed bool
}

// Initial returns the idle widget with an empty query
func Initial() State {
	return State{Outcome: Idle{}}
}

// Record returns the current weather record, if any
func (s State) Record() (domain.WeatherRecord, bool) {
	if o, ok := s.Outcome.(Success); ok {
		return o.Record, true
	}
	return domain.WeatherRecord{}, false
}

// Err returns the current lookup error, if any
func (s State) Err() (domain.LookupError, bool) {
	if o, ok := s.Outcome.(Failure); ok {
		return o.Err, true
	}
	return domain.LookupError{}, false
}

// Loading reports whether a lookup is in flight
func (s State) Loading() bool {
	_, ok := s.Outcome.(Loading)
	return ok
}

// Event is an input to Reduce
type Event interface {
	event()
}

type QueryChanged struct {
	Text string
}

type SubmitPressed struct{}

type FetchSucceeded struct {
	Seq    uint64
	Record domain.WeatherRecord
}

type FetchFailed struct {
	Seq uint64
	Err domain.LookupError
}

// RevealSettled fires shortly after a success to lift the panel's height cap
type RevealSettled struct {
	Seq uint64
}

func (QueryChanged) event()   {}
func (SubmitPressed) event()  {}
func (FetchSucceeded) event() {}
func (FetchFailed) event()    {}
func (RevealSettled) event()  {}

// Resolved turns a lookup result into the matching completion event
func Resolved(seq uint64, res domain.LookupResult) Event {
	if res.OK() {
		return FetchSucceeded{Seq: seq, Record: *res.Record}
	}
	err := res.Err
	if err == nil {
		err = domain.NewLookupError(domain.TransientFailure)
	}
	return FetchFailed{Seq: seq, Err: *err}
}

// Effect is work the Controller must perform after a transition
type Effect interface {
	effect()
}

// FetchEffect asks for one lookup of Query
type FetchEffect struct {
	Seq   uint64
	Query string
}

// SettleEffect asks for a RevealSettled with the same Seq after a short delay
type SettleEffect struct {
	Seq uint64
}

func (FetchEffect) effect()  {}
func (SettleEffect) effect() {}

// Reduce applies ev to s. Completion events whose Seq is not the latest
// issued submission are dropped and s is returned unchanged.
func Reduce(s State, ev Event) (State, []Effect) {
	if s.Outcome == nil {
		s.Outcome = Idle{}
	}

	switch e := ev.(type) {
	case QueryChanged:
		s.Query = e.Text
		return s, nil

	case SubmitPressed:
		s.Seq++
		s.Revealed = false

		city := strings.TrimSpace(s.Query)
		if city == "" {
			s.Outcome = Failure{Err: *domain.NewLookupError(domain.EmptyQuery)}
			s.Panel = PanelCollapsed
			return s, nil
		}
		s.Outcome = Loading{Query: city}
		return s, []Effect{FetchEffect{Seq: s.Seq, Query: city}}

	case FetchSucceeded:
		if e.Seq != s.Seq || !s.Loading() {
			return s, nil
		}
		s.Outcome = Success{Record: e.Record}
		s.Panel = PanelExpanded
		s.Revealed = true
		return s, []Effect{SettleEffect{Seq: e.Seq}}

	case FetchFailed:
		if e.Seq != s.Seq || !s.Loading() {
			return s, nil
		}
		s.Outcome = Failure{Err: e.Err}
		s.Panel = PanelCollapsed
		s.Revealed = false
		return s, nil

	case RevealSettled:
		if e.Seq != s.Seq {
			return s, nil
		}
		if _, ok := s.Outcome.(Success); ok && s.Panel == PanelExpanded {
			s.Panel = PanelUnconstrained
		}
		return s, nil
	}

	return s, nil
}
