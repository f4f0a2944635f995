package widget

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/weatherwidget/backend/internal/domain"
)

var london = domain.WeatherRecord{
	Location:      "London",
	Condition:     domain.ConditionRain,
	ConditionMain: "Rain",
	Description:   "light rain",
	TemperatureC:  15.4,
	Humidity:      80,
	WindSpeed:     12.3,
}

func apply(s State, events ...Event) (State, []Effect) {
	var effects []Effect
	for _, ev := range events {
		var out []Effect
		s, out = Reduce(s, ev)
		effects = append(effects, out...)
	}
	return s, effects
}

func assertExclusive(s State) {
	_, hasRecord := s.Record()
	_, hasErr := s.Err()
	So(hasRecord && hasErr, ShouldBeFalse)
}

func TestReduce(t *testing.T) {
	Convey("Given an idle widget", t, func() {
		s := Initial()

		Convey("Typing only updates the query", func() {
			next, effects := Reduce(s, QueryChanged{Text: "Lon"})
			So(next.Query, ShouldEqual, "Lon")
			So(next.Outcome, ShouldResemble, Idle{})
			So(effects, ShouldBeEmpty)
		})

		Convey("Submitting a blank query fails locally without a fetch", func() {
			next, effects := apply(s, QueryChanged{Text: "   "}, SubmitPressed{})
			So(effects, ShouldBeEmpty)
			err, ok := next.Err()
			So(ok, ShouldBeTrue)
			So(err.Kind, ShouldEqual, domain.EmptyQuery)
			So(err.Message, ShouldEqual, "Please enter the city first")
			So(next.Panel, ShouldEqual, PanelCollapsed)
			So(next.Query, ShouldEqual, "   ")
			assertExclusive(next)
		})

		Convey("Submitting a city issues exactly one trimmed fetch", func() {
			next, effects := apply(s, QueryChanged{Text: "  London "}, SubmitPressed{})
			So(next.Loading(), ShouldBeTrue)
			So(effects, ShouldResemble, []Effect{FetchEffect{Seq: 1, Query: "London"}})

			Convey("A matching success shows the record and asks for a settle", func() {
				done, effects := Reduce(next, FetchSucceeded{Seq: 1, Record: london})
				rec, ok := done.Record()
				So(ok, ShouldBeTrue)
				So(rec, ShouldResemble, london)
				So(done.Panel, ShouldEqual, PanelExpanded)
				So(done.Revealed, ShouldBeTrue)
				So(effects, ShouldResemble, []Effect{SettleEffect{Seq: 1}})
				assertExclusive(done)

				Convey("The settle lifts the height cap", func() {
					settled, _ := Reduce(done, RevealSettled{Seq: 1})
					So(settled.Panel, ShouldEqual, PanelUnconstrained)
				})

				Convey("A new submission re-arms the reveal", func() {
					again, _ := Reduce(done, SubmitPressed{})
					So(again.Revealed, ShouldBeFalse)
					So(again.Seq, ShouldEqual, 2)

					again, _ = Reduce(again, FetchSucceeded{Seq: 2, Record: london})
					So(again.Revealed, ShouldBeTrue)
					So(again.Panel, ShouldEqual, PanelExpanded)
				})

				Convey("A later empty submission clears the record", func() {
					cleared, _ := apply(done, QueryChanged{Text: ""}, SubmitPressed{})
					_, ok := cleared.Record()
					So(ok, ShouldBeFalse)
					So(cleared.Panel, ShouldEqual, PanelCollapsed)
					assertExclusive(cleared)
				})
			})

			Convey("A not-found failure clears the panel", func() {
				failed, effects := Reduce(next, FetchFailed{Seq: 1, Err: *domain.NewLookupError(domain.LocationNotFound)})
				So(effects, ShouldBeEmpty)
				err, ok := failed.Err()
				So(ok, ShouldBeTrue)
				So(err.Kind, ShouldEqual, domain.LocationNotFound)
				So(failed.Panel, ShouldEqual, PanelCollapsed)
				So(failed.Revealed, ShouldBeFalse)
				assertExclusive(failed)
			})
		})

		Convey("With two overlapping submissions", func() {
			pending, _ := apply(s, QueryChanged{Text: "Paris"}, SubmitPressed{}, QueryChanged{Text: "London"}, SubmitPressed{})
			So(pending.Seq, ShouldEqual, 2)

			Convey("The first response is discarded", func() {
				next, effects := Reduce(pending, FetchSucceeded{Seq: 1, Record: domain.WeatherRecord{Location: "Paris"}})
				So(next, ShouldResemble, pending)
				So(effects, ShouldBeEmpty)
			})

			Convey("The latest response lands even if the stale one arrives after", func() {
				next, _ := apply(pending,
					FetchSucceeded{Seq: 2, Record: london},
					FetchFailed{Seq: 1, Err: *domain.NewLookupError(domain.TransientFailure)},
				)
				rec, ok := next.Record()
				So(ok, ShouldBeTrue)
				So(rec.Location, ShouldEqual, "London")
			})
		})

		Convey("A stale settle does not expand a newer result", func() {
			s, _ = apply(s, QueryChanged{Text: "London"}, SubmitPressed{}, FetchSucceeded{Seq: 1, Record: london}, SubmitPressed{}, FetchSucceeded{Seq: 2, Record: london})
			next, _ := Reduce(s, RevealSettled{Seq: 1})
			So(next.Panel, ShouldEqual, PanelExpanded)
		})
	})
}

func TestResolved(t *testing.T) {
	Convey("Resolved maps lookup results onto completion events", t, func() {
		So(Resolved(3, domain.Found(london)), ShouldResemble, FetchSucceeded{Seq: 3, Record: london})

		ev := Resolved(4, domain.Failed(domain.LocationNotFound))
		failed, ok := ev.(FetchFailed)
		So(ok, ShouldBeTrue)
		So(failed.Seq, ShouldEqual, 4)
		So(failed.Err.Kind, ShouldEqual, domain.LocationNotFound)

		Convey("An empty result counts as a transient failure", func() {
			ev := Resolved(5, domain.LookupResult{})
			So(ev.(FetchFailed).Err.Kind, ShouldEqual, domain.TransientFailure)
		})
	})
}
