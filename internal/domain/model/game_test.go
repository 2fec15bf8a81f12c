package model_test

import (
	"encoding/json"
	"testing"

	model "github.com/okian/sdc-standings/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestGameDecoding(t *testing.T) {
	convey.Convey("Given a game history page from the API", t, func() {
		body := `{
			"page": 1,
			"total_pages": 3,
			"game_history": [
				{"display_date": "08/24/2025 21:10:05", "game_mode": "LEAGUE",
				 "home_name": "^b53^Junior192415", "away_name": "CPU",
				 "home_full_name": "Los Angeles Dodgers", "away_full_name": "Padres",
				 "home_runs": "5", "away_runs": 3},
				{"display_date": "08/25/2025 10:00:00", "game_mode": "LEAGUE",
				 "home_runs": null, "away_runs": ""}
			]
		}`

		convey.Convey("When decoding it", func() {
			var page model.HistoryPage
			err := json.Unmarshal([]byte(body), &page)

			convey.Convey("Then string and number runs both parse", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(page.TotalPages, convey.ShouldEqual, 3)
				convey.So(page.GameHistory, convey.ShouldHaveLength, 2)

				g := page.GameHistory[0]
				convey.So(g.HomeName, convey.ShouldEqual, "^b53^Junior192415")
				home, err := g.HomeRuns.Int()
				convey.So(err, convey.ShouldBeNil)
				convey.So(home, convey.ShouldEqual, 5)
				away, err := g.AwayRuns.Int()
				convey.So(err, convey.ShouldBeNil)
				convey.So(away, convey.ShouldEqual, 3)
			})

			convey.Convey("And null or empty runs count as zero", func() {
				g := page.GameHistory[1]
				home, err := g.HomeRuns.Int()
				convey.So(err, convey.ShouldBeNil)
				convey.So(home, convey.ShouldEqual, 0)
				away, err := g.AwayRuns.Int()
				convey.So(err, convey.ShouldBeNil)
				convey.So(away, convey.ShouldEqual, 0)
			})
		})
	})

	convey.Convey("Given a non-numeric score", t, func() {
		r := model.Runs("x")

		convey.Convey("Then Int returns an error", func() {
			_, err := r.Int()
			convey.So(err, convey.ShouldNotBeNil)
		})
	})

	convey.Convey("Given scores decoded as JSON floats", t, func() {
		var g model.Game
		err := json.Unmarshal([]byte(`{"home_runs": 5.0, "away_runs": "2.5"}`), &g)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then a whole float is accepted", func() {
			home, err := g.HomeRuns.Int()
			convey.So(err, convey.ShouldBeNil)
			convey.So(home, convey.ShouldEqual, 5)
		})

		convey.Convey("And a fractional score is an error", func() {
			_, err := g.AwayRuns.Int()
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
