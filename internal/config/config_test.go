package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/sdc-standings/internal/config"
	"github.com/okian/sdc-standings/internal/domain/league"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should carry the SDC league defaults", func() {
			convey.So(cfg.LeagueMode, convey.ShouldEqual, "LEAGUE")
			convey.So(cfg.Scheduled, convey.ShouldEqual, 12)
			convey.So(cfg.Cutoff, convey.ShouldEqual, 8)
			convey.So(cfg.Platform, convey.ShouldEqual, "psn")
			convey.So(cfg.RequestTimeout, convey.ShouldEqual, 20*time.Second)
			convey.So(cfg.Members, convey.ShouldHaveLength, 13)
			convey.So(cfg.HTMLFile, convey.ShouldEqual, "tabla_SDC.html")
			convey.So(cfg.JSONFile, convey.ShouldEqual, "standings.json")
			convey.So(cfg.JSFile, convey.ShouldEqual, "standings.js")
		})

		convey.Convey("And it should validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("And the season starts on 2025-08-23 UTC", func() {
			start, err := cfg.SeasonStartTime()
			convey.So(err, convey.ShouldBeNil)
			convey.So(start, convey.ShouldEqual, time.Date(2025, 8, 23, 0, 0, 0, 0, time.UTC))
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid values", t, func() {
		cases := map[string]func(c *config.Config){
			"empty api url":        func(c *config.Config) { c.APIURL = "" },
			"empty league mode":    func(c *config.Config) { c.LeagueMode = "" },
			"zero scheduled":       func(c *config.Config) { c.Scheduled = 0 },
			"negative cutoff":      func(c *config.Config) { c.Cutoff = -1 },
			"zero request timeout": func(c *config.Config) { c.RequestTimeout = 0 },
			"bad season start":     func(c *config.Config) { c.SeasonStart = "23/08/2025" },
			"empty roster":         func(c *config.Config) { c.Members = nil },
		}

		for name, mutate := range cases {
			cfg := config.New()
			mutate(cfg)

			convey.Convey("Then "+name+" is rejected as invalid", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})

	convey.Convey("Given a roster that maps two participants to one team", t, func() {
		cfg := config.New()
		cfg.Members = []league.Member{
			{Participant: "a", Team: "Cubs"},
			{Participant: "b", Team: "Cubs"},
		}

		convey.Convey("Then the league error is preserved", func() {
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(errors.Is(err, league.ErrNotBijective), convey.ShouldBeTrue)
		})
	})
}
