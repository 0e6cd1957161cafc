package config_test

import (
	"errors"
	"testing"

	"github.com/okian/goalkeep/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.OracleMode, convey.ShouldEqual, config.OracleSimulated)
			convey.So(cfg.ZoneConcurrency, convey.ShouldEqual, 9)
			convey.So(cfg.PenaltyDistanceM, convey.ShouldEqual, 7.0)
			convey.So(cfg.DBPath, convey.ShouldBeEmpty)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one invalid field", t, func() {
		cases := map[string]func(*config.Config){
			"empty addr":            func(c *config.Config) { c.Addr = "" },
			"bad level":             func(c *config.Config) { c.LogLevel = "loud" },
			"bad format":            func(c *config.Config) { c.LogFormat = "xml" },
			"bad mode":              func(c *config.Config) { c.OracleMode = "magic" },
			"zero timeout":          func(c *config.Config) { c.OracleTimeoutMS = 0 },
			"negative rate":         func(c *config.Config) { c.OracleRatePerSec = -1 },
			"zero breaker":          func(c *config.Config) { c.OracleBreakerFailures = 0 },
			"inverted latency":      func(c *config.Config) { c.OracleLatencyMinMS, c.OracleLatencyMaxMS = 50, 10 },
			"zero concurrency":      func(c *config.Config) { c.RosterConcurrency = 0 },
			"penalty too close":     func(c *config.Config) { c.PenaltyDistanceM = 5 },
			"http mode without url": func(c *config.Config) { c.OracleMode = config.OracleHTTP },
		}
		for name, mutate := range cases {
			convey.Convey(name, func() {
				cfg := config.New()
				mutate(cfg)
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}

		convey.Convey("http mode with a url is valid", func() {
			cfg := config.New()
			cfg.OracleMode = config.OracleHTTP
			cfg.OracleURL = "http://model:8000"
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
