package config_test

import (
	"errors"
	"testing"

	"github.com/okian/judgeboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.DataFile, convey.ShouldEqual, "judgeboard.json")
			convey.So(cfg.Judges, convey.ShouldResemble, []string{"J1", "J2", "J3"})
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given an otherwise valid config", t, func() {
		cfg := config.New()

		convey.Convey("When judges contain a duplicate", func() {
			cfg.Judges = []string{"J1", "J1"}
			err := cfg.Validate()

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "duplicate judge role")
		})

		convey.Convey("When judges are empty", func() {
			cfg.Judges = nil
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("When a judge role is blank", func() {
			cfg.Judges = []string{"J1", " "}
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("When the data file is blank", func() {
			cfg.DataFile = ""
			convey.So(cfg.Validate().Error(), convey.ShouldContainSubstring, "data_file must not be empty")
		})
	})
}
