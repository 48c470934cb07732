package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/okian/judgeboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(logger.Init(logger.WithFormat("json"), logger.WithOutput(&buf)), ShouldBeNil)

		Convey("When logging with context fields", func() {
			ctx := logger.WithFields(context.Background(), logger.String("request_id", "req-1"))
			logger.Named("api").Info(ctx, "score accepted", logger.Int("value", 80))

			var line map[string]any
			So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)

			Convey("Then the line should carry every field", func() {
				So(line["msg"], ShouldEqual, "score accepted")
				So(line["request_id"], ShouldEqual, "req-1")
				So(line["component"], ShouldEqual, "api")
				So(line["value"], ShouldEqual, 80.0)
				So(line["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the level filters a message", func() {
			So(logger.SetLevelString("warn"), ShouldBeNil)
			logger.Get().Info(context.Background(), "hidden")
			So(buf.Len(), ShouldEqual, 0)
			So(logger.SetLevelString("info"), ShouldBeNil)
		})
	})

	Convey("Given an unknown format", t, func() {
		So(logger.Init(logger.WithFormat("xml")), ShouldNotBeNil)
	})

	Convey("Given an unknown level", t, func() {
		So(logger.SetLevelString("loud"), ShouldNotBeNil)
	})

	Convey("Given nested context fields", t, func() {
		ctx := logger.WithFields(context.Background(), logger.String("a", "1"))
		ctx = logger.WithFields(ctx, logger.String("b", "2"))

		So(logger.FieldsFromContext(ctx), ShouldHaveLength, 2)
		So(logger.FieldsFromContext(context.Background()), ShouldBeEmpty)
	})
}
