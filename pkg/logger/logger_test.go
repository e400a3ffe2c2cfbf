package logger_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/benchwise/teamforge/pkg/logger"
)

func TestLogger(t *testing.T) {
	ctx := context.Background()

	Convey("Given an initialized logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(logger.InitWithWriter(&buf), ShouldBeNil)

		Convey("When logging with structured fields", func() {
			logger.Get().Info(ctx, "pool seeded",
				logger.Int("resources", 55),
				logger.String("seed", "default"),
			)

			Convey("Then the entry carries message, fields and call site", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "pool seeded")
				So(out, ShouldContainSubstring, "resources=55")
				So(out, ShouldContainSubstring, "seed=default")
				So(out, ShouldContainSubstring, "logger_test.go:")
			})
		})

		Convey("When logging an error field", func() {
			logger.Get().Error(ctx, "build failed", logger.Error(errors.New("pool empty")))

			So(buf.String(), ShouldContainSubstring, "pool empty")
		})

		Convey("When using a named logger", func() {
			logger.Named("worker").Info(ctx, "pass done", logger.Int("jobs", 1))

			Convey("Then fields are grouped under the name", func() {
				So(buf.String(), ShouldContainSubstring, "worker.jobs=1")
			})
		})

		Convey("When the level is raised to warn", func() {
			So(logger.SetLevelString("warn"), ShouldBeNil)
			logger.Get().Info(ctx, "should be dropped")
			logger.Get().Warn(ctx, "should be kept")

			out := buf.String()
			So(out, ShouldNotContainSubstring, "should be dropped")
			So(out, ShouldContainSubstring, "should be kept")

			logger.SetLevel(slog.LevelInfo)
		})

		Convey("When parsing level strings", func() {
			So(logger.SetLevelString("DEBUG"), ShouldBeNil)
			So(logger.SetLevelString(""), ShouldBeNil)
			So(logger.SetLevelString("warning"), ShouldBeNil)
			So(logger.SetLevelString("verbose"), ShouldNotBeNil)

			logger.SetLevel(slog.LevelInfo)
		})
	})
}
