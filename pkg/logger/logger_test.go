package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the default initializer", t, func() {
		err := Init()

		Convey("Then the global logger should be available", func() {
			So(err, ShouldBeNil)
			So(Get(), ShouldNotBeNil)
			So(Sync(), ShouldBeNil)
		})
	})

	Convey("Given an unknown format", t, func() {
		err := InitWithWriter(&bytes.Buffer{}, "xml")

		Convey("Then initialization should fail", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown log format")
		})
	})

	Convey("Given a nil writer", t, func() {
		So(InitWithWriter(nil, FormatText), ShouldNotBeNil)
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(InitWithWriter(&buf, FormatJSON), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			Get().Info(ctx, "fetched scores", Int("count", 3), Error(errors.New("boom")))

			Convey("Then the fields and caller should be encoded", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, `"msg":"fetched scores"`)
				So(out, ShouldContainSubstring, `"count":3`)
				So(out, ShouldContainSubstring, `"error":"boom"`)
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When logging through a named logger", func() {
			Named("upstream").With(String("op", "fetch_all")).Warn(ctx, "slow")

			Convey("Then the component and bound fields should be present", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, `"component":"upstream"`)
				So(out, ShouldContainSubstring, `"op":"fetch_all"`)
			})
		})

		Convey("When the level filters a message", func() {
			So(SetLevelString("error"), ShouldBeNil)
			Get().Info(ctx, "hidden")
			So(buf.String(), ShouldNotContainSubstring, "hidden")
			So(SetLevelString("info"), ShouldBeNil)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		So(SetLevelString("debug"), ShouldBeNil)
		So(SetLevelString(" WARNING "), ShouldBeNil)
		So(SetLevelString(""), ShouldBeNil)
		So(SetLevelString("verbose"), ShouldNotBeNil)
	})
}

func TestNop(t *testing.T) {
	Convey("Given a nop logger", t, func() {
		l := Nop().Named("x").With(String("k", "v"))

		So(func() { l.Error(context.Background(), "dropped") }, ShouldNotPanic)
	})
}
