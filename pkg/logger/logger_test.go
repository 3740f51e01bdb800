package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When initialised with defaults", func() {
			So(Init(), ShouldBeNil)

			Convey("Then Get should return it", func() {
				So(Get(), ShouldNotBeNil)
				So(Named("test"), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})

		Convey("When initialised with an unknown format", func() {
			err := Init(WithFormat("xml"))

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "unknown log format")
			})
		})
	})
}

func TestJSONOutput(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithWriter(&buf), WithFormat("json"), WithSource(false)), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields through a named child", func() {
			Named("sampler").With(String("run_id", "r-1")).Info(ctx, "attempt", Int("attempt", 2), Bool("ok", true))

			Convey("Then the line should carry every field", func() {
				var line map[string]any
				So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)
				So(line["msg"], ShouldEqual, "attempt")
				So(line["component"], ShouldEqual, "sampler")
				So(line["run_id"], ShouldEqual, "r-1")
				So(line["attempt"], ShouldEqual, float64(2))
				So(line["ok"], ShouldEqual, true)
			})
		})

		Convey("When the level is raised above debug", func() {
			So(SetLevelString("warn"), ShouldBeNil)
			Get().Debug(ctx, "hidden")
			Get().Info(ctx, "hidden too")

			Convey("Then nothing should be written", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
			_ = SetLevelString("info")
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		Convey("Then known names should be accepted", func() {
			for _, lvl := range []string{"debug", "info", "", "warn", "WARNING", "error"} {
				So(SetLevelString(lvl), ShouldBeNil)
			}
			_ = SetLevelString("info")
		})

		Convey("Then unknown names should be rejected", func() {
			So(SetLevelString("loud"), ShouldNotBeNil)
		})
	})
}

func TestCallerField(t *testing.T) {
	Convey("Given a text logger with source locations", t, func() {
		var buf bytes.Buffer
		So(Init(WithWriter(&buf)), ShouldBeNil)

		Get().Info(context.Background(), "where")

		Convey("Then the source should point at this test file", func() {
			So(strings.Contains(buf.String(), "logger_test.go"), ShouldBeTrue)
		})
	})
}

func TestNop(t *testing.T) {
	Convey("Given the no-op logger", t, func() {
		l := Nop()

		Convey("Then logging should not panic", func() {
			So(func() { l.Named("x").Warn(context.Background(), "dropped", Error(nil)) }, ShouldNotPanic)
		})
	})
}
