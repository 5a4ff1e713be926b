package charts_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/okian/memedash/internal/adapters/http/charts"
	"github.com/okian/memedash/internal/domain/present"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRendererBar(t *testing.T) {
	Convey("Given a renderer", t, func() {
		r := charts.NewRenderer(charts.WithSize(400, 300))

		Convey("When rendering histogram records", func() {
			var buf bytes.Buffer
			err := r.Bar(&buf, "Overall Potential Score Distribution", []present.Record{
				{Label: "0-2", Value: 1, Color: "#8884d8"},
				{Label: "2-4", Value: 0, Color: "#82ca9d"},
				{Label: "4-6", Value: 3, Color: "#ffc658"},
			})

			Convey("Then a PNG image should be written", func() {
				So(err, ShouldBeNil)
				So(buf.Len(), ShouldBeGreaterThan, 0)
				So(buf.String()[:4], ShouldEqual, "\x89PNG")
			})
		})

		Convey("When every value is zero", func() {
			var buf bytes.Buffer
			err := r.Bar(&buf, "Averages", []present.Record{
				{Label: "Sentiment", Value: 0, Max: 10, Color: "#8884d8"},
			})

			So(err, ShouldBeNil)
			So(buf.Len(), ShouldBeGreaterThan, 0)
		})

		Convey("When there are no records", func() {
			var buf bytes.Buffer
			err := r.Bar(&buf, "empty", nil)

			So(errors.Is(err, charts.ErrNoData), ShouldBeTrue)
			So(buf.Len(), ShouldEqual, 0)
		})
	})
}
