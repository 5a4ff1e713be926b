package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/memedash/internal/adapters/upstream"
	"github.com/okian/memedash/internal/domain/aggregate"
	"github.com/okian/memedash/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.InitWithWriter(&bytes.Buffer{}, logger.FormatText); err != nil {
		panic(err)
	}
}

const scoresBody = `{"scores":[
	{"user_screen_name":"PEPE","query_term":"$PEPE","overall_potential_score_0_10":9,"calculated_sentiment_score_0_10":8},
	{"user_screen_name":"RUG","overall_potential_score_0_10":1.5}
]}`

func newUpstream() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /scores", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(scoresBody))
	})
	mux.HandleFunc("GET /scores/PEPE", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"user_screen_name":"PEPE","overall_potential_score_0_10":9,"price_at_tweet_time":0.0012}`))
	})
	mux.HandleFunc("GET /scores/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Coin not found"}`))
	})
	return httptest.NewServer(mux)
}

func TestScores(t *testing.T) {
	ctx := context.Background()

	Convey("Given an upstream with two coins", t, func() {
		srv := newUpstream()
		defer srv.Close()
		var out bytes.Buffer

		err := Scores(ctx, &Config{BaseURL: srv.URL, TopN: 1}, &out)

		Convey("Then every section should be printed", func() {
			So(err, ShouldBeNil)
			s := out.String()
			So(s, ShouldContainSubstring, "Summary")
			So(s, ShouldContainSubstring, "Score distribution")
			So(s, ShouldContainSubstring, "8-10")
			So(s, ShouldContainSubstring, "Average sub-scores")
			So(s, ShouldContainSubstring, "4.00")
			So(s, ShouldContainSubstring, "Top promising")
			So(s, ShouldContainSubstring, "High-risk alerts")
			So(s, ShouldContainSubstring, "PEPE")
			So(s, ShouldContainSubstring, "RUG")
		})
	})

	Convey("Given an unreachable upstream", t, func() {
		srv := newUpstream()
		srv.Close()
		var out bytes.Buffer

		err := Scores(ctx, &Config{BaseURL: srv.URL, Timeout: time.Second}, &out)

		Convey("Then the network error should be reported", func() {
			So(errors.Is(err, upstream.ErrNetwork), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "No response from server")
			So(out.Len(), ShouldEqual, 0)
		})
	})
}

func TestCoin(t *testing.T) {
	ctx := context.Background()

	Convey("Given an upstream with a known coin", t, func() {
		srv := newUpstream()
		defer srv.Close()
		var out bytes.Buffer

		Convey("When looking it up", func() {
			err := Coin(ctx, &Config{BaseURL: srv.URL}, "PEPE", &out)

			So(err, ShouldBeNil)
			s := out.String()
			So(s, ShouldContainSubstring, "PEPE - Details")
			So(s, ShouldContainSubstring, "Financial Context")
			So(s, ShouldContainSubstring, "0.0012")
			So(s, ShouldContainSubstring, "Low")
		})

		Convey("When looking up an unknown coin", func() {
			err := Coin(ctx, &Config{BaseURL: srv.URL}, "DOGE", &out)

			So(errors.Is(err, upstream.ErrNotFound), ShouldBeTrue)
			s := out.String()
			So(s, ShouldContainSubstring, "N/A - Details")
			So(s, ShouldContainSubstring, "Coin not found")
		})
	})
}

func TestPrinterEmpty(t *testing.T) {
	Convey("Given an empty view", t, func() {
		var out bytes.Buffer
		NewPrinter(&out).Scores(aggregate.Compute(nil))

		So(out.String(), ShouldContainSubstring, "No data available.")
		So(out.String(), ShouldNotContainSubstring, "Score distribution")
	})
}

func TestConfigDefaults(t *testing.T) {
	Convey("Given an empty config", t, func() {
		cfg := (&Config{}).withDefaults()

		So(cfg.BaseURL, ShouldEqual, DefaultBaseURL)
		So(cfg.Timeout, ShouldEqual, DefaultTimeout)
		So(cfg.TopN, ShouldEqual, DefaultTopN)
	})
}
