package upstream_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/memedash/internal/adapters/upstream"
	"github.com/okian/memedash/internal/domain/state"
	. "github.com/smartystreets/goconvey/convey"
)

func newUpstream(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestFetchAll(t *testing.T) {
	ctx := context.Background()

	Convey("Given an upstream returning a score list", t, func() {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte(`{"scores":[
				{"user_screen_name":"A","overall_potential_score_0_10":9},
				{"tweet_id":17,"overall_potential_score_0_10":2}
			]}`))
		}))
		defer srv.Close()

		client := upstream.NewClient(srv.URL + "/api/v1/")
		scores, err := client.FetchAll(ctx)

		Convey("Then the entities should decode in order", func() {
			So(err, ShouldBeNil)
			So(gotPath, ShouldEqual, "/api/v1/scores")
			So(scores, ShouldHaveLength, 2)
			So(scores[0].Identifier(), ShouldEqual, "A")
			So(scores[1].Identifier(), ShouldEqual, "17")
		})
	})

	Convey("Given an empty score list", t, func() {
		srv := newUpstream(http.StatusOK, `{"scores":[]}`)
		defer srv.Close()

		scores, err := upstream.NewClient(srv.URL).FetchAll(ctx)

		So(err, ShouldBeNil)
		So(scores, ShouldNotBeNil)
		So(scores, ShouldBeEmpty)
	})

	Convey("Given a double encoded body", t, func() {
		srv := newUpstream(http.StatusOK, `"{\"scores\":[{\"user_screen_name\":\"A\"}]}"`)
		defer srv.Close()

		scores, err := upstream.NewClient(srv.URL).FetchAll(ctx)

		Convey("Then the string should be parsed as the document", func() {
			So(err, ShouldBeNil)
			So(scores, ShouldHaveLength, 1)
		})
	})

	Convey("Given bodies that are not valid JSON", t, func() {
		for _, body := range []string{`not json`, `"not json"`, ``} {
			srv := newUpstream(http.StatusOK, body)
			_, err := upstream.NewClient(srv.URL).FetchAll(ctx)
			srv.Close()

			So(errors.Is(err, upstream.ErrParse), ShouldBeTrue)
			So(upstream.Message(err), ShouldStartWith, "Failed to parse API response")
		}
	})

	Convey("Given bodies with the wrong shape", t, func() {
		for _, body := range []string{
			`[]`,
			`{"data":[]}`,
			`{"scores":{}}`,
			`{"scores":null}`,
			`{"scores":[1,2]}`,
			`{"scores":[{"user_screen_name":"A"},"B"]}`,
		} {
			srv := newUpstream(http.StatusOK, body)
			scores, err := upstream.NewClient(srv.URL).FetchAll(ctx)
			srv.Close()

			So(scores, ShouldBeNil)
			So(errors.Is(err, upstream.ErrMalformedResponse), ShouldBeTrue)
			So(upstream.Message(err), ShouldEqual, "Unexpected API response structure")
		}
	})

	Convey("Given a list where one record carries unusable values", t, func() {
		srv := newUpstream(http.StatusOK, `{"scores":[
			{"user_screen_name":"A","overall_potential_score_0_10":9},
			{"user_screen_name":"B","overall_potential_score_0_10":"N/A","price_at_tweet_time":"unknown"},
			{"user_screen_name":"C","overall_potential_score_0_10":"2.5"}
		]}`)
		defer srv.Close()

		scores, err := upstream.NewClient(srv.URL).FetchAll(ctx)

		Convey("Then every record should decode and the bad values become absent", func() {
			So(err, ShouldBeNil)
			So(scores, ShouldHaveLength, 3)
			So(*scores[0].OverallScore, ShouldEqual, 9)
			So(scores[1].Identifier(), ShouldEqual, "B")
			So(scores[1].OverallScore, ShouldBeNil)
			So(scores[1].Price, ShouldBeNil)
			So(*scores[2].OverallScore, ShouldEqual, 2.5)
		})
	})

	Convey("Given a server error", t, func() {
		srv := newUpstream(http.StatusInternalServerError, `{"error":"disk on fire"}`)
		defer srv.Close()

		_, err := upstream.NewClient(srv.URL).FetchAll(ctx)

		Convey("Then status and body should be carried", func() {
			So(errors.Is(err, upstream.ErrServer), ShouldBeTrue)
			var ue *upstream.Error
			So(errors.As(err, &ue), ShouldBeTrue)
			So(ue.Status, ShouldEqual, 500)
			So(ue.Op, ShouldEqual, upstream.OpFetchAll)
			So(upstream.Message(err), ShouldEqual, `Server error: 500 - {"error":"disk on fire"}`)
			So(upstream.Outcome(err), ShouldEqual, "server")
		})
	})

	Convey("Given a list endpoint answering 404", t, func() {
		srv := newUpstream(http.StatusNotFound, `{"error":"Source data file not found"}`)
		defer srv.Close()

		_, err := upstream.NewClient(srv.URL).FetchAll(ctx)

		So(errors.Is(err, upstream.ErrServer), ShouldBeTrue)
	})

	Convey("Given an unreachable upstream", t, func() {
		srv := newUpstream(http.StatusOK, `{}`)
		srv.Close()

		_, err := upstream.NewClient(srv.URL).FetchAll(ctx)

		So(errors.Is(err, upstream.ErrNetwork), ShouldBeTrue)
		So(upstream.Message(err), ShouldEqual, "No response from server. Check network connectivity.")
	})

	Convey("Given a slow upstream and a short timeout", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(time.Second):
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()

		_, err := upstream.NewClient(srv.URL, upstream.WithTimeout(20*time.Millisecond)).FetchAll(ctx)

		So(errors.Is(err, upstream.ErrNetwork), ShouldBeTrue)
	})
}

func TestFetchAllIntoStore(t *testing.T) {
	Convey("Given a store reading from an upstream that returns not json", t, func() {
		srv := newUpstream(http.StatusOK, `not json`)
		defer srv.Close()

		store := state.New(upstream.NewClient(srv.URL), state.WithMessageFunc(upstream.Message))
		err := store.Refresh(context.Background())
		snap := store.Snapshot()

		Convey("Then the store is failed, empty and not loading", func() {
			So(errors.Is(err, upstream.ErrParse), ShouldBeTrue)
			So(snap.Status, ShouldEqual, state.Failed)
			So(snap.Data, ShouldBeEmpty)
			So(snap.IsLoading(), ShouldBeFalse)
			So(snap.Message, ShouldStartWith, "Failed to parse API response")
		})
	})
}

func TestLookup(t *testing.T) {
	ctx := context.Background()

	Convey("Given an upstream with one coin", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.EscapedPath() == "/scores/pepe%20coin" {
				_, _ = w.Write([]byte(`{"user_screen_name":"pepe coin","overall_potential_score_0_10":7.2,"sma_50_day_feature":null}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Coin not found"}`))
		}))
		defer srv.Close()
		client := upstream.NewClient(srv.URL, upstream.WithRateLimit(100, 2))

		Convey("When looking up a known identifier", func() {
			e, err := client.Lookup(ctx, "pepe coin")

			Convey("Then it should decode the entity", func() {
				So(err, ShouldBeNil)
				So(e.Identifier(), ShouldEqual, "pepe coin")
				So(*e.OverallScore, ShouldEqual, 7.2)
				So(e.SMA50, ShouldBeNil)
			})
		})

		Convey("When looking up an unknown identifier", func() {
			_, err := client.Lookup(ctx, "nobody")

			Convey("Then it should report not found with the upstream message", func() {
				So(errors.Is(err, upstream.ErrNotFound), ShouldBeTrue)
				So(upstream.Message(err), ShouldEqual, "Coin not found")
				So(upstream.Outcome(err), ShouldEqual, "not_found")
			})
		})

		Convey("When the identifier is blank", func() {
			_, err := client.Lookup(ctx, "  ")
			So(errors.Is(err, upstream.ErrNotFound), ShouldBeTrue)
		})
	})

	Convey("Given a lookup answering an array", t, func() {
		srv := newUpstream(http.StatusOK, `[{"user_screen_name":"x"}]`)
		defer srv.Close()

		_, err := upstream.NewClient(srv.URL).Lookup(ctx, "x")

		So(errors.Is(err, upstream.ErrMalformedResponse), ShouldBeTrue)
	})

	Convey("Given a cancelled context", t, func() {
		srv := newUpstream(http.StatusOK, `{}`)
		defer srv.Close()
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := upstream.NewClient(srv.URL, upstream.WithRateLimit(1, 1)).Lookup(cctx, "x")

		So(errors.Is(err, upstream.ErrNetwork), ShouldBeTrue)
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})
}

func TestMessage(t *testing.T) {
	Convey("Given non upstream errors", t, func() {
		So(upstream.Message(nil), ShouldEqual, "")
		So(upstream.Message(errors.New("plain")), ShouldEqual, "plain")
		So(upstream.Outcome(nil), ShouldEqual, "ok")
		So(upstream.Outcome(errors.New("plain")), ShouldEqual, "error")
	})

	Convey("Given a formatted upstream error", t, func() {
		err := &upstream.Error{Op: upstream.OpLookup, Kind: upstream.ErrServer, Status: 502, Body: "bad gateway"}
		So(err.Error(), ShouldEqual, "upstream lookup: upstream server error: status 502: bad gateway")
	})
}
