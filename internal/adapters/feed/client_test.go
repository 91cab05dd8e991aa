package feed_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/playerboard/internal/adapters/feed"
	. "github.com/smartystreets/goconvey/convey"
)

func serve(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestClientFetch(t *testing.T) {
	Convey("Given a feed client", t, func() {
		ctx := context.Background()

		Convey("When the feed returns players", func() {
			var accept string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				accept = r.Header.Get("Accept")
				_, _ = w.Write([]byte(`{"playerList":[
					{"Id":"1","PFName":"Alpha","TName":"Alpha","SkillDesc":"Batsman","Value":5},
					{"Id":"2","PFName":"Beta","TName":"Beta","SkillDesc":"Bowler","Value":1,
					 "UpComingMatchesList":[{"MDate":"2024-03-22T19:30:00Z","CCode":"RCB","VsCCode":"CSK"}]}
				]}`))
			}))
			defer srv.Close()

			players, err := feed.NewClient(srv.URL).Fetch(ctx)

			Convey("Then the players should be decoded in feed order", func() {
				So(err, ShouldBeNil)
				So(players, ShouldHaveLength, 2)
				So(players[0].PFName, ShouldEqual, "Alpha")
				So(players[1].Matches, ShouldHaveLength, 1)
				So(accept, ShouldEqual, "application/json")
			})
		})

		Convey("When the feed sends numeric ids and string values", func() {
			srv := serve(http.StatusOK, `{"playerList":[
				{"Id":63084,"PFName":"Alpha","TName":"Alpha","Value":5},
				{"Id":"2","PFName":"Beta","TName":"Beta","Value":"1.5"}
			]}`)
			defer srv.Close()

			players, err := feed.NewClient(srv.URL).Fetch(ctx)

			Convey("Then the whole payload should still be accepted", func() {
				So(err, ShouldBeNil)
				So(players, ShouldHaveLength, 2)
				So(players[0].ID, ShouldEqual, "63084")
				So(players[1].Value, ShouldEqual, 1.5)
			})
		})

		Convey("When the feed returns an empty list", func() {
			srv := serve(http.StatusOK, `{"playerList":[]}`)
			defer srv.Close()

			players, err := feed.NewClient(srv.URL).Fetch(ctx)

			Convey("Then ErrEmptyFeed should be returned", func() {
				So(players, ShouldBeNil)
				So(errors.Is(err, feed.ErrEmptyFeed), ShouldBeTrue)
			})
		})

		Convey("When the playerList field is missing", func() {
			srv := serve(http.StatusOK, `{"players":[{"Id":"1"}]}`)
			defer srv.Close()

			_, err := feed.NewClient(srv.URL).Fetch(ctx)

			Convey("Then ErrEmptyFeed should be returned", func() {
				So(errors.Is(err, feed.ErrEmptyFeed), ShouldBeTrue)
			})
		})

		Convey("When the payload is malformed", func() {
			srv := serve(http.StatusOK, `{"playerList": [`)
			defer srv.Close()

			_, err := feed.NewClient(srv.URL).Fetch(ctx)

			Convey("Then ErrDecode should be returned", func() {
				So(errors.Is(err, feed.ErrDecode), ShouldBeTrue)
			})
		})

		Convey("When the payload exceeds the size cap", func() {
			srv := serve(http.StatusOK, `{"playerList":[{"Id":"1","PFName":"`+strings.Repeat("x", 256)+`"}]}`)
			defer srv.Close()

			_, err := feed.NewClient(srv.URL, feed.WithMaxBytes(64)).Fetch(ctx)

			Convey("Then ErrDecode should be returned", func() {
				So(errors.Is(err, feed.ErrDecode), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "exceeds 64 bytes")
			})
		})

		Convey("When the feed answers with a server error", func() {
			srv := serve(http.StatusBadGateway, `oops`)
			defer srv.Close()

			_, err := feed.NewClient(srv.URL).Fetch(ctx)

			Convey("Then ErrStatus should carry the code", func() {
				So(errors.Is(err, feed.ErrStatus), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "502")
			})
		})

		Convey("When the feed is unreachable", func() {
			srv := serve(http.StatusOK, `{}`)
			url := srv.URL
			srv.Close()

			_, err := feed.NewClient(url).Fetch(ctx)

			Convey("Then ErrRequest should be returned", func() {
				So(errors.Is(err, feed.ErrRequest), ShouldBeTrue)
			})
		})

		Convey("When the feed is slower than the timeout", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			}))
			defer srv.Close()

			_, err := feed.NewClient(srv.URL, feed.WithTimeout(50*time.Millisecond)).Fetch(ctx)

			Convey("Then ErrRequest should be returned", func() {
				So(errors.Is(err, feed.ErrRequest), ShouldBeTrue)
			})
		})

		Convey("When the URL is invalid", func() {
			_, err := feed.NewClient("http://bad host/").Fetch(ctx)

			Convey("Then ErrRequest should be returned", func() {
				So(errors.Is(err, feed.ErrRequest), ShouldBeTrue)
			})
		})

		Convey("Then URL should report the endpoint", func() {
			So(feed.NewClient("http://feed.local/players").URL(), ShouldEqual, "http://feed.local/players")
		})
	})
}
