package model_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	model "github.com/okian/playerboard/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

const feedJSON = `{
  "playerList": [
    {
      "Id": "63706",
      "PFName": "Virat Kohli",
      "TName": "Kohli",
      "SkillDesc": "Batsman",
      "Value": 10.5,
      "UpComingMatchesList": [
        {"MDate": "2024-03-22T19:30:00Z", "CCode": "RCB", "VsCCode": "CSK"},
        {"MDate": "2024-03-25T19:30:00", "CCode": "", "VsCCode": "PBKS"}
      ]
    },
    {"Id": "11", "PFName": "Jasprit Bumrah", "TName": "Bumrah", "SkillDesc": "Bowler", "Value": 9}
  ]
}`

func TestFeedDecoding(t *testing.T) {
	convey.Convey("Given a feed payload in the wire format", t, func() {
		var feed model.Feed
		err := json.Unmarshal([]byte(feedJSON), &feed)

		convey.Convey("Then it should decode every field", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(feed.PlayerList, convey.ShouldHaveLength, 2)

			p := feed.PlayerList[0]
			convey.So(p.ID, convey.ShouldEqual, "63706")
			convey.So(p.PFName, convey.ShouldEqual, "Virat Kohli")
			convey.So(p.TName, convey.ShouldEqual, "Kohli")
			convey.So(p.SkillDesc, convey.ShouldEqual, "Batsman")
			convey.So(p.Value, convey.ShouldEqual, 10.5)
			convey.So(p.Matches, convey.ShouldHaveLength, 2)
			convey.So(p.Matches[0].CCode, convey.ShouldEqual, "RCB")
			convey.So(p.Matches[0].VsCCode, convey.ShouldEqual, "CSK")
		})

		convey.Convey("And a player without matches should have none", func() {
			convey.So(feed.PlayerList[1].Matches, convey.ShouldBeEmpty)
		})
	})
}

func TestPlayerLenientFields(t *testing.T) {
	convey.Convey("Given players whose Id and Value use other JSON types", t, func() {
		var feed model.Feed
		err := json.Unmarshal([]byte(`{"playerList":[
			{"Id":63084,"PFName":"Numeric","TName":"Numeric","Value":5},
			{"Id":"7","PFName":"Quoted","TName":"Quoted","Value":"12.5"},
			{"Id":null,"PFName":"Blank","TName":"Blank","Value":"n/a"}
		]}`), &feed)

		convey.Convey("Then the payload should still decode", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(feed.PlayerList, convey.ShouldHaveLength, 3)
		})

		convey.Convey("And a numeric Id should become its decimal text", func() {
			convey.So(feed.PlayerList[0].ID, convey.ShouldEqual, "63084")
			convey.So(feed.PlayerList[0].Value, convey.ShouldEqual, 5.0)
		})

		convey.Convey("And a numeric string Value should be coerced", func() {
			convey.So(feed.PlayerList[1].ID, convey.ShouldEqual, "7")
			convey.So(feed.PlayerList[1].Value, convey.ShouldEqual, 12.5)
		})

		convey.Convey("And null or non-numeric fields should read as zero values", func() {
			convey.So(feed.PlayerList[2].ID, convey.ShouldEqual, "")
			convey.So(feed.PlayerList[2].Value, convey.ShouldEqual, 0.0)
			convey.So(feed.PlayerList[2].PFName, convey.ShouldEqual, "Blank")
		})
	})

	convey.Convey("Given a player whose Id is an object", t, func() {
		var p model.Player
		err := json.Unmarshal([]byte(`{"Id":{"x":1},"PFName":"Odd"}`), &p)

		convey.Convey("Then decoding should fail with a field type error", func() {
			convey.So(errors.Is(err, model.ErrFieldType), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a decoded player", t, func() {
		var p model.Player
		convey.So(json.Unmarshal([]byte(`{"Id":42,"PFName":"A","Value":1}`), &p), convey.ShouldBeNil)

		convey.Convey("Then it should encode back with a string Id", func() {
			out, err := json.Marshal(p)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(out), convey.ShouldContainSubstring, `"Id":"42"`)
		})
	})
}

func TestParseMatchDate(t *testing.T) {
	convey.Convey("Given match dates in various layouts", t, func() {
		loc := time.FixedZone("IST", 5*3600+1800)

		convey.Convey("When the date carries a zone", func() {
			ts, ok := model.ParseMatchDate("2024-03-22T19:30:00Z", loc)

			convey.Convey("Then the zone should be honoured", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(ts.Equal(time.Date(2024, 3, 22, 19, 30, 0, 0, time.UTC)), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the date has no zone", func() {
			ts, ok := model.ParseMatchDate("2024-03-22T19:30:00", loc)

			convey.Convey("Then it should be read in the given location", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(ts.Location(), convey.ShouldEqual, loc)
				convey.So(ts.Hour(), convey.ShouldEqual, 19)
			})
		})

		convey.Convey("When only a day is given", func() {
			ts, ok := model.ParseMatchDate("2024-03-22", loc)

			convey.Convey("Then midnight should be used", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(ts.Day(), convey.ShouldEqual, 22)
				convey.So(ts.Hour(), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When the date uses other common layouts", func() {
			cases := map[string]time.Time{
				"6/16/2021 9:30:00 AM":     time.Date(2021, 6, 16, 9, 30, 0, 0, loc),
				"6/16/2021 9:30 PM":        time.Date(2021, 6, 16, 21, 30, 0, 0, loc),
				"6/16/2021":                time.Date(2021, 6, 16, 0, 0, 0, 0, loc),
				"2021/06/16 09:30:00":      time.Date(2021, 6, 16, 9, 30, 0, 0, loc),
				"2021-06-16T09:30:00+0530": time.Date(2021, 6, 16, 4, 0, 0, 0, time.UTC),
				"2021-06-16 09:30:00Z":     time.Date(2021, 6, 16, 9, 30, 0, 0, time.UTC),
			}

			convey.Convey("Then each should parse to the same instant", func() {
				for in, want := range cases {
					ts, ok := model.ParseMatchDate(in, loc)
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(ts.Equal(want), convey.ShouldBeTrue)
				}
			})
		})

		convey.Convey("When the date is empty or garbage", func() {
			_, emptyOK := model.ParseMatchDate("  ", loc)
			_, junkOK := model.ParseMatchDate("next tuesday", loc)

			convey.Convey("Then parsing should fail", func() {
				convey.So(emptyOK, convey.ShouldBeFalse)
				convey.So(junkOK, convey.ShouldBeFalse)
			})
		})
	})
}

func TestMatchComplete(t *testing.T) {
	convey.Convey("Given matches with missing parts", t, func() {
		full := model.Match{Date: "2024-03-22T19:30:00Z", CCode: "RCB", VsCCode: "CSK"}

		convey.Convey("Then only a match with a date and both codes is complete", func() {
			convey.So(full.Complete(), convey.ShouldBeTrue)

			noHome := full
			noHome.CCode = ""
			convey.So(noHome.Complete(), convey.ShouldBeFalse)

			noAway := full
			noAway.VsCCode = ""
			convey.So(noAway.Complete(), convey.ShouldBeFalse)

			noDate := full
			noDate.Date = " "
			convey.So(noDate.Complete(), convey.ShouldBeFalse)
		})

		convey.Convey("And a present but unreadable date should still count", func() {
			odd := full
			odd.Date = "garbage"
			convey.So(odd.Complete(), convey.ShouldBeTrue)
		})
	})
}
