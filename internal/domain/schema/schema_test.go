package schema_test

import (
	"errors"
	"testing"

	"github.com/okian/depthchart/internal/domain/schema"
	"github.com/okian/depthchart/internal/domain/table"
	. "github.com/smartystreets/goconvey/convey"
)

var sourceColumns = []string{
	"Rk", "Player", "Tm", "FantPos", "Age", "G", "GS",
	"Cmp", "Att", "Yds", "TD", "Int",
	"Att.1", "Yds.1", "Y/A", "TD.1",
	"Tgt", "Rec", "Yds.2", "Y/R", "TD.2",
	"Fmb", "FL", "TD.3", "2PM", "2PP", "FantPt", "PPR", "DKPt", "FDPt", "VBD", "PosRank", "OvRank",
}

func sourceRow(player, tm, pos string) []string {
	return []string{
		"1", player, tm, pos, "27", "16", "16",
		"300", "450", "4000", "30", "10",
		"40", "200", "5.0", "2",
		"0", "0", "0", "", "0",
		"3", "2", "32", "0", "0", "350", "350", "350", "350", "100", "1", "1",
	}
}

func TestMap(t *testing.T) {
	Convey("Given a raw season table", t, func() {
		raw := table.New(sourceColumns, [][]string{sourceRow("Lamar Jackson*+", "BAL", "QB")})

		Convey("When mapping it", func() {
			mapped, err := schema.Map(raw)

			Convey("Then sources are renamed and unused columns dropped", func() {
				So(err, ShouldBeNil)
				So(mapped.Has(schema.PassingYD), ShouldBeTrue)
				So(mapped.Has(schema.RushingAttempt), ShouldBeTrue)
				So(mapped.Has(schema.TotalTD), ShouldBeTrue)
				So(mapped.Has("Yds"), ShouldBeFalse)
				So(mapped.Has("Rk"), ShouldBeFalse)
				So(mapped.Has("FantPt"), ShouldBeFalse)
				So(mapped.Has("Cmp"), ShouldBeTrue)
				So(mapped.Cell(0, mapped.Index(schema.PassingYD)), ShouldEqual, "4000")
			})

			Convey("And the input is untouched", func() {
				So(raw.Columns[0], ShouldEqual, "Rk")
				So(raw.Has("Yds.1"), ShouldBeTrue)
			})

			Convey("And mapping the result again fails", func() {
				_, err := schema.Map(mapped)
				So(errors.Is(err, schema.ErrSchema), ShouldBeTrue)
			})
		})

		Convey("When an expected column is missing", func() {
			cols := append([]string(nil), sourceColumns...)
			cols[raw.Index("Tgt")] = "Targets?"
			_, err := schema.Map(table.New(cols, raw.Rows))

			Convey("Then it fails naming the column", func() {
				So(errors.Is(err, schema.ErrSchema), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, `"Tgt"`)
			})
		})

		Convey("When the optional totals are absent", func() {
			var cols []string
			var row []string
			src := sourceRow("A", "KAN", "RB")
			for i, c := range sourceColumns {
				if c == "TD.3" {
					continue
				}
				cols = append(cols, c)
				row = append(row, src[i])
			}
			_, err := schema.Map(table.New(cols, [][]string{row}))

			Convey("Then mapping still succeeds", func() {
				So(err, ShouldBeNil)
			})
		})
	})
}

func TestDecode(t *testing.T) {
	Convey("Given a mapped table", t, func() {
		mapped, err := schema.Map(table.New(sourceColumns, [][]string{
			sourceRow("Lamar Jackson*+", "BAL", "QB"),
			sourceRow(`Mark Ingram\IngrMa01`, "BAL", "RB"),
		}))
		So(err, ShouldBeNil)

		Convey("When decoding rows", func() {
			recs, err := schema.Decode(mapped)

			Convey("Then records carry typed stats", func() {
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 2)
				So(recs[0].Player, ShouldEqual, "Lamar Jackson")
				So(recs[1].Player, ShouldEqual, "Mark Ingram")
				So(recs[0].Team, ShouldEqual, "BAL")
				So(recs[0].Games, ShouldEqual, 16)
				So(recs[0].PassingYD, ShouldEqual, 4000)
				So(recs[0].PassingAttempt, ShouldEqual, 450)
				So(recs[0].RushingAttempt, ShouldEqual, 40)
				So(recs[0].YardsPerRush, ShouldEqual, 5.0)
				So(recs[0].FumblesLost, ShouldEqual, 2)
				So(recs[0].YardsPerReception, ShouldEqual, 0.0)
			})
		})

		Convey("When a numeric cell is not a number", func() {
			bad := mapped.Clone()
			bad.Rows[1][bad.Index(schema.Receptions)] = "lots"
			_, err := schema.Decode(bad)

			Convey("Then it fails with the row and column", func() {
				So(errors.Is(err, schema.ErrInvalidValue), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "row 2")
				So(err.Error(), ShouldContainSubstring, schema.Receptions)
			})
		})

		Convey("When a count column holds a fraction", func() {
			bad := mapped.Clone()
			bad.Rows[0][bad.Index(schema.ColGames)] = "12.5"
			_, err := schema.Decode(bad)

			Convey("Then it is rejected instead of rounded", func() {
				So(errors.Is(err, schema.ErrInvalidValue), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "row 1")
				So(err.Error(), ShouldContainSubstring, "12.5")
			})
		})

		Convey("When a count column holds a whole number with a decimal point", func() {
			ok := mapped.Clone()
			ok.Rows[0][ok.Index(schema.ColGames)] = "15.0"
			recs, err := schema.Decode(ok)

			Convey("Then it decodes as that integer", func() {
				So(err, ShouldBeNil)
				So(recs[0].Games, ShouldEqual, 15)
			})
		})
	})
}

func TestCleanName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Christian McCaffrey*+", "Christian McCaffrey"},
		{`Derrick Henry*\HenrDe00`, "Derrick Henry"},
		{`Aaron Jones\JoneAa00`, "Aaron Jones"},
		{"Plain Name", "Plain Name"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := schema.CleanName(tc.in); got != tc.want {
			t.Errorf("CleanName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
