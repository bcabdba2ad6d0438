package table_test

import (
	"testing"

	"github.com/okian/depthchart/internal/domain/table"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTable(t *testing.T) {
	Convey("Given a table", t, func() {
		cols := []string{"Player", "Tm", "G"}
		rows := [][]string{{"A", "KAN", "16"}, {"B"}}
		tbl := table.New(cols, rows)

		Convey("When the source slices change", func() {
			cols[0] = "x"
			rows[0][0] = "y"

			Convey("Then the table keeps its own copy", func() {
				So(tbl.Columns[0], ShouldEqual, "Player")
				So(tbl.Rows[0][0], ShouldEqual, "A")
			})
		})

		Convey("When looking up cells", func() {
			So(tbl.Index("Tm"), ShouldEqual, 1)
			So(tbl.Index("Nope"), ShouldEqual, -1)
			So(tbl.Has("G"), ShouldBeTrue)
			So(tbl.Cell(0, 2), ShouldEqual, "16")
			So(tbl.Cell(1, 2), ShouldEqual, "")
			So(tbl.Cell(5, 0), ShouldEqual, "")
			So(tbl.Len(), ShouldEqual, 2)
		})

		Convey("When cloning", func() {
			c := tbl.Clone()
			c.Rows[0][1] = "SFO"

			Convey("Then the original is untouched", func() {
				So(tbl.Rows[0][1], ShouldEqual, "KAN")
			})
		})
	})
}
