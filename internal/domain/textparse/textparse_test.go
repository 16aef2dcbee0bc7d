package textparse_test

import (
	"testing"

	"github.com/ryanmford/apexspeedrun/internal/domain/textparse"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSplitLine(t *testing.T) {
	Convey("Given lines of delimited sheet text", t, func() {
		Convey("When splitting a plain line", func() {
			fields := textparse.SplitLine("a,b,c")
			So(fields, ShouldResemble, []string{"a", "b", "c"})
		})

		Convey("When a field contains a quoted delimiter", func() {
			fields := textparse.SplitLine(`"Boulder, Colorado",USA,42`)
			So(fields, ShouldResemble, []string{"Boulder, Colorado", "USA", "42"})
		})

		Convey("When fields carry surrounding whitespace", func() {
			fields := textparse.SplitLine(` a , b `)
			So(fields, ShouldResemble, []string{"a", "b"})
		})

		Convey("When a quoted region never closes", func() {
			Convey("Then the rest of the line accumulates into one field", func() {
				fields := textparse.SplitLine(`a,"b,c`)
				So(fields, ShouldResemble, []string{"a", "b,c"})
			})
		})

		Convey("When the line ends with a delimiter", func() {
			fields := textparse.SplitLine("a,b,")
			So(fields, ShouldResemble, []string{"a", "b", ""})
		})

		Convey("When the line is empty", func() {
			fields := textparse.SplitLine("")
			So(fields, ShouldResemble, []string{""})
		})
	})
}

func TestRows(t *testing.T) {
	Convey("Given raw sheet text", t, func() {
		Convey("When the text uses CRLF line endings", func() {
			rows := textparse.Rows("a\r\nb\r\nc")
			So(rows, ShouldResemble, []string{"a", "b", "c"})
		})

		Convey("When the text starts with a UTF-8 BOM", func() {
			rows := textparse.Rows("\uFEFFName,Country\nAlice,USA")
			So(rows[0], ShouldEqual, "Name,Country")
		})

		Convey("When the text contains blank lines", func() {
			rows := textparse.Rows("a\n\n   \nb\n")
			So(rows, ShouldResemble, []string{"a", "b"})
		})

		Convey("When the text is empty", func() {
			So(textparse.Rows(""), ShouldBeEmpty)
		})
	})
}

func TestFindHeader(t *testing.T) {
	Convey("Given rows with a header somewhere near the top", t, func() {
		rows := []string{"Apex Speed Run", "Exported 2026-08-01", "Name,Country,Rating", "Alice,USA,91"}

		Convey("When scanning for header keywords", func() {
			idx := textparse.FindHeader(rows, []string{"name", "athlete"}, 10)
			So(idx, ShouldEqual, 2)
		})

		Convey("When keywords match case-insensitively", func() {
			idx := textparse.FindHeader([]string{"ATHLETE,PB"}, []string{"athlete"}, 10)
			So(idx, ShouldEqual, 0)
		})

		Convey("When no row matches within the window", func() {
			idx := textparse.FindHeader(rows, []string{"course"}, 2)
			So(idx, ShouldEqual, -1)
		})

		Convey("When the window exceeds the row count", func() {
			idx := textparse.FindHeader(rows, []string{"name"}, 100)
			So(idx, ShouldEqual, 2)
		})
	})
}
