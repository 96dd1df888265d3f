package probe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadStatements(t *testing.T) {
	Convey("Given statement sources", t, func() {
		Convey("When reading lines with CRLF endings and a blank line", func() {
			got, err := readStatements(strings.NewReader("I am happy\r\n\r\nI am sad\n"))

			Convey("Then every line is kept without carriage returns", func() {
				So(err, ShouldBeNil)
				So(got, ShouldResemble, []string{"I am happy", "", "I am sad"})
			})
		})

		Convey("When the input is empty", func() {
			_, err := readStatements(strings.NewReader(""))

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When loading from a file", func() {
			path := filepath.Join(t.TempDir(), "statements.txt")
			So(os.WriteFile(path, []byte("one\ntwo\n"), 0o600), ShouldBeNil)
			got, err := LoadStatements(path)

			Convey("Then its lines are returned", func() {
				So(err, ShouldBeNil)
				So(got, ShouldResemble, []string{"one", "two"})
			})
		})

		Convey("When the file does not exist", func() {
			_, err := LoadStatements(filepath.Join(t.TempDir(), "missing.txt"))

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
