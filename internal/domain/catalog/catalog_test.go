package catalog_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/okian/tariff/internal/domain/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultCatalog(t *testing.T) {
	Convey("Given the embedded catalog", t, func() {
		c := catalog.Default()

		Convey("Then it should contain the core elements", func() {
			So(c.Len(), ShouldBeGreaterThan, 10)
			So(c.Version(), ShouldEqual, "2025.1")

			full, ok := c.Lookup("full")
			So(ok, ShouldBeTrue)
			So(full.Category, ShouldEqual, catalog.CategorySingleTwist)
			So(full.Symbol, ShouldEqual, "1")

			roundoff, ok := c.Lookup("roundoff")
			So(ok, ShouldBeTrue)
			So(roundoff.Category, ShouldEqual, catalog.CategoryRoll)
		})

		Convey("Then unknown ids should not resolve", func() {
			_, ok := c.Lookup("moonwalk")
			So(ok, ShouldBeFalse)
		})

		Convey("Then All should be ordered by id and detached from the catalog", func() {
			all := c.All()
			So(len(all), ShouldEqual, c.Len())
			for i := 1; i < len(all); i++ {
				So(all[i-1].ID < all[i].ID, ShouldBeTrue)
			}
			all[0].Value = 99
			first, _ := c.Lookup(all[0].ID)
			So(first.Value, ShouldNotEqual, 99)
		})
	})
}

func TestNewCatalog(t *testing.T) {
	Convey("Given element definitions", t, func() {
		Convey("When ids are duplicated", func() {
			_, err := catalog.New("v1", []catalog.Element{
				{ID: "tuck", Symbol: "o", Category: catalog.CategorySalto, Value: 0.5},
				{ID: "tuck", Symbol: "o", Category: catalog.CategorySalto, Value: 0.5},
			})

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, catalog.ErrDuplicateElement), ShouldBeTrue)
			})
		})

		Convey("When a category is unknown", func() {
			_, err := catalog.New("v1", []catalog.Element{
				{ID: "tuck", Symbol: "o", Category: "cartwheel", Value: 0.5},
			})

			Convey("Then validation should fail", func() {
				So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
			})
		})

		Convey("When a value is negative", func() {
			_, err := catalog.New("v1", []catalog.Element{
				{ID: "tuck", Symbol: "o", Category: catalog.CategorySalto, Value: -1},
			})

			Convey("Then validation should fail", func() {
				So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
			})
		})

		Convey("When the list is empty", func() {
			_, err := catalog.New("v1", nil)

			Convey("Then validation should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestLoadCatalog(t *testing.T) {
	Convey("Given a YAML catalog", t, func() {
		doc := `
version: test
elements:
  - {id: flic, symbol: f, category: tempo, value: 0.1}
  - {id: tuck, symbol: o, category: salto, value: 0.5}
`
		Convey("When loading from a reader", func() {
			c, err := catalog.Load(strings.NewReader(doc))

			Convey("Then it should decode every element", func() {
				So(err, ShouldBeNil)
				So(c.Len(), ShouldEqual, 2)
				tuck, ok := c.Lookup("tuck")
				So(ok, ShouldBeTrue)
				So(tuck.Value, ShouldEqual, 0.5)
			})
		})

		Convey("When loading from a file", func() {
			f, err := os.CreateTemp(t.TempDir(), "catalog-*.yaml")
			So(err, ShouldBeNil)
			_, err = f.WriteString(doc)
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			c, err := catalog.LoadFile(f.Name())

			Convey("Then it should load the same catalog", func() {
				So(err, ShouldBeNil)
				So(c.Version(), ShouldEqual, "test")
			})
		})

		Convey("When the file does not exist", func() {
			_, err := catalog.LoadFile("/non/existent/catalog.yaml")

			Convey("Then it should return a load error", func() {
				So(errors.Is(err, catalog.ErrLoadCatalog), ShouldBeTrue)
			})
		})

		Convey("When the YAML is malformed", func() {
			_, err := catalog.Load(strings.NewReader("elements: [:"))

			Convey("Then it should return a load error", func() {
				So(errors.Is(err, catalog.ErrLoadCatalog), ShouldBeTrue)
			})
		})
	})
}
