package legality_test

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/okian/tariff/internal/domain/catalog"
	"github.com/okian/tariff/internal/domain/legality"
	"github.com/okian/tariff/internal/domain/rules"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestChecker() *legality.Checker {
	c, err := catalog.New("test", []catalog.Element{
		{ID: "saltoA", Symbol: "o", Category: catalog.CategorySalto, Value: 0.5},
		{ID: "saltoB", Symbol: "<", Category: catalog.CategorySalto, Value: 0.6},
		{ID: "rollX", Symbol: "(", Category: catalog.CategoryRoll, Value: 0.1},
		{ID: "flic", Symbol: "f", Category: catalog.CategoryTempo, Value: 0.1},
		{ID: "arab", Symbol: "a^", Category: catalog.CategoryArabian, Value: 0.2},
		{ID: "full", Symbol: "1", Category: catalog.CategorySingleTwist, Value: 0.9},
	})
	if err != nil {
		panic(err)
	}
	return legality.NewChecker(c, rules.Default())
}

func TestValidatePasses_NoRepeat(t *testing.T) {
	Convey("Given a checker over a small catalog", t, func() {
		checker := newTestChecker()

		Convey("When a salto is repeated next to repeated rolls", func() {
			pass1 := legality.Pass{"saltoA", "saltoA", "rollX", "rollX"}
			res := checker.ValidatePasses(pass1, legality.Pass{}, language.English)

			Convey("Then only the second salto should be flagged", func() {
				So(res.PerPass[0].BadIndices, ShouldResemble, []int{1})
				So(res.PerPass[1].BadIndices, ShouldBeEmpty)
				So(res.IsLegal, ShouldBeFalse)
			})

			Convey("And one message should describe the repeat", func() {
				So(res.PerPass[0].Messages, ShouldResemble, []string{"Element o is repeated"})
				So(res.CrossPassMessages, ShouldBeEmpty)
			})
		})

		Convey("When the same salto appears three times in a pass", func() {
			pass1 := legality.Pass{"saltoA", "flic", "saltoA", "flic", "saltoA"}
			res := checker.ValidatePasses(pass1, legality.Pass{}, language.English)

			Convey("Then every repeat is flagged but the message is not duplicated", func() {
				So(res.PerPass[0].BadIndices, ShouldResemble, []int{2, 4})
				So(len(res.PerPass[0].Messages), ShouldEqual, 1)
			})
		})

		Convey("When a salto from pass 1 is repeated in pass 2", func() {
			pass1 := legality.Pass{"rollX", "flic", "saltoA"}
			pass2 := legality.Pass{"rollX", "flic", "saltoB", "flic", "saltoA"}
			res := checker.ValidatePasses(pass1, pass2, language.English)

			Convey("Then the pass 2 slot is flagged with a cross-pass message", func() {
				So(res.PerPass[0].BadIndices, ShouldBeEmpty)
				So(res.PerPass[1].BadIndices, ShouldResemble, []int{4})
				So(res.PerPass[1].Messages, ShouldBeEmpty)
				So(res.CrossPassMessages, ShouldResemble, []string{"Element o was already performed in pass 1"})
				So(res.IsBad(1, 4), ShouldBeTrue)
				So(res.IsBad(0, 2), ShouldBeFalse)
			})
		})

		Convey("When an unknown id is repeated", func() {
			res := checker.ValidatePasses(legality.Pass{"mystery", "mystery"}, legality.Pass{}, language.English)

			Convey("Then it follows the strict no-repeat rule", func() {
				So(res.PerPass[0].BadIndices, ShouldResemble, []int{1})
				So(res.PerPass[0].Messages, ShouldResemble, []string{"Element mystery is repeated"})
			})
		})

		Convey("When empty slots are embedded", func() {
			pass1 := legality.Pass{"saltoA", "", "", "saltoB", "", "", "", ""}
			res := checker.ValidatePasses(pass1, legality.Pass{}, language.English)

			Convey("Then they are never counted or flagged", func() {
				So(res.IsLegal, ShouldBeTrue)
				So(res.PerPass[0].BadIndices, ShouldBeEmpty)
			})
		})

		Convey("When both passes are empty", func() {
			res := checker.ValidatePasses(legality.Pass{}, legality.Pass{}, language.English)

			Convey("Then the sheet is legal with empty, non-nil lists", func() {
				So(res.IsLegal, ShouldBeTrue)
				So(res.PerPass[0].BadIndices, ShouldNotBeNil)
				So(res.PerPass[0].Messages, ShouldNotBeNil)
				So(res.CrossPassMessages, ShouldNotBeNil)
			})
		})
	})
}

func TestValidatePasses_Exemptions(t *testing.T) {
	Convey("Given exempt elements", t, func() {
		checker := newTestChecker()

		Convey("When rolls, tempos and arabians fill both passes", func() {
			pass1 := legality.Pass{"rollX", "flic", "flic", "arab", "flic", "rollX", "arab", "flic"}
			pass2 := legality.Pass{"rollX", "rollX", "flic", "arab", "arab", "flic", "flic", "rollX"}
			res := checker.ValidatePasses(pass1, pass2, language.English)

			Convey("Then no repeat is ever flagged", func() {
				So(res.IsLegal, ShouldBeTrue)
				So(res.PerPass[0].BadIndices, ShouldBeEmpty)
				So(res.PerPass[1].BadIndices, ShouldBeEmpty)
			})
		})
	})
}

func TestValidatePasses_TwistCap(t *testing.T) {
	Convey("Given a single twist salto", t, func() {
		checker := newTestChecker()

		Convey("When it appears exactly three times", func() {
			pass1 := legality.Pass{"rollX", "flic", "full", "flic", "full"}
			pass2 := legality.Pass{"rollX", "flic", "full"}
			res := checker.ValidatePasses(pass1, pass2, language.English)

			Convey("Then the sheet is legal", func() {
				So(res.IsLegal, ShouldBeTrue)
			})
		})

		Convey("When the third occurrence is the last slot", func() {
			pass1 := legality.Pass{"full", "flic", "full", "flic", "flic", "flic", "flic", "full"}
			res := checker.ValidatePasses(pass1, legality.Pass{}, language.English)

			Convey("Then it is legal", func() {
				So(res.IsLegal, ShouldBeTrue)
			})
		})

		Convey("When a fourth occurrence follows", func() {
			pass1 := legality.Pass{"full", "flic", "full", "flic", "flic", "flic", "flic", "full"}
			pass2 := legality.Pass{"rollX", "flic", "full"}
			res := checker.ValidatePasses(pass1, pass2, language.English)

			Convey("Then the fourth is flagged", func() {
				So(res.IsLegal, ShouldBeFalse)
				So(res.PerPass[1].BadIndices, ShouldResemble, []int{2})
				So(res.CrossPassMessages, ShouldResemble, []string{"Element 1 may be performed at most 3 times"})
			})

			Convey("And the third occurrence closing pass 1 stays legal", func() {
				So(res.PerPass[0].BadIndices, ShouldBeEmpty)
				So(res.PerPass[0].Messages, ShouldBeEmpty)
			})
		})

		Convey("When the second occurrence closes a pass and a third follows", func() {
			pass1 := legality.Pass{"full", "flic", "flic", "flic", "flic", "flic", "flic", "full"}
			pass2 := legality.Pass{"full"}
			res := checker.ValidatePasses(pass1, pass2, language.English)

			Convey("Then the last-slot occurrence is flagged", func() {
				So(res.PerPass[0].BadIndices, ShouldResemble, []int{7})
				So(res.PerPass[0].Messages, ShouldResemble, []string{"Element 1 may only close a pass on its final repetition"})
				So(res.PerPass[1].BadIndices, ShouldBeEmpty)
			})
		})

		Convey("When a fourth occurrence lands in the last slot", func() {
			pass1 := legality.Pass{"full", "flic", "full", "flic", "full", "flic", "flic", "full"}
			res := checker.ValidatePasses(pass1, legality.Pass{}, language.English)

			Convey("Then it is flagged regardless of position", func() {
				So(res.PerPass[0].BadIndices, ShouldResemble, []int{7})
				So(res.PerPass[0].Messages, ShouldResemble, []string{"Element 1 may be performed at most 3 times"})
			})
		})

		Convey("When the first occurrence is in the last slot", func() {
			pass1 := legality.Pass{"rollX", "flic", "saltoA", "flic", "saltoB", "flic", "flic", "full"}
			pass2 := legality.Pass{"rollX", "flic", "full"}
			res := checker.ValidatePasses(pass1, pass2, language.English)

			Convey("Then the first occurrence is never flagged", func() {
				So(res.IsLegal, ShouldBeTrue)
			})
		})
	})
}

func TestValidatePasses_Languages(t *testing.T) {
	Convey("Given a repeated salto", t, func() {
		checker := newTestChecker()
		pass1 := legality.Pass{"saltoA", "saltoA"}

		Convey("When asking for French", func() {
			res := checker.ValidatePasses(pass1, legality.Pass{}, language.French)

			Convey("Then messages are translated", func() {
				So(res.PerPass[0].Messages, ShouldResemble, []string{"L'élément o est répété"})
			})
		})

		Convey("When asking for Dutch", func() {
			res := checker.ValidatePasses(pass1, legality.Pass{}, language.MustParse("nl-BE"))

			Convey("Then the regional variant resolves to Dutch", func() {
				So(res.PerPass[0].Messages, ShouldResemble, []string{"Element o wordt herhaald"})
			})
		})

		Convey("When asking for an unsupported language", func() {
			res := checker.ValidatePasses(pass1, legality.Pass{}, language.Japanese)

			Convey("Then messages fall back to English", func() {
				So(res.PerPass[0].Messages, ShouldResemble, []string{"Element o is repeated"})
			})
		})
	})
}

func TestParseLanguage(t *testing.T) {
	Convey("Given language strings", t, func() {
		So(legality.ParseLanguage("fr").String(), ShouldEqual, "fr")
		So(legality.ParseLanguage("nl-BE,nl;q=0.9").String(), ShouldEqual, "nl")
		So(legality.ParseLanguage("not a tag").String(), ShouldEqual, "en")
		So(legality.ParseLanguage().String(), ShouldEqual, "en")
		So(len(legality.SupportedLanguages()), ShouldEqual, 3)
	})
}

func TestValidatePasses_Properties(t *testing.T) {
	Convey("Given arbitrary passes", t, func() {
		checker := newTestChecker()
		pass1 := legality.Pass{"saltoA", "full", "saltoA", "rollX", "full", "mystery", "full", "full"}
		pass2 := legality.Pass{"mystery", "saltoB", "", "saltoB", "rollX", "arab", "arab", "saltoA"}

		Convey("Then evaluation is idempotent", func() {
			a := checker.ValidatePasses(pass1, pass2, language.English)
			b := checker.ValidatePasses(pass1, pass2, language.English)
			So(a, ShouldResemble, b)
		})

		Convey("Then every later occurrence of a strict id is flagged", func() {
			res := checker.ValidatePasses(pass1, pass2, language.English)
			So(res.IsBad(0, 2), ShouldBeTrue) // saltoA
			So(res.IsBad(1, 0), ShouldBeTrue) // mystery
			So(res.IsBad(1, 3), ShouldBeTrue) // saltoB
			So(res.IsBad(1, 7), ShouldBeTrue) // saltoA
			So(res.IsBad(0, 0), ShouldBeFalse)
			So(res.IsBad(1, 4), ShouldBeFalse)
			So(res.IsBad(1, 6), ShouldBeFalse)
		})

		Convey("Then the fourth single twist is flagged", func() {
			res := checker.ValidatePasses(pass1, pass2, language.English)
			So(res.IsBad(0, 6), ShouldBeFalse)
			So(res.IsBad(0, 7), ShouldBeTrue)
		})
	})
}
