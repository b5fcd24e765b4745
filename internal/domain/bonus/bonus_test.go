package bonus_test

import (
	"testing"

	"github.com/okian/tariff/internal/domain/bonus"
	"github.com/okian/tariff/internal/domain/rules"
	. "github.com/smartystreets/goconvey/convey"
)

func TestComputePassBonuses(t *testing.T) {
	Convey("Given a calculator over the default ruleset", t, func() {
		calc := bonus.NewCalculator(rules.Default())
		male := bonus.AthleteContext{Gender: rules.GenderMale, AutoBonusEnabled: true}

		Convey("When every element exceeds the male threshold", func() {
			res := calc.ComputePassBonuses([8]float64{5, 5, 5, 5, 5, 5, 5, 5}, male)

			Convey("Then the first is suppressed and the rest earn the bonus", func() {
				So(res.PerElement[0], ShouldBeNil)
				for i := 1; i < 8; i++ {
					b, ok := res.At(i)
					So(ok, ShouldBeTrue)
					So(b, ShouldEqual, 1.0)
				}
				So(res.Count(), ShouldEqual, 7)
				So(res.Total(), ShouldEqual, 7.0)
			})
		})

		Convey("When auto bonus is disabled", func() {
			ctx := male
			ctx.AutoBonusEnabled = false
			res := calc.ComputePassBonuses([8]float64{5, 5, 5, 5, 5, 5, 5, 5}, ctx)

			Convey("Then every slot is nil", func() {
				So(res, ShouldResemble, bonus.Result{})
				So(res.Count(), ShouldEqual, 0)
			})
		})

		Convey("When values sit exactly on the threshold", func() {
			res := calc.ComputePassBonuses([8]float64{4.4, 4.4, 4.5, 4.4, 4.6}, male)

			Convey("Then only strictly greater values qualify", func() {
				So(res.PerElement[2], ShouldBeNil)
				b, ok := res.At(4)
				So(ok, ShouldBeTrue)
				So(b, ShouldEqual, 1.0)
				So(res.Count(), ShouldEqual, 1)
			})
		})

		Convey("When the pass is padded with empty slots", func() {
			res := calc.ComputePassBonuses([8]float64{5.4, 5.6}, male)

			Convey("Then empty slots never earn a bonus", func() {
				So(res.PerElement[0], ShouldBeNil)
				So(res.PerElement[1], ShouldNotBeNil)
				for i := 2; i < 8; i++ {
					So(res.PerElement[i], ShouldBeNil)
				}
			})
		})

		Convey("When the athlete is female", func() {
			female := bonus.AthleteContext{Gender: rules.GenderFemale, AutoBonusEnabled: true}
			res := calc.ComputePassBonuses([8]float64{4.2, 4.2, 4.2}, female)

			Convey("Then the female threshold applies", func() {
				So(res.PerElement[0], ShouldBeNil)
				So(res.Count(), ShouldEqual, 2)
			})

			Convey("And the same values earn nothing for a male athlete", func() {
				So(calc.ComputePassBonuses([8]float64{4.2, 4.2, 4.2}, male).Count(), ShouldEqual, 0)
			})
		})

		Convey("When the gender is unknown", func() {
			res := calc.ComputePassBonuses([8]float64{5, 5, 5}, bonus.AthleteContext{AutoBonusEnabled: true})

			Convey("Then no profile applies", func() {
				So(res.Count(), ShouldEqual, 0)
			})
		})

		Convey("When track and level are set", func() {
			ctx := male
			ctx.Track = "international"
			ctx.Level = "senior"

			Convey("Then the result is unchanged", func() {
				values := [8]float64{5, 1, 5, 1, 5}
				So(calc.ComputePassBonuses(values, ctx), ShouldResemble, calc.ComputePassBonuses(values, male))
			})
		})

		Convey("When called twice with the same input", func() {
			values := [8]float64{0.5, 4.5, 2.0, 5.4, 0.1, 4.9}

			Convey("Then the results are identical", func() {
				So(calc.ComputePassBonuses(values, male), ShouldResemble, calc.ComputePassBonuses(values, male))
			})
		})

		Convey("When the result is mutated by the caller", func() {
			res := calc.ComputePassBonuses([8]float64{5, 5, 5}, male)
			*res.PerElement[1] = 42

			Convey("Then later results are unaffected", func() {
				b, _ := calc.ComputePassBonuses([8]float64{5, 5, 5}, male).At(2)
				So(b, ShouldEqual, 1.0)
			})
		})
	})
}

func TestResultAt(t *testing.T) {
	Convey("Given an empty result", t, func() {
		var res bonus.Result

		Convey("Then out of range slots report no bonus", func() {
			_, ok := res.At(-1)
			So(ok, ShouldBeFalse)
			_, ok = res.At(8)
			So(ok, ShouldBeFalse)
		})
	})
}
