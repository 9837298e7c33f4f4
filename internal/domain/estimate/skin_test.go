package estimate_test

import (
	"math"
	"testing"

	"github.com/okian/diarisk/internal/domain/estimate"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEstimateSkinThickness(t *testing.T) {
	Convey("Given the linear skin-thickness model", t, func() {
		Convey("When evaluated at the reference point", func() {
			Convey("Then it returns the base value", func() {
				So(estimate.EstimateSkinThickness(30.22, 31.19), ShouldEqual, 27.36)
			})
		})

		Convey("When BMI moves one slope interval up", func() {
			Convey("Then it reaches the upper anchor", func() {
				So(estimate.EstimateSkinThickness(35.14, 31.19), ShouldEqual, 33.24)
			})
		})

		Convey("When inputs are extreme", func() {
			Convey("Then the result is clamped into [5, 99]", func() {
				So(estimate.EstimateSkinThickness(1000, 30), ShouldEqual, 99.0)
				So(estimate.EstimateSkinThickness(-1000, 30), ShouldEqual, 5.0)
				So(estimate.EstimateSkinThickness(10, 1), ShouldEqual, 5.0)
				So(estimate.EstimateSkinThickness(60, 120), ShouldEqual, 99.0)
			})
		})

		Convey("When sweeping arbitrary inputs", func() {
			Convey("Then every output stays inside the clamp", func() {
				for bmi := -200.0; bmi <= 1200; bmi += 37.5 {
					for age := -50.0; age <= 500; age += 23 {
						v := estimate.EstimateSkinThickness(bmi, age)
						So(v, ShouldBeBetweenOrEqual, 5, 99)
					}
				}
			})
		})

		Convey("When inputs are infinite", func() {
			So(estimate.EstimateSkinThickness(math.Inf(1), 30), ShouldEqual, 99.0)
			So(estimate.EstimateSkinThickness(math.Inf(-1), 30), ShouldEqual, 5.0)
		})
	})
}

func TestSkinThicknessBands(t *testing.T) {
	Convey("Given the banded skin-thickness estimate", t, func() {
		So(estimate.SkinThicknessBands(17), ShouldEqual, 10.0)
		So(estimate.SkinThicknessBands(18.5), ShouldEqual, 20.0)
		So(estimate.SkinThicknessBands(24.9), ShouldEqual, 20.0)
		So(estimate.SkinThicknessBands(25), ShouldEqual, 25.0)
		So(estimate.SkinThicknessBands(30), ShouldEqual, 35.0)
	})
}

func TestSkinFormula(t *testing.T) {
	Convey("Given a skin formula name", t, func() {
		Convey("When it is empty", func() {
			f, err := estimate.ParseSkinFormula("")
			So(err, ShouldBeNil)
			So(f, ShouldEqual, estimate.SkinLinear)
		})

		Convey("When it names the bands formula", func() {
			f, err := estimate.ParseSkinFormula(" Bands ")
			So(err, ShouldBeNil)
			So(f, ShouldEqual, estimate.SkinBands)
			So(f.Estimate(27, 40), ShouldEqual, 25.0)
		})

		Convey("When it is unknown", func() {
			_, err := estimate.ParseSkinFormula("quadratic")
			So(err, ShouldNotBeNil)
		})

		Convey("When linear is applied", func() {
			So(estimate.SkinLinear.Estimate(30.22, 31.19), ShouldEqual, 27.36)
		})
	})
}
