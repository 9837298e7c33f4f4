package estimate_test

import (
	"math"
	"testing"

	"github.com/okian/diarisk/internal/domain/estimate"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBMI(t *testing.T) {
	Convey("Given weight and height", t, func() {
		Convey("When computing BMI for 70kg at 170cm", func() {
			Convey("Then it should round to 2 decimals", func() {
				So(estimate.BMI(70, 170), ShouldEqual, 24.22)
			})
		})

		Convey("When height is zero or negative", func() {
			Convey("Then it should return 0 instead of dividing by zero", func() {
				for _, w := range []float64{0, 10, 70, 200} {
					So(estimate.BMI(w, 0), ShouldEqual, 0.0)
					So(estimate.BMI(w, -150), ShouldEqual, 0.0)
				}
			})
		})

		Convey("When using the default form values", func() {
			Convey("Then 30kg at 150cm is 13.33", func() {
				So(estimate.BMI(30, 150), ShouldEqual, 13.33)
			})
		})
	})
}

func TestEstimateInsulin(t *testing.T) {
	Convey("Given glucose, BMI and pregnancies", t, func() {
		Convey("When glucose is high and BMI is obese", func() {
			Convey("Then every adjustment applies", func() {
				So(estimate.EstimateInsulin(150, 32, 2), ShouldEqual, 124.0)
			})
		})

		Convey("When glucose is in the middle band", func() {
			So(estimate.EstimateInsulin(120, 25, 0), ShouldEqual, 70.0)
		})

		Convey("When glucose sits exactly on a threshold", func() {
			Convey("Then the comparison is strict", func() {
				So(estimate.EstimateInsulin(100, 25, 0), ShouldEqual, 50.0)
				So(estimate.EstimateInsulin(140, 30, 0), ShouldEqual, 70.0)
			})
		})

		Convey("When any input grows", func() {
			Convey("Then the estimate never decreases", func() {
				prev := 0.0
				for g := 0.0; g <= 300; g += 5 {
					v := estimate.EstimateInsulin(g, 25, 1)
					So(v, ShouldBeGreaterThanOrEqualTo, prev)
					prev = v
				}
				prev = 0
				for b := 10.0; b <= 60; b += 0.5 {
					v := estimate.EstimateInsulin(120, b, 1)
					So(v, ShouldBeGreaterThanOrEqualTo, prev)
					prev = v
				}
				prev = 0
				for p := 0; p <= 20; p++ {
					v := estimate.EstimateInsulin(120, 25, p)
					So(v, ShouldBeGreaterThanOrEqualTo, prev)
					prev = v
				}
			})
		})
	})
}

func TestEstimateGlucose(t *testing.T) {
	Convey("Given age, BMI, insulin and activity", t, func() {
		Convey("When insulin is high and the subject is inactive", func() {
			So(estimate.EstimateGlucose(50, 28, 200, false), ShouldEqual, 161.2)
		})

		Convey("When the subject is active with normal insulin", func() {
			So(estimate.EstimateGlucose(30, 24, 80, true), ShouldEqual, 112.6)
		})

		Convey("When insulin is exactly 150", func() {
			Convey("Then no insulin adjustment applies", func() {
				So(estimate.EstimateGlucose(30, 24, 150, true), ShouldEqual, 112.6)
			})
		})
	})
}

func TestRound(t *testing.T) {
	Convey("Given values to round", t, func() {
		So(estimate.Round(1.005, 0), ShouldEqual, 1.0)
		So(estimate.Round(2.5, 0), ShouldEqual, 3.0)
		So(estimate.Round(-2.5, 0), ShouldEqual, -3.0)
		So(estimate.Round(12.345678, 2), ShouldEqual, 12.35)
	})
}

func TestIdempotence(t *testing.T) {
	Convey("Given the estimation functions", t, func() {
		Convey("When called twice with identical inputs", func() {
			Convey("Then results are identical", func() {
				So(estimate.BMI(82, 181), ShouldEqual, estimate.BMI(82, 181))
				So(estimate.EstimateBP(44, 27.5, estimate.Lifestyle{Smoker: true}), ShouldResemble,
					estimate.EstimateBP(44, 27.5, estimate.Lifestyle{Smoker: true}))
				So(estimate.InterpretBP(131, 79), ShouldEqual, estimate.InterpretBP(131, 79))
				So(estimate.EstimateSkinThickness(33.1, 52), ShouldEqual, estimate.EstimateSkinThickness(33.1, 52))
				So(estimate.EstimateInsulin(133, 31, 3), ShouldEqual, estimate.EstimateInsulin(133, 31, 3))
				So(estimate.EstimateGlucose(61, 29, 170, false), ShouldEqual, estimate.EstimateGlucose(61, 29, 170, false))
				w := []float64{1.0, 0.5}
				So(estimate.PedigreeScore(2, w), ShouldEqual, estimate.PedigreeScore(2, w))
			})
		})

		Convey("When called with NaN", func() {
			Convey("Then BMI propagates NaN without panicking", func() {
				So(math.IsNaN(estimate.BMI(math.NaN(), 170)), ShouldBeTrue)
			})
		})
	})
}
