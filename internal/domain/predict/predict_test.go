package predict_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/okian/diarisk/internal/domain/features"
	"github.com/okian/diarisk/internal/domain/predict"
	. "github.com/smartystreets/goconvey/convey"
)

type recordingClassifier struct {
	got    features.Vector
	result predict.Result
	err    error
}

func (c *recordingClassifier) Classify(_ context.Context, scaled features.Vector) (predict.Result, error) {
	c.got = scaled
	return c.result, c.err
}

func unitScaler() predict.StandardScaler {
	return predict.StandardScaler{
		Mean:  []float64{1, 100, 70, 20, 80, 30, 0.5, 30},
		Scale: []float64{1, 10, 10, 5, 20, 5, 0.25, 10},
	}
}

func TestPipeline(t *testing.T) {
	Convey("Given a scaler and a classifier", t, func() {
		clf := &recordingClassifier{result: predict.Result{Label: 1, Probability: 0.8}}
		p, err := predict.NewPipeline(unitScaler(), clf)
		So(err, ShouldBeNil)

		Convey("When predicting a raw vector", func() {
			raw := features.Vector{2, 110, 80, 25, 100, 35, 1.0, 40}
			res, err := p.Predict(context.Background(), raw)

			Convey("Then the classifier receives the scaled vector", func() {
				So(err, ShouldBeNil)
				So(res, ShouldResemble, predict.Result{Label: 1, Probability: 0.8})
				So(clf.got.Slice(), ShouldResemble, []float64{1, 1, 1, 1, 1, 1, 2, 1})
			})
		})

		Convey("When the classifier fails", func() {
			clf.err = errors.New("boom")
			_, err := p.Predict(context.Background(), features.Vector{})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "classify")
		})

		Convey("When the classifier breaks the contract", func() {
			clf.result = predict.Result{Label: 3, Probability: 0.2}
			_, err := p.Predict(context.Background(), features.Vector{})
			So(errors.Is(err, predict.ErrInvalidResult), ShouldBeTrue)
		})
	})

	Convey("Given a missing artifact", t, func() {
		Convey("When building the pipeline", func() {
			_, err := predict.NewPipeline(nil, &recordingClassifier{})
			So(errors.Is(err, predict.ErrPredictionDisabled), ShouldBeTrue)

			_, err = predict.NewPipeline(unitScaler(), nil)
			So(errors.Is(err, predict.ErrPredictionDisabled), ShouldBeTrue)
		})
	})
}

func TestStandardScaler(t *testing.T) {
	Convey("Given a standard scaler", t, func() {
		Convey("When a scale is zero", func() {
			s := unitScaler()
			s.Scale[0] = 0
			out, err := s.Transform(features.Vector{5, 100, 70, 20, 80, 30, 0.5, 30})
			So(err, ShouldBeNil)
			So(out[0], ShouldEqual, 4.0)
		})

		Convey("When the shape is wrong", func() {
			s := predict.StandardScaler{Mean: []float64{1}, Scale: []float64{1}}
			_, err := s.Transform(features.Vector{})
			So(errors.Is(err, predict.ErrInvalidArtifact), ShouldBeTrue)
		})
	})
}

func TestLogisticModel(t *testing.T) {
	Convey("Given a logistic model", t, func() {
		m := predict.LogisticModel{Coefficients: make([]float64, features.Size)}

		Convey("When every coefficient and the intercept are zero", func() {
			res, err := m.Classify(context.Background(), features.Vector{})

			Convey("Then probability is one half and the default threshold labels it diabetic", func() {
				So(err, ShouldBeNil)
				So(res.Probability, ShouldEqual, 0.5)
				So(res.Label, ShouldEqual, predict.Diabetic)
			})
		})

		Convey("When the intercept is strongly negative", func() {
			m.Intercept = -5
			res, err := m.Classify(context.Background(), features.Vector{})
			So(err, ShouldBeNil)
			So(res.Label, ShouldEqual, predict.NonDiabetic)
			So(res.Probability, ShouldAlmostEqual, 1/(1+math.Exp(5)), 1e-12)
		})

		Convey("When a custom threshold is set", func() {
			m.Threshold = 0.7
			m.Coefficients[features.Glucose] = 1
			res, err := m.Classify(context.Background(), features.Vector{features.Glucose: 0.5})
			So(err, ShouldBeNil)
			So(res.Label, ShouldEqual, predict.NonDiabetic)
			So(res.Probability, ShouldBeGreaterThan, 0.6)
		})

		Convey("When coefficients are missing", func() {
			_, err := predict.LogisticModel{}.Classify(context.Background(), features.Vector{})
			So(errors.Is(err, predict.ErrInvalidArtifact), ShouldBeTrue)
		})

		Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := m.Classify(ctx, features.Vector{})
			So(err, ShouldEqual, context.Canceled)
		})
	})
}

func TestOutcome(t *testing.T) {
	Convey("Given a fixed stub predictor returning (0, 0.12)", t, func() {
		stub := predict.Fixed(0, 0.12)
		v, err := features.FromSlice([]float64{0, 100.0, 100.0, 20.0, 80.0, 24.0, 0.5, 30})
		So(err, ShouldBeNil)

		Convey("When predicting and preparing the outcome", func() {
			res, err := stub.Predict(context.Background(), v)
			So(err, ShouldBeNil)
			out := predict.NewOutcome(res)

			Convey("Then it surfaces Non-Diabetic at 12.0%", func() {
				So(out.Class, ShouldEqual, "Non-Diabetic")
				So(out.RiskScore, ShouldEqual, "12.0%")
				So(out.Progress, ShouldEqual, 12)
			})
		})
	})

	Convey("Given other probabilities", t, func() {
		So(predict.FormatRisk(0.3725), ShouldEqual, "37.25%")
		So(predict.FormatRisk(0.123456), ShouldEqual, "12.35%")
		So(predict.FormatRisk(1), ShouldEqual, "100.0%")
		So(predict.FormatRisk(0), ShouldEqual, "0.0%")

		out := predict.NewOutcome(predict.Result{Label: 1, Probability: 0.999})
		So(out.Class, ShouldEqual, "Diabetic")
		So(out.Progress, ShouldEqual, 99)
	})

	Convey("Given results to validate", t, func() {
		So(predict.Result{Label: 0, Probability: 0}.Validate(), ShouldBeNil)
		So(predict.Result{Label: 1, Probability: 1}.Validate(), ShouldBeNil)
		So(errors.Is(predict.Result{Label: 0, Probability: 1.5}.Validate(), predict.ErrInvalidResult), ShouldBeTrue)
		So(errors.Is(predict.Result{Label: 0, Probability: math.NaN()}.Validate(), predict.ErrInvalidResult), ShouldBeTrue)
	})
}
