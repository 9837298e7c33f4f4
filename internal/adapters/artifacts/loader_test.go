package artifacts_test

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/diarisk/internal/adapters/artifacts"
	"github.com/okian/diarisk/internal/domain/features"
	"github.com/okian/diarisk/internal/domain/predict"
	"github.com/okian/diarisk/pkg/logger"
)

const scalerYAML = `
mean:  [0, 100, 70, 20, 80, 25, 0.5, 30]
scale: [1, 10, 10, 5, 20, 5, 0.25, 10]
`

const modelYAML = `
kind: logistic
features: [Pregnancies, Glucose, BloodPressure, SkinThickness, Insulin, BMI, DiabetesPedigreeFunction, Age]
coefficients: [0.1, 1.0, 0, 0, 0, 0.5, 0, 0.2]
intercept: -1
threshold: 0.5
`

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoader(t *testing.T) {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		t.Fatalf("init logger: %v", err)
	}
	ctx := context.Background()

	Convey("Given a directory with artifacts", t, func() {
		dir := t.TempDir()
		scalerPath := write(t, dir, "scaler.yaml", scalerYAML)
		modelPath := write(t, dir, "model.yaml", modelYAML)
		loader := artifacts.NewLoader()

		Convey("When both files are valid", func() {
			set, err := loader.Load(ctx, modelPath, scalerPath)

			Convey("Then the parameters are decoded", func() {
				So(err, ShouldBeNil)
				So(set.Scaler.Mean, ShouldHaveLength, features.Size)
				So(set.Scaler.Scale[1], ShouldEqual, 10.0)
				So(set.Model.Intercept, ShouldEqual, -1.0)
				So(set.Model.Coefficients[1], ShouldEqual, 1.0)
			})

			Convey("And the pipeline predicts on a mean vector", func() {
				p, err := set.Predictor()
				So(err, ShouldBeNil)

				// Every scaled value is zero, so p = sigmoid(-1).
				res, err := p.Predict(ctx, features.Vector{0, 100, 70, 20, 80, 25, 0.5, 30})
				So(err, ShouldBeNil)
				So(res.Label, ShouldEqual, predict.NonDiabetic)
				So(res.Probability, ShouldAlmostEqual, 0.268941, 1e-6)
			})
		})

		Convey("When the model file is missing", func() {
			_, err := loader.Load(ctx, filepath.Join(dir, "absent.yaml"), scalerPath)

			Convey("Then ErrArtifactNotFound is returned", func() {
				So(errors.Is(err, artifacts.ErrArtifactNotFound), ShouldBeTrue)
				So(errors.Is(err, fs.ErrNotExist), ShouldBeTrue)
			})
		})

		Convey("When the scaler path is empty", func() {
			_, err := loader.Load(ctx, modelPath, "")
			So(errors.Is(err, artifacts.ErrArtifactNotFound), ShouldBeTrue)
		})

		Convey("When the scaler has the wrong width", func() {
			bad := write(t, dir, "bad-scaler.yaml", "mean: [1, 2]\nscale: [1, 2]\n")
			_, err := loader.LoadScaler(ctx, bad)
			So(errors.Is(err, predict.ErrInvalidArtifact), ShouldBeTrue)
		})

		Convey("When the model is not YAML", func() {
			bad := write(t, dir, "bad-model.yaml", "coefficients: [1, 2")
			_, err := loader.LoadModel(ctx, bad)
			So(errors.Is(err, predict.ErrInvalidArtifact), ShouldBeTrue)
		})

		Convey("When the model kind is unknown", func() {
			bad := write(t, dir, "forest.yaml", "kind: random_forest\n")
			_, err := loader.LoadModel(ctx, bad)
			So(errors.Is(err, predict.ErrInvalidArtifact), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "random_forest")
		})

		Convey("When the feature order differs", func() {
			bad := write(t, dir, "reordered.yaml", `
features: [Glucose, Pregnancies, BloodPressure, SkinThickness, Insulin, BMI, DiabetesPedigreeFunction, Age]
coefficients: [0, 0, 0, 0, 0, 0, 0, 0]
`)
			_, err := loader.LoadModel(ctx, bad)
			So(errors.Is(err, predict.ErrInvalidArtifact), ShouldBeTrue)
		})

		Convey("When the model is JSON", func() {
			path := write(t, dir, "model.json",
				`{"coefficients": [0, 0, 0, 0, 0, 0, 0, 0], "intercept": 0.25}`)
			m, err := loader.LoadModel(ctx, path)
			So(err, ShouldBeNil)
			So(m.Intercept, ShouldEqual, 0.25)
		})
	})
}
