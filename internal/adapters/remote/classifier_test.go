package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/sony/gobreaker"

	"github.com/okian/diarisk/internal/adapters/remote"
	"github.com/okian/diarisk/internal/domain/features"
	"github.com/okian/diarisk/internal/domain/predict"
	"github.com/okian/diarisk/pkg/logger"
)

func TestClassifier(t *testing.T) {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		t.Fatalf("init logger: %v", err)
	}
	ctx := context.Background()
	scaled := features.Vector{0, 1, -1, 0.5, 0, 0.2, 0, 1}

	Convey("Given an inference service", t, func() {
		var calls atomic.Int32
		var status atomic.Int32
		status.Store(http.StatusOK)
		var got struct {
			Names    []string  `json:"names"`
			Features []float64 `json:"features"`
		}

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			if r.URL.Path != "/infer" || r.Method != http.MethodPost {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_ = json.NewDecoder(r.Body).Decode(&got)
			code := int(status.Load())
			w.WriteHeader(code)
			if code == http.StatusOK {
				_, _ = w.Write([]byte(`{"label": 1, "probability": 0.83}`))
			}
		}))
		defer srv.Close()

		c, err := remote.New(srv.URL+"/", remote.WithTripAfter(2), remote.WithOpenTimeout(time.Minute))
		So(err, ShouldBeNil)

		Convey("When the service answers", func() {
			res, err := c.Classify(ctx, scaled)

			Convey("Then the result is decoded", func() {
				So(err, ShouldBeNil)
				So(res, ShouldResemble, predict.Result{Label: 1, Probability: 0.83})
			})

			Convey("And the request carries names and values in column order", func() {
				So(got.Names, ShouldResemble, features.Names())
				So(got.Features, ShouldResemble, scaled.Slice())
			})
		})

		Convey("When the service keeps failing", func() {
			status.Store(http.StatusInternalServerError)

			_, err1 := c.Classify(ctx, scaled)
			_, err2 := c.Classify(ctx, scaled)
			_, err3 := c.Classify(ctx, scaled)

			Convey("Then failures are reported until the breaker opens", func() {
				So(errors.Is(err1, remote.ErrRemote), ShouldBeTrue)
				So(errors.Is(err2, remote.ErrRemote), ShouldBeTrue)
				So(errors.Is(err3, remote.ErrUnavailable), ShouldBeTrue)
				So(c.State(), ShouldEqual, gobreaker.StateOpen)
				So(calls.Load(), ShouldEqual, int32(2))
			})
		})

		Convey("When the caller cancels", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err1 := c.Classify(cctx, scaled)
			_, err2 := c.Classify(cctx, scaled)
			_, err3 := c.Classify(cctx, scaled)

			Convey("Then the breaker stays closed", func() {
				So(errors.Is(err1, context.Canceled), ShouldBeTrue)
				So(errors.Is(err3, context.Canceled), ShouldBeTrue)
				So(err2, ShouldNotBeNil)
				So(c.State(), ShouldEqual, gobreaker.StateClosed)
			})
		})
	})

	Convey("Given a service returning an out-of-range probability", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"label": 0, "probability": 1.7}`))
		}))
		defer srv.Close()

		c, err := remote.New(srv.URL)
		So(err, ShouldBeNil)

		_, err = c.Classify(ctx, scaled)
		So(errors.Is(err, predict.ErrInvalidResult), ShouldBeTrue)
		So(errors.Is(err, remote.ErrRemote), ShouldBeTrue)
	})

	Convey("Given a slow service", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{"label": 0, "probability": 0.1}`))
		}))
		defer srv.Close()

		c, err := remote.New(srv.URL, remote.WithTimeout(20*time.Millisecond))
		So(err, ShouldBeNil)

		_, err = c.Classify(ctx, scaled)
		So(errors.Is(err, remote.ErrRemote), ShouldBeTrue)
	})

	Convey("Given malformed base URLs", t, func() {
		for _, raw := range []string{"", "ml:8000", "://nope"} {
			_, err := remote.New(raw)
			So(err, ShouldNotBeNil)
		}
	})
}
