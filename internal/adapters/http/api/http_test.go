package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/goalkeep/internal/adapters/http/api"
	"github.com/okian/goalkeep/internal/adapters/repository"
	service "github.com/okian/goalkeep/internal/app"
	"github.com/okian/goalkeep/internal/domain/grid"
	"github.com/okian/goalkeep/internal/domain/model"
)

// heightPredictor favours taller goalkeepers in every zone.
var heightPredictor = grid.PredictorFunc(func(_ context.Context, q model.SaveQuery) (float64, error) {
	return float64(q.HeightCM - 130), nil
})

func newMux() (*http.ServeMux, *service.Service) {
	store, err := repository.NewMemoryStore(repository.DemoGoalkeepers(), repository.DemoOpponents())
	if err != nil {
		panic(err)
	}
	svc := service.New(store, heightPredictor)
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(mux)
	return mux, svc
}

func do(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Timeout(t *testing.T) {
	Convey("Given the API over the demo roster", t, func() {
		mux, _ := newMux()

		Convey("When posting a valid timeout", func() {
			w := do(mux, http.MethodPost, "/v1/timeout",
				`{"opponent_id":"op-1","current_id":"gk-2","shot":{"distance_m":9,"speed_kmh":100,"minute":55,"score_diff":0}}`)

			Convey("Then it returns the ranked decision", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")

				var rep service.TimeoutReport
				So(json.Unmarshal(w.Body.Bytes(), &rep), ShouldBeNil)
				So(rep.AssessmentID, ShouldNotBeEmpty)
				So(len(rep.Ranking.Entries), ShouldEqual, 3)
				So(rep.Ranking.Entries[0].Goalkeeper.ID, ShouldEqual, "gk-1")
				So(rep.Ranking.Decision, ShouldNotBeNil)
				So(string(rep.Ranking.Decision.Tier), ShouldEqual, "swap")
				So(rep.Recommendations, ShouldNotBeEmpty)
			})
		})

		Convey("When the shot is out of range", func() {
			w := do(mux, http.MethodPost, "/v1/timeout",
				`{"opponent_id":"op-1","shot":{"distance_m":3,"speed_kmh":100,"minute":10}}`)

			Convey("Then it is a bad request naming the field", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "bad_request")
				So(w.Body.String(), ShouldContainSubstring, "distance_m must be at least 6")
			})
		})

		Convey("When the body is not JSON", func() {
			w := do(mux, http.MethodPost, "/v1/timeout", `{`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the body has unknown fields", func() {
			w := do(mux, http.MethodPost, "/v1/timeout",
				`{"opponent_id":"op-1","keeper":"x","shot":{"distance_m":9,"speed_kmh":100,"minute":10}}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the opponent is unknown", func() {
			w := do(mux, http.MethodPost, "/v1/timeout",
				`{"opponent_id":"op-9","shot":{"distance_m":9,"speed_kmh":100,"minute":10}}`)
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(w.Body.String(), ShouldContainSubstring, "not_found")
		})

		Convey("When the current goalkeeper is not in the roster", func() {
			w := do(mux, http.MethodPost, "/v1/timeout",
				`{"opponent_id":"op-1","current_id":"gk-9","shot":{"distance_m":9,"speed_kmh":100,"minute":10}}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When using the wrong method", func() {
			w := do(mux, http.MethodGet, "/v1/timeout", "")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Allow"), ShouldEqual, http.MethodPost)
		})
	})
}

func TestServer_PreGameAndTraining(t *testing.T) {
	Convey("Given the API over the demo roster", t, func() {
		mux, svc := newMux()

		Convey("Pre-game with defaults profiles the opponent", func() {
			w := do(mux, http.MethodPost, "/v1/pregame", `{"opponent_id":"op-2"}`)
			So(w.Code, ShouldEqual, http.StatusOK)

			var rep service.PreGameReport
			So(json.Unmarshal(w.Body.Bytes(), &rep), ShouldBeNil)
			So(rep.Profile.Opponent.ID, ShouldEqual, "op-2")
			So(rep.Ranking.Decision, ShouldBeNil)
			So(rep.Margin, ShouldNotBeNil)
		})

		Convey("Pre-game rejects an invalid what-if", func() {
			w := do(mux, http.MethodPost, "/v1/pregame",
				`{"opponent_id":"op-2","what_if":{"distance_m":9,"speed_kmh":300,"minute":10}}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Training returns focus zones and a plan", func() {
			w := do(mux, http.MethodPost, "/v1/training",
				`{"goalkeeper_id":"gk-2","opponent_id":"op-1","mode":"development"}`)
			So(w.Code, ShouldEqual, http.StatusOK)

			var rep service.TrainingReport
			So(json.Unmarshal(w.Body.Bytes(), &rep), ShouldBeNil)
			So(len(rep.Focus), ShouldEqual, 3)
			So(len(rep.Plan.Sessions), ShouldEqual, 5)
		})

		Convey("Training rejects an unknown mode", func() {
			w := do(mux, http.MethodPost, "/v1/training",
				`{"goalkeeper_id":"gk-2","opponent_id":"op-1","mode":"casual"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "mode must be one of")
		})

		Convey("Stats count completed assessments", func() {
			do(mux, http.MethodPost, "/v1/pregame", `{"opponent_id":"op-2"}`)
			So(svc.GetStats()["assessments"], ShouldEqual, int64(1))

			w := do(mux, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var stats map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats["assessments"], ShouldEqual, 1.0)
		})
	})
}

func TestServer_Listings(t *testing.T) {
	Convey("Given the API over the demo roster", t, func() {
		mux, _ := newMux()

		Convey("Goalkeepers are listed in roster order", func() {
			w := do(mux, http.MethodGet, "/v1/goalkeepers", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var gks []model.Goalkeeper
			So(json.Unmarshal(w.Body.Bytes(), &gks), ShouldBeNil)
			So(gks, ShouldResemble, repository.DemoGoalkeepers())
		})

		Convey("Opponents are listed by ranking", func() {
			w := do(mux, http.MethodGet, "/v1/opponents", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var ops []model.Opponent
			So(json.Unmarshal(w.Body.Bytes(), &ops), ShouldBeNil)
			So(len(ops), ShouldEqual, 3)
			So(ops[0].Ranking, ShouldBeLessThan, ops[2].Ranking)
		})

		Convey("Health serves Prometheus metrics", func() {
			do(mux, http.MethodGet, "/v1/opponents", "")
			w := do(mux, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "goalkeep_")
		})
	})
}

type failingDeps struct{ err error }

func (f failingDeps) Timeout(context.Context, service.TimeoutRequest) (service.TimeoutReport, error) {
	return service.TimeoutReport{}, f.err
}

func (f failingDeps) PreGame(context.Context, service.PreGameRequest) (service.PreGameReport, error) {
	return service.PreGameReport{}, f.err
}

func (f failingDeps) Training(context.Context, service.TrainingRequest) (service.TrainingReport, error) {
	return service.TrainingReport{}, f.err
}

func (f failingDeps) Goalkeepers(context.Context) ([]model.Goalkeeper, error) { return nil, f.err }
func (f failingDeps) Opponents(context.Context) ([]model.Opponent, error)     { return nil, f.err }

type staticStats map[string]any

func (s staticStats) GetStats() map[string]any { return s }

func TestServer_Errors(t *testing.T) {
	Convey("Given dependencies that fail unexpectedly", t, func() {
		mux := http.NewServeMux()
		api.NewServer(failingDeps{err: errors.New("disk on fire")}, staticStats{}).Register(mux)

		Convey("Then the cause is hidden behind a 500", func() {
			w := do(mux, http.MethodGet, "/v1/goalkeepers", "")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(w.Body.String(), ShouldContainSubstring, "internal_error")
			So(w.Body.String(), ShouldNotContainSubstring, "disk on fire")
		})
	})

	Convey("Given dependencies reporting an empty roster", t, func() {
		mux := http.NewServeMux()
		api.NewServer(failingDeps{err: service.ErrEmptyRoster}, staticStats{}).Register(mux)

		w := do(mux, http.MethodPost, "/v1/pregame", `{"opponent_id":"op-1"}`)
		So(w.Code, ShouldEqual, http.StatusNotFound)
	})

	Convey("Error values keep their kind and cause", t, func() {
		cause := errors.New("boom")
		err := api.WrapKind("api.test", api.ErrBadRequest, cause)
		So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
		So(errors.Is(err, cause), ShouldBeTrue)
		So(err.Error(), ShouldEqual, "api.test: bad request: boom")
		So(api.Wrap("api.test", nil), ShouldBeNil)
		So(api.NewKind("api.test", api.ErrMethodNotAllowed).Error(), ShouldEqual, "api.test: method not allowed")
	})
}
