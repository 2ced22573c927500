package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yasi-python/cistats/pkg/config"
	"github.com/yasi-python/cistats/pkg/decision"
	"github.com/yasi-python/cistats/pkg/interval"
	"github.com/yasi-python/cistats/pkg/metrics"
	"github.com/yasi-python/cistats/pkg/stats"
	"github.com/yasi-python/cistats/pkg/storage"
)

// Store is what the server needs from the accumulator database.
type Store interface {
	AppendSamples(name string, kind stats.MeanKind, samples []float64) (*storage.MeanRecord, error)
	GetMean(name string) (*storage.MeanRecord, error)
	ListMeans() ([]storage.MeanRecord, error)
}

type Server struct {
	Store       Store
	Defaults    stats.Confidence
	MetricsPath string
	HealthzPath string
	reqInFlight atomic.Int64
}

func New(store Store, defaults stats.Confidence, metricsPath, healthzPath string) *Server {
	return &Server{Store: store, Defaults: defaults, MetricsPath: metricsPath, HealthzPath: healthzPath}
}

// Handler returns the routed HTTP handler; exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.HealthzPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle(s.MetricsPath, promhttp.Handler())

	mux.HandleFunc("/api/v1/mean", s.wrap(s.handleMean))
	mux.HandleFunc("/api/v1/quantile", s.wrap(s.handleQuantile))
	mux.HandleFunc("/api/v1/proportion", s.wrap(s.handleProportion))
	mux.HandleFunc("/api/v1/compare", s.wrap(s.handleCompare))
	mux.HandleFunc("/api/v1/accumulators/append", s.wrap(s.handleAppend))
	mux.HandleFunc("/api/v1/accumulators/ci", s.wrap(s.handleAccumulatorCI))
	mux.HandleFunc("/api/v1/accumulators", s.wrap(s.handleList))
	return mux
}

func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) wrap(h func(w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.reqInFlight.Add(1)
		start := time.Now()
		defer func() {
			s.reqInFlight.Add(-1)
			metrics.RequestLatency.Observe(time.Since(start).Seconds())
		}()
		h(w, r)
	}
}

// confidence resolves an optional level/side pair, falling back to the
// configured defaults.
func (s *Server) confidence(level float64, side string) (stats.Confidence, error) {
	if level == 0 && side == "" {
		return s.Defaults, nil
	}
	if level == 0 {
		level = s.Defaults.Level()
	}
	return config.ParseConfidence(level, side)
}

type intervalJSON struct {
	Low  *float64 `json:"low,omitempty"`
	High *float64 `json:"high,omitempty"`
	Text string   `json:"text"`
}

func intervalOut(iv interval.Interval[float64]) intervalJSON {
	out := intervalJSON{Text: iv.String()}
	if low, ok := iv.Low(); ok {
		out.Low = &low
	}
	if high, ok := iv.High(); ok {
		out.High = &high
	}
	return out
}

// badInput reports whether err names an input problem rather than a
// server fault.
func badInput(err error) bool {
	for _, target := range []error{
		stats.ErrInvalidConfidenceLevel, stats.ErrInvalidQuantile,
		stats.ErrNotEnoughData, stats.ErrNonPositiveValue,
		stats.ErrZeroValue, stats.ErrDegenerateCase,
		stats.ErrMismatchedLengths, interval.ErrInvalidInterval,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s *Server) fail(w http.ResponseWriter, algo string, err error) {
	metrics.Computations.WithLabelValues(algo, "error").Inc()
	code := 500
	if badInput(err) {
		code = 400
	}
	sendJSON(w, code, errMsg(err.Error()))
}

func (s *Server) ok(w http.ResponseWriter, algo string, v any) {
	metrics.Computations.WithLabelValues(algo, "ok").Inc()
	sendJSON(w, 200, v)
}

func (s *Server) handleMean(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind    string    `json:"kind"`
		Level   float64   `json:"level"`
		Side    string    `json:"side"`
		Samples []float64 `json:"samples"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, 400, errMsg("bad_json"))
		return
	}
	if req.Kind == "" {
		req.Kind = string(stats.ArithmeticMean)
	}
	kind, err := stats.ParseMeanKind(req.Kind)
	if err != nil {
		sendJSON(w, 400, errMsg(err.Error()))
		return
	}
	conf, err := s.confidence(req.Level, req.Side)
	if err != nil {
		s.fail(w, "mean", err)
		return
	}
	ci, err := stats.MeanCI(kind, conf, req.Samples)
	if err != nil {
		s.fail(w, "mean", err)
		return
	}
	s.ok(w, "mean", map[string]any{
		"kind":     kind,
		"count":    len(req.Samples),
		"interval": intervalOut(ci),
	})
}

func (s *Server) handleQuantile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Level    float64   `json:"level"`
		Side     string    `json:"side"`
		Quantile *float64  `json:"quantile"`
		Samples  []float64 `json:"samples"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, 400, errMsg("bad_json"))
		return
	}
	// absent means median; an explicit out-of-range quantile still fails
	quantile := 0.5
	if req.Quantile != nil {
		quantile = *req.Quantile
	}
	conf, err := s.confidence(req.Level, req.Side)
	if err != nil {
		s.fail(w, "quantile", err)
		return
	}
	ci, err := stats.QuantileCI(conf, req.Samples, quantile)
	if err != nil {
		s.fail(w, "quantile", err)
		return
	}
	s.ok(w, "quantile", map[string]any{
		"quantile": quantile,
		"count":    len(req.Samples),
		"interval": intervalOut(ci),
	})
}

func (s *Server) handleProportion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Level      float64 `json:"level"`
		Side       string  `json:"side"`
		Population int     `json:"population"`
		Successes  int     `json:"successes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, 400, errMsg("bad_json"))
		return
	}
	conf, err := s.confidence(req.Level, req.Side)
	if err != nil {
		s.fail(w, "proportion", err)
		return
	}
	ci, err := stats.ProportionCI(conf, req.Population, req.Successes)
	if err != nil {
		s.fail(w, "proportion", err)
		return
	}
	p := stats.NewProportion(req.Population, req.Successes)
	s.ok(w, "proportion", map[string]any{
		"rate":        p.Rate(),
		"significant": p.IsSignificant(),
		"interval":    intervalOut(ci),
	})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Level  float64   `json:"level"`
		Side   string    `json:"side"`
		Paired bool      `json:"paired"`
		A      []float64 `json:"a"`
		B      []float64 `json:"b"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, 400, errMsg("bad_json"))
		return
	}
	conf, err := s.confidence(req.Level, req.Side)
	if err != nil {
		s.fail(w, "compare", err)
		return
	}
	var ci interval.Interval[float64]
	if req.Paired {
		ci, err = stats.PairedCI(conf, req.A, req.B)
	} else {
		ci, err = stats.UnpairedCI(conf, req.A, req.B)
	}
	if err != nil {
		s.fail(w, "compare", err)
		return
	}
	s.ok(w, "compare", map[string]any{
		"paired":   req.Paired,
		"verdict":  decision.FromDifference(ci),
		"interval": intervalOut(ci),
	})
}

func (s *Server) handleAppend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string    `json:"name"`
		Kind    string    `json:"kind"`
		Samples []float64 `json:"samples"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, 400, errMsg("bad_json"))
		return
	}
	if req.Name == "" {
		sendJSON(w, 400, errMsg("missing name"))
		return
	}
	if req.Kind == "" {
		req.Kind = string(stats.ArithmeticMean)
	}
	kind, err := stats.ParseMeanKind(req.Kind)
	if err != nil {
		sendJSON(w, 400, errMsg(err.Error()))
		return
	}
	rec, err := s.Store.AppendSamples(req.Name, kind, req.Samples)
	if err != nil {
		s.fail(w, "append", err)
		return
	}
	s.ok(w, "append", map[string]any{
		"name":  rec.Name,
		"kind":  rec.State.Kind,
		"count": rec.State.Count,
	})
}

func (s *Server) handleAccumulatorCI(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("name")
	if name == "" {
		sendJSON(w, 400, errMsg("missing name"))
		return
	}
	level := 0.0
	if lv := q.Get("level"); lv != "" {
		var err error
		level, err = strconv.ParseFloat(lv, 64)
		if err != nil {
			sendJSON(w, 400, errMsg("bad level"))
			return
		}
	}
	conf, err := s.confidence(level, q.Get("side"))
	if err != nil {
		s.fail(w, "accumulator_ci", err)
		return
	}
	rec, err := s.Store.GetMean(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			sendJSON(w, 404, errMsg("not_found"))
			return
		}
		s.fail(w, "accumulator_ci", err)
		return
	}
	acc, err := stats.RestoreMean(rec.State)
	if err != nil {
		s.fail(w, "accumulator_ci", err)
		return
	}
	ci, err := acc.ConfidenceInterval(conf)
	if err != nil {
		s.fail(w, "accumulator_ci", err)
		return
	}
	s.ok(w, "accumulator_ci", map[string]any{
		"name":     rec.Name,
		"kind":     rec.State.Kind,
		"count":    acc.Count(),
		"mean":     acc.Mean(),
		"interval": intervalOut(ci),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.Store.ListMeans()
	if err != nil {
		sendJSON(w, 500, errMsg(err.Error()))
		return
	}
	sendJSON(w, 200, recs)
}

func sendJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func errMsg(m string) map[string]any { return map[string]any{"ok": false, "error": m} }
