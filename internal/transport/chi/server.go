package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tagrec/internal/domain"
	"github.com/kailas-cloud/tagrec/internal/domain/tagvec"
	gen "github.com/kailas-cloud/tagrec/internal/transport/generated"
	healthuc "github.com/kailas-cloud/tagrec/internal/usecase/health"
	"github.com/kailas-cloud/tagrec/internal/usecase/modelbuild"
)

// DefaultMaxCandidates caps the candidate list of one scoring request.
const DefaultMaxCandidates = 10000

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements generated.ServerInterface for the oapi-codegen chi router.
type Server struct {
	gen.Unimplemented
	scorer        Scorer
	models        Models
	health        HealthReporter
	logger        *zap.Logger
	maxCandidates int
	errorHandlers []errorHandler
}

var _ gen.ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(scorer Scorer, models Models, health HealthReporter, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		scorer:        scorer,
		models:        models,
		health:        health,
		logger:        logger,
		maxCandidates: DefaultMaxCandidates,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, gen.ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrUndefinedMean, http.StatusUnprocessableEntity, gen.ErrorResponseCodeUndefinedMean),
		sentinelHandler(domain.ErrModelNotReady, http.StatusServiceUnavailable, gen.ErrorResponseCodeModelNotReady),
		sentinelHandler(domain.ErrRebuildInProgress, http.StatusConflict, gen.ErrorResponseCodeRebuildInProgress),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, gen.ErrorResponseCodeNotFound),
	}
	return s
}

// WithMaxCandidates overrides the candidate list limit. Non-positive values keep the default.
func (s *Server) WithMaxCandidates(n int) *Server {
	if n > 0 {
		s.maxCandidates = n
	}
	return s
}

// GetUserScores handles GET /users/{user}/scores.
func (s *Server) GetUserScores(w http.ResponseWriter, r *http.Request, user gen.UserId, params gen.GetUserScoresParams) {
	s.score(w, r, user, params.Items)
}

// ScoreUserItems handles POST /users/{user}/scores.
func (s *Server) ScoreUserItems(w http.ResponseWriter, r *http.Request, user gen.UserId) {
	var req gen.ScoreUserItemsJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	s.score(w, r, user, req.Items)
}

func (s *Server) score(w http.ResponseWriter, r *http.Request, user int64, items []int64) {
	if len(items) > s.maxCandidates {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeValidationFailed,
			fmt.Sprintf("at most %d candidate items per request, got %d", s.maxCandidates, len(items)))
		return
	}

	ctx, usage := domain.NewContextWithScoringUsage(r.Context())
	scores, err := s.scorer.Score(ctx, user, dedupe(items))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	setScoringHeaders(w, usage)

	out := make(map[string]float64, len(scores))
	for item, score := range scores {
		out[strconv.FormatInt(item, 10)] = score
	}
	writeJSON(w, http.StatusOK, gen.ScoreResponse{
		User:         user,
		Strategy:     gen.ScoreResponseStrategy(s.scorer.Strategy()),
		ModelVersion: usage.ModelVersion,
		Scores:       out,
	})
}

// GetUserProfile handles GET /users/{user}/profile.
func (s *Server) GetUserProfile(w http.ResponseWriter, r *http.Request, user gen.UserId) {
	p, err := s.scorer.Profile(r.Context(), user)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gen.ProfileResponse{
		User:     user,
		Strategy: gen.ProfileResponseStrategy(s.scorer.Strategy()),
		Vector:   vectorToGen(p),
	})
}

// GetItemVector handles GET /items/{item}/vector.
func (s *Server) GetItemVector(w http.ResponseWriter, r *http.Request, item int64) {
	m, err := s.models.Current()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.Header().Set("X-Model-Version", strconv.Itoa(m.Version()))
	writeJSON(w, http.StatusOK, gen.ItemVectorResponse{
		Item:   item,
		Known:  m.Has(item),
		Vector: vectorToGen(m.ItemVector(item)),
	})
}

// GetModelStatus handles GET /model.
func (s *Server) GetModelStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusToGen(s.models.Status()))
}

// RebuildModel handles POST /model/rebuild.
func (s *Server) RebuildModel(w http.ResponseWriter, r *http.Request) {
	if _, err := s.models.Rebuild(r.Context()); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusToGen(s.models.Status()))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]gen.HealthResponseChecks)
	for k, v := range report.Checks {
		checks[k] = gen.HealthResponseChecks(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, gen.HealthResponse{
		Status: gen.HealthResponseStatus(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// ParamErrorHandler answers oapi-codegen binding failures with a JSON 400.
func ParamErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, err.Error())
}

func setScoringHeaders(w http.ResponseWriter, usage *domain.ScoringUsage) {
	if usage == nil {
		return
	}
	w.Header().Set("X-Scored-Items", strconv.Itoa(usage.Scored))
	w.Header().Set("X-Omitted-Items", strconv.Itoa(usage.Omitted))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code gen.ErrorResponseCode, message string) {
	writeJSON(w, status, gen.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrUndefinedMean,
		domain.ErrModelNotReady,
		domain.ErrRebuildInProgress,
		domain.ErrNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code gen.ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, gen.ErrorResponseCodeInternalError, "internal error")
}

func statusToGen(st modelbuild.Status) gen.ModelStatus {
	resp := gen.ModelStatus{
		Ready:      st.Ready,
		Rebuilding: st.Rebuilding,
		Version:    st.Meta.Version,
		ItemCount:  st.Meta.ItemCount,
		TagCount:   st.Meta.TagCount,
	}
	if !st.Meta.BuiltAt.IsZero() {
		builtAt := st.Meta.BuiltAt.UTC()
		resp.BuiltAt = &builtAt
	}
	if st.LastBuild > 0 {
		ms := st.LastBuild.Milliseconds()
		resp.LastBuildMs = &ms
	}
	if st.LastError != "" {
		resp.LastError = &st.LastError
	}
	return resp
}

func vectorToGen(v tagvec.Vector) gen.TagVector {
	out := make(gen.TagVector, len(v))
	for tag, w := range v {
		out[tag] = w
	}
	return out
}

// dedupe drops repeated candidate ids, keeping first-seen order.
func dedupe(items []int64) []int64 {
	seen := make(map[int64]struct{}, len(items))
	out := items[:0:0]
	for _, id := range items {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
