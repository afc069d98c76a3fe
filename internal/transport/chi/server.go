package chi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/leadscope/internal/domain"
	"github.com/kailas-cloud/leadscope/internal/domain/contact"
	"github.com/kailas-cloud/leadscope/internal/domain/search/analysis"
	campaignuc "github.com/kailas-cloud/leadscope/internal/usecase/campaign"
	healthuc "github.com/kailas-cloud/leadscope/internal/usecase/health"
)

// maxBodyBytes bounds request bodies; filter payloads are small.
const maxBodyBytes = 1 << 20

// Server serves the leadscope HTTP API.
type Server struct {
	svc           Services
	logger        *zap.Logger
	validator     *validator.Validate
	errorHandlers []errorHandler
	now           func() time.Time
}

// NewServer creates an HTTP API server.
func NewServer(svc Services, logger *zap.Logger) *Server {
	return &Server{
		svc:           svc,
		logger:        logger,
		validator:     newValidator(),
		errorHandlers: defaultErrorHandlers(),
		now:           time.Now,
	}
}

type contactsResponse struct {
	Contacts []contact.Contact `json:"contacts"`
	Total    int64             `json:"total"`
	Analysis analysis.Analysis `json:"analysis"`
}

type campaignsResponse struct {
	Contacts     []contact.Contact    `json:"contacts"`
	Campaigns    []campaignuc.Summary `json:"campaigns"`
	CampaignData []campaignuc.Match   `json:"campaignData"`
	Total        int                  `json:"total"`
}

type allResponse struct {
	Contacts      []contact.Contact    `json:"contacts"`
	Total         int64                `json:"total"`
	Analysis      analysis.Analysis    `json:"analysis"`
	Campaigns     []campaignuc.Summary `json:"campaigns"`
	CampaignData  []campaignuc.Match   `json:"campaignData"`
	CampaignTotal int                  `json:"campaignTotal"`
}

type suggestionsResponse struct {
	Field       string   `json:"field"`
	Suggestions []string `json:"suggestions"`
}

type healthResponse struct {
	Status healthuc.Status                 `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

// Search handles POST /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.validate(req); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	ctx := r.Context()
	switch req.SearchType {
	case searchTypeCampaigns:
		c, err := s.campaigns(r, req)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, campaignsResponse{
			Contacts:     []contact.Contact{},
			Campaigns:    c.Campaigns,
			CampaignData: c.Data,
			Total:        c.Total,
		})

	case searchTypeAll:
		n, err := s.svc.Search.Natural(ctx, req.Query, req.Limit)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		c, err := s.campaigns(r, req)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, allResponse{
			Contacts:      n.Contacts,
			Total:         n.Total,
			Analysis:      n.Analysis,
			Campaigns:     c.Campaigns,
			CampaignData:  c.Data,
			CampaignTotal: c.Total,
		})

	default:
		n, err := s.svc.Search.Natural(ctx, req.Query, req.Limit)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, contactsResponse{
			Contacts: n.Contacts,
			Total:    n.Total,
			Analysis: n.Analysis,
		})
	}
}

// campaigns searches campaign rows. A disabled campaign store yields an
// empty result rather than an error.
func (s *Server) campaigns(r *http.Request, req searchRequest) (campaignuc.Result, error) {
	if s.svc.Campaigns == nil {
		return campaignuc.Result{Campaigns: []campaignuc.Summary{}, Data: []campaignuc.Match{}}, nil
	}
	res, err := s.svc.Campaigns.Search(r.Context(), req.Query, req.Limit)
	if err != nil {
		return campaignuc.Result{}, fmt.Errorf("campaign search: %w", err)
	}
	return res, nil
}

// AdvancedSearch handles POST /advanced-search.
func (s *Server) AdvancedSearch(w http.ResponseWriter, r *http.Request) {
	var req advancedSearchRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.validate(req); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	q, err := req.toQuery()
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	res, err := s.svc.Search.Execute(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Export handles POST /advanced-search/export. The CSV is rendered in full
// before the first byte is sent so a failed query still gets a JSON error.
func (s *Server) Export(w http.ResponseWriter, r *http.Request) {
	var req advancedSearchRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.validate(req); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	q, err := req.toQuery()
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	var buf bytes.Buffer
	n, err := s.svc.Export.Export(r.Context(), q, &buf)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	id := uuid.New()
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, s.exportFilename(req, id)))
	w.Header().Set("X-Export-Id", id.String())
	w.Header().Set("X-Export-Rows", fmt.Sprint(n))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) exportFilename(req advancedSearchRequest, id uuid.UUID) string {
	label := "contacts"
	if req.GlobalSearch != "" {
		label += " " + req.GlobalSearch
	}
	name := slug.Make(label)
	if len(name) > 48 {
		name = strings.TrimRight(name[:48], "-")
	}
	return fmt.Sprintf("%s-%s-%s.csv", name, s.now().UTC().Format("20060102"), id.String()[:8])
}

// Suggestions handles GET /suggestions/{field}.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request) {
	var (
		field   string
		partial *string
		limit   *int
	)
	if err := runtime.BindStyledParameterWithOptions("simple", "field", chi.URLParam(r, "field"), &field,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true}); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid field parameter")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &partial); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid q parameter")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "limit must be an integer")
		return
	}

	q, n := "", 0
	if partial != nil {
		q = *partial
	}
	if limit != nil {
		n = *limit
	}

	suggestions, err := s.svc.Suggest.Suggest(r.Context(), field, q, n)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestionsResponse{Field: field, Suggestions: suggestions})
}

// Aggregations handles GET /aggregations.
func (s *Server) Aggregations(w http.ResponseWriter, r *http.Request) {
	agg, err := s.svc.Search.Aggregations(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, agg)
}

// Statistics handles GET /statistics.
func (s *Server) Statistics(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Search.Statistics(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Health handles GET /health. Only an unreachable contact database is a 503.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.svc.Health.Check(r.Context())

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{Status: report.Status, Checks: report.Checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decode reads a JSON body into dst, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+bodyErrorMessage(err))
		return false
	}
	return true
}

func bodyErrorMessage(err error) string {
	var maxErr *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &maxErr):
		return fmt.Sprintf("body exceeds %d bytes", maxErr.Limit)
	case errors.As(err, &typeErr):
		return fmt.Sprintf("field %q must be %s", typeErr.Field, typeErr.Type)
	case errors.Is(err, io.EOF):
		return "body is empty"
	default:
		return domain.ErrInvalidQuery.Error()
	}
}
