package server

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/prahari/internal/analysis"
	"github.com/xkilldash9x/prahari/internal/botnet"
	"github.com/xkilldash9x/prahari/internal/dashboard"
	"github.com/xkilldash9x/prahari/internal/evidence"
	"github.com/xkilldash9x/prahari/internal/observability"
	"github.com/xkilldash9x/prahari/internal/views"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBodyBytes caps request bodies for the POST endpoints.
const maxBodyBytes = 1 << 20

// Handlers serves the dashboard API.
type Handlers struct {
	log       *zap.Logger
	analysis  *analysis.Service
	ledger    *evidence.Ledger
	dashboard *dashboard.Simulator
	metrics   *observability.Metrics
	validate  *validator.Validate
	seed      func() int64
}

// NewHandlers creates the API handlers. metrics may be nil.
func NewHandlers(logger *zap.Logger, svc *analysis.Service, ledger *evidence.Ledger, sim *dashboard.Simulator, metrics *observability.Metrics) *Handlers {
	return &Handlers{
		log:       logger.Named("handlers"),
		analysis:  svc,
		ledger:    ledger,
		dashboard: sim,
		metrics:   metrics,
		validate:  newValidator(),
		seed:      func() int64 { return time.Now().UnixNano() },
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// RegisterRoutes mounts the API under /api/v1 and the health check at the root.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HandleHealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/views", h.HandleListViews)
		r.Get("/views/{name}", h.HandleResolveView)

		r.Get("/dashboard", h.HandleDashboard)
		r.Get("/evidence", h.HandleEvidence)
		r.Get("/evidence/{id}", h.HandleEvidenceRecord)

		r.Get("/graph", h.HandleGraph)
		r.Get("/graph/nodes/{id}", h.HandleGraphNode)

		r.Post("/analyze", h.HandleAnalyze)
		r.Get("/analyze/demo", h.HandleDemoProfile)
		r.Post("/scan", h.HandleScan)
	})
}

// HandleHealthCheck confirms the server is responsive.
func (h *Handlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handlers) HandleListViews(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, views.MenuItems())
}

func (h *Handlers) HandleResolveView(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	h.respondJSON(w, http.StatusOK, ViewResponse{
		Requested: name,
		Section:   views.Resolve(name),
		Fallback:  !views.IsKnown(name),
	})
}

func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.dashboard.Snapshot())
}

// HandleEvidence filters the ledger by the platform, status and agency query
// parameters.
func (h *Handlers) HandleEvidence(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records := h.ledger.Filter(evidence.Criteria{
		Platform: q.Get("platform"),
		Status:   q.Get("status"),
		Agency:   q.Get("agency"),
	})
	h.respondJSON(w, http.StatusOK, EvidenceResponse{Count: len(records), Records: records})
}

func (h *Handlers) HandleEvidenceRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	record, ok := h.ledger.Get(id)
	if !ok {
		h.respondWithError(w, http.StatusNotFound, fmt.Sprintf("evidence record %q not found", id))
		return
	}
	h.respondJSON(w, http.StatusOK, record)
}

// HandleGraph generates a fresh interaction graph. An optional seed query
// parameter reproduces a previous layout.
func (h *Handlers) HandleGraph(w http.ResponseWriter, r *http.Request) {
	seed, err := h.seedParam(r, false)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	graph := botnet.Generate(rand.New(rand.NewSource(seed)))
	h.metrics.RecordGraph()
	h.respondJSON(w, http.StatusOK, GraphResponse{
		Seed:  seed,
		Nodes: graph.Nodes,
		Edges: graph.Edges(),
	})
}

// HandleGraphNode returns one node of the graph generated from the required
// seed parameter.
func (h *Handlers) HandleGraphNode(w http.ResponseWriter, r *http.Request) {
	seed, err := h.seedParam(r, true)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "node id must be an integer")
		return
	}

	graph := botnet.Generate(rand.New(rand.NewSource(seed)))
	node, ok := graph.Node(id)
	if !ok {
		h.respondWithError(w, http.StatusNotFound, fmt.Sprintf("node %d not found", id))
		return
	}
	h.respondJSON(w, http.StatusOK, NodeDetail{GraphNode: node, Note: botnet.NodeNote(node)})
}

func (h *Handlers) seedParam(r *http.Request, required bool) (int64, error) {
	raw := r.URL.Query().Get("seed")
	if raw == "" {
		if required {
			return 0, errors.New("seed is required")
		}
		return h.seed(), nil
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("seed must be an integer")
	}
	return seed, nil
}

// HandleAnalyze forwards a profile to the model. Provider failures surface as
// the fallback verdict with a 200 status.
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result := h.analysis.AnalyzeProfile(r.Context(), req.Username, req.Bio, req.RecentPosts)
	h.respondJSON(w, http.StatusOK, AnalyzeResponse{
		ScanResult: result,
		Highlights: analysis.Highlight(result.Analysis, result.Flags),
		TrustBand:  analysis.BandForScore(result.TrustScore),
	})
}

func (h *Handlers) HandleDemoProfile(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, analysis.DemoProfile())
}

// HandleScan runs a live monitor scan for a topic.
func (h *Handlers) HandleScan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	h.log.Info("Topic scan requested", zap.String("topic", req.Topic))
	h.respondJSON(w, http.StatusOK, h.analysis.RunScan(r.Context(), req.Topic))
}

// decodeAndValidate reads a JSON body into dst and runs its validation tags.
// On failure it writes a 400 response and returns false.
func (h *Handlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		h.respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.respondWithError(w, http.StatusBadRequest, formatValidationError(err).Error())
		return false
	}
	return true
}

func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", e.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// respondWithError sends a JSON error body.
func (h *Handlers) respondWithError(w http.ResponseWriter, statusCode int, message string) {
	h.respondJSON(w, statusCode, ErrorResponse{Error: message})
}

func (h *Handlers) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("Failed to encode response", zap.Error(err))
	}
}

// notFound keeps unknown routes on the JSON error shape.
func (h *Handlers) notFound(w http.ResponseWriter, r *http.Request) {
	h.respondWithError(w, http.StatusNotFound, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
}

func (h *Handlers) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.respondWithError(w, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed on %s", r.Method, r.URL.Path))
}
