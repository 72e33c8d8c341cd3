package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Skufu/GoSymptom/internal/analysis"
	"github.com/Skufu/GoSymptom/internal/chat"
	"github.com/Skufu/GoSymptom/internal/dataset"
	"github.com/Skufu/GoSymptom/internal/llm"
	"github.com/Skufu/GoSymptom/internal/metrics"
	"github.com/Skufu/GoSymptom/internal/recommend"
)

// Deps are the collaborators the handlers call.
type Deps struct {
	Pipeline        *analysis.Pipeline
	Checker         *dataset.Checker
	Recommendations *recommend.Generator
	Responder       *llm.Responder
	Detector        *chat.Detector
	Logger          *zap.Logger
	// ReplyTimeout bounds one chat reply, including text generation.
	ReplyTimeout time.Duration
}

// Handler serves the /api endpoints.
type Handler struct {
	deps Deps
}

// NewHandler fills optional dependencies with defaults.
func NewHandler(deps Deps) *Handler {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Recommendations == nil {
		deps.Recommendations = recommend.NewGenerator(nil)
	}
	if deps.Responder == nil {
		deps.Responder = llm.NewResponder(nil, deps.Logger)
	}
	if deps.Detector == nil {
		deps.Detector = chat.NewDetector()
	}
	if deps.Checker == nil {
		deps.Checker = dataset.NewChecker(nil)
	}
	if deps.ReplyTimeout <= 0 {
		deps.ReplyTimeout = 20 * time.Second
	}
	return &Handler{deps: deps}
}

// Register mounts the API routes under r.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.POST("/analyze", h.analyze)
	api.POST("/final-analysis", h.finalAnalysis)
	api.POST("/chat", h.chat)
}

type analyzeRequest struct {
	Symptoms string `json:"symptoms"`
}

type analyzeResponse struct {
	analysis.Result
	DatasetMatches dataset.CheckResult `json:"dataset_matches"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Symptoms) == "" {
		abortWithError(c, http.StatusUnprocessableEntity, "validation_failed", "symptoms must not be empty")
		return
	}

	start := time.Now()
	res := h.deps.Pipeline.Analyze(req.Symptoms)
	metrics.ObserveAnalysis("analyze", res, time.Since(start))

	c.JSON(http.StatusOK, analyzeResponse{
		Result:         res,
		DatasetMatches: h.deps.Checker.Check(res.DetectedSymptoms),
	})
}

type finalAnalysisRequest struct {
	InitialSymptoms  []string `json:"initial_symptoms"`
	FollowUpSymptoms []string `json:"follow_up_symptoms"`
}

type finalAnalysisResponse struct {
	analysis.Result
	ConditionDetails *dataset.Details          `json:"condition_details,omitempty"`
	Reference        *dataset.Reference        `json:"condition_reference,omitempty"`
	Recommendations  recommend.Recommendations `json:"recommendations"`
}

func (h *Handler) finalAnalysis(c *gin.Context) {
	var req finalAnalysisRequest
	if !bindJSON(c, &req) {
		return
	}
	if !hasText(req.InitialSymptoms) {
		abortWithError(c, http.StatusUnprocessableEntity, "validation_failed", "initial_symptoms must contain at least one entry")
		return
	}

	start := time.Now()
	res := h.deps.Pipeline.Refine(req.InitialSymptoms, req.FollowUpSymptoms)
	metrics.ObserveAnalysis("final_analysis", res, time.Since(start))

	top := res.TopCondition()
	resp := finalAnalysisResponse{
		Result:          res,
		Recommendations: h.deps.Recommendations.Generate(top, res.Risk.Tier),
	}
	if d, ok := h.deps.Checker.Details(top); ok {
		resp.ConditionDetails = &d
	}
	if ref, ok := dataset.ReferenceFor(top); ok {
		resp.Reference = &ref
	}
	c.JSON(http.StatusOK, resp)
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply           string                     `json:"reply"`
	HealthRelated   bool                       `json:"is_health_related"`
	Keywords        []string                   `json:"keywords"`
	Analysis        *analysis.Result           `json:"analysis,omitempty"`
	Recommendations *recommend.Recommendations `json:"recommendations,omitempty"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		abortWithError(c, http.StatusUnprocessableEntity, "validation_failed", "message must not be empty")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.deps.ReplyTimeout)
	defer cancel()

	intent := h.deps.Detector.Detect(req.Message)
	resp := chatResponse{HealthRelated: intent.HealthRelated, Keywords: intent.Keywords}
	if !intent.HealthRelated {
		resp.Reply = h.deps.Responder.GeneralReply(ctx, req.Message, nil)
		c.JSON(http.StatusOK, resp)
		return
	}

	start := time.Now()
	res := h.deps.Pipeline.Analyze(req.Message)
	metrics.ObserveAnalysis("chat", res, time.Since(start))

	rec := h.deps.Recommendations.Generate(res.TopCondition(), res.Risk.Tier)
	resp.Reply = h.deps.Responder.HealthReply(ctx, req.Message, res, rec, nil)
	resp.Analysis = &res
	resp.Recommendations = &rec
	c.JSON(http.StatusOK, resp)
}

func hasText(items []string) bool {
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			return true
		}
	}
	return false
}
