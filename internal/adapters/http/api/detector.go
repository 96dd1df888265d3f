package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/emodetect/internal/domain/emotion"
)

// QueryParam is the query parameter carrying the text to analyze.
const QueryParam = "textToAnalyze"

// Analyzer runs emotion detection for a piece of text.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (emotion.Analysis, error)
}

// DetectorHandler handles emotion detection requests.
type DetectorHandler struct {
	analyzer Analyzer
}

// NewDetectorHandler creates a new detector handler.
func NewDetectorHandler(analyzer Analyzer) *DetectorHandler {
	return &DetectorHandler{analyzer: analyzer}
}

// HandleDetect handles GET /emotionDetector?textToAnalyze=... requests.
//
//	200 text/plain  formatted sentence
//	400 text/plain  missing parameter or text without a dominant emotion
//	502 text/plain  classifier unreachable or returned garbage
func (h *DetectorHandler) HandleDetect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	text := r.URL.Query().Get(QueryParam)
	if text == "" {
		writeText(w, http.StatusBadRequest, MsgMissingInput)
		return
	}

	a, err := h.analyzer.Analyze(r.Context(), text)
	switch {
	case errors.Is(err, emotion.ErrMissingInput):
		writeText(w, http.StatusBadRequest, MsgMissingInput)
	case errors.Is(err, emotion.ErrInvalidInput):
		writeText(w, http.StatusBadRequest, MsgInvalidInput)
	case err != nil:
		writeText(w, http.StatusBadGateway, MsgUnavailable)
	case !a.HasDominant():
		writeText(w, http.StatusBadRequest, MsgInvalidInput)
	default:
		writeText(w, http.StatusOK, emotion.Sentence(a))
	}
}
