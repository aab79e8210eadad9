package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bimakw/wallet-insights/internal/application/services"
)

// InsightsHandler handles HTTP requests for address insights
type InsightsHandler struct {
	service     *services.InsightsService
	defaultYear int
	logger      *zap.Logger
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(service *services.InsightsService, defaultYear int, logger *zap.Logger) *InsightsHandler {
	return &InsightsHandler{
		service:     service,
		defaultYear: defaultYear,
		logger:      logger,
	}
}

// RegisterRoutes registers the insights routes on a chi router
func (h *InsightsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/insights", h.GetInsights)
}

// GetInsights handles GET /api/v1/insights?address=0x..&year=YYYY
func (h *InsightsHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	address := r.URL.Query().Get("address")
	if !isValidAddress(address) {
		h.respondError(w, http.StatusBadRequest, "Invalid address format")
		return
	}
	address = strings.ToLower(address)

	year := h.defaultYear
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 2015 || y > 2100 {
			h.respondError(w, http.StatusBadRequest, "Invalid year")
			return
		}
		year = y
	}

	insights, err := h.service.GetInsights(ctx, address, year)
	if err != nil {
		h.logger.Error("Failed to compute insights",
			zap.Error(err),
			zap.String("address", address),
			zap.Int("year", year),
		)
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to compute insights: %v", err))
		return
	}

	h.respondJSON(w, http.StatusOK, insights)
}

func (h *InsightsHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (h *InsightsHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// isValidAddress accepts a 0x-prefixed 40-hex-digit address
func isValidAddress(addr string) bool {
	return strings.HasPrefix(addr, "0x") && common.IsHexAddress(addr)
}
