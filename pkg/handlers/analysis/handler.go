package analysis

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/fin-tools/credit-atlas/pkg/adapters"
	"github.com/fin-tools/credit-atlas/pkg/models/api"
	"github.com/fin-tools/credit-atlas/pkg/services/underwriting"
)

type Handler struct {
	controller underwriting.Controller
	validate   *validator.Validate
}

func NewHandler(controller underwriting.Controller) *Handler {
	return &Handler{
		controller: controller,
		validate:   validator.New(),
	}
}

// Analyze accepts a document bundle plus loan terms and returns the
// full underwriting report.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records := adapters.MapRequestToRecords(req)
	loan := adapters.MapLoanTermsToDomain(req.Loan)

	report, err := h.controller.Analyze(ctx, records, loan)
	if err != nil {
		if errors.Is(err, underwriting.ErrNoDocuments) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error().Err(err).Msg("analysis failed")
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.MapReportToApi(report)); err != nil {
		logger.Error().Err(err).Msg("failed to encode analysis report")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
