package api

import (
	"log/slog"
	"net/http"

	"github.com/fisiolab/tenslab-api/internal/api/shared"
	"github.com/fisiolab/tenslab-api/internal/platform/logger"
	"github.com/fisiolab/tenslab-api/internal/redact"
	"github.com/fisiolab/tenslab-api/internal/service/lab"
)

// SimHandler handles simulation-related HTTP requests.
type SimHandler struct {
	labService lab.Service
	logger     *slog.Logger
}

// NewSimHandler creates a new SimHandler.
func NewSimHandler(labService lab.Service, log *slog.Logger) *SimHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SimHandler")
	}

	return &SimHandler{
		labService: labService,
		logger:     log.With(slog.String("component", "sim_handler")),
	}
}

// Simulate handles POST /api/simulate requests.
// It computes the comfort/activation estimate for the submitted parameters.
func (h *SimHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ParametersRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result, err := h.labService.Simulate(r.Context(), req.toDomain())
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to run simulation"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("simulation computed",
		slog.Int("comfort_level", result.ComfortLevel),
		slog.Int("activation_level", result.ActivationLevel))
	shared.RespondWithJSON(w, r, http.StatusOK, simulationToResponse(result))
}

// AssessRisk handles POST /api/risk requests.
// It resolves the tissue selection and computes the risk classification.
func (h *SimHandler) AssessRisk(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RiskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	selection, err := req.Tissue.toSelection()
	if err != nil {
		log.Warn("invalid tissue selection", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid tissue selection")
		return
	}

	result, config, err := h.labService.AssessRisk(r.Context(), req.Parameters.toDomain(), selection)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to assess tissue risk"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("risk assessed",
		slog.Int("risk_score", result.RiskScore),
		slog.String("risk_level", string(result.RiskLevel)),
		slog.String("tissue_id", config.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, riskToResponse(result, config))
}
