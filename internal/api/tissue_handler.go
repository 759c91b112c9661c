package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fisiolab/tenslab-api/internal/api/shared"
	"github.com/fisiolab/tenslab-api/internal/platform/logger"
	"github.com/fisiolab/tenslab-api/internal/redact"
	"github.com/fisiolab/tenslab-api/internal/service/lab"
)

// TissueHandler handles tissue preset and saved-configuration HTTP requests.
type TissueHandler struct {
	labService lab.Service
	logger     *slog.Logger
}

// NewTissueHandler creates a new TissueHandler.
func NewTissueHandler(labService lab.Service, log *slog.Logger) *TissueHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TissueHandler")
	}

	return &TissueHandler{
		labService: labService,
		logger:     log.With(slog.String("component", "tissue_handler")),
	}
}

// ListPresets handles GET /api/tissue/presets requests.
func (h *TissueHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	entries := h.labService.Presets()

	response := make([]PresetResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, presetToResponse(entry))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetPreset handles GET /api/tissue/presets/{id} requests.
func (h *TissueHandler) GetPreset(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	presetID := chi.URLParam(r, "id")
	if presetID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Preset ID is required")
		return
	}

	config, err := h.labService.GetPreset(presetID)
	if err != nil {
		log.Debug("preset not found", slog.String("preset_id", presetID))
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, config)
}

// CreateConfig handles POST /api/tissue/configs requests.
func (h *TissueHandler) CreateConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SaveConfigRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	config, err := req.Config.toDomain()
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	saved, err := h.labService.SaveConfig(r.Context(), req.Label, config)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to save tissue configuration"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("tissue config saved", slog.String("config_id", saved.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, savedConfigToResponse(saved))
}

// GetConfig handles GET /api/tissue/configs/{id} requests.
func (h *TissueHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	configID, ok := h.parseConfigID(w, r)
	if !ok {
		return
	}

	saved, err := h.labService.GetSavedConfig(r.Context(), configID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, savedConfigToResponse(saved))
}

// ListConfigs handles GET /api/tissue/configs requests.
// It supports limit/offset query parameters.
func (h *TissueHandler) ListConfigs(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 20)
	offset := parseQueryInt(r, "offset", 0)

	configs, err := h.labService.ListSavedConfigs(r.Context(), limit, offset)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list tissue configurations", err)
		return
	}

	response := make([]SavedConfigResponse, 0, len(configs))
	for _, saved := range configs {
		response = append(response, savedConfigToResponse(saved))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// UpdateConfig handles PUT /api/tissue/configs/{id} requests.
func (h *TissueHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	configID, ok := h.parseConfigID(w, r)
	if !ok {
		return
	}

	var req SaveConfigRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	config, err := req.Config.toDomain()
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	saved, err := h.labService.UpdateSavedConfig(r.Context(), configID, req.Label, config)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to update tissue configuration"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, savedConfigToResponse(saved))
}

// DeleteConfig handles DELETE /api/tissue/configs/{id} requests.
func (h *TissueHandler) DeleteConfig(w http.ResponseWriter, r *http.Request) {
	configID, ok := h.parseConfigID(w, r)
	if !ok {
		return
	}

	if err := h.labService.DeleteSavedConfig(r.Context(), configID); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to delete tissue configuration"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddInclusion handles POST /api/tissue/configs/{id}/inclusions requests.
// The new inclusion is created with default field values.
func (h *TissueHandler) AddInclusion(w http.ResponseWriter, r *http.Request) {
	configID, ok := h.parseConfigID(w, r)
	if !ok {
		return
	}

	saved, inclusion, err := h.labService.AddInclusion(r.Context(), configID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to add inclusion"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	response := AddInclusionResponse{
		Inclusion: inclusion,
		Config:    savedConfigToResponse(saved),
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, response)
}

// UpdateInclusion handles PATCH /api/tissue/configs/{id}/inclusions/{incID} requests.
func (h *TissueHandler) UpdateInclusion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	configID, ok := h.parseConfigID(w, r)
	if !ok {
		return
	}

	inclusionID, err := uuid.Parse(chi.URLParam(r, "incID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid inclusion ID format")
		return
	}

	var req UpdateInclusionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	saved, err := h.labService.UpdateInclusion(r.Context(), configID, inclusionID, req.toPatch())
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to update inclusion"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, savedConfigToResponse(saved))
}

// RemoveInclusion handles DELETE /api/tissue/configs/{id}/inclusions/{incID} requests.
func (h *TissueHandler) RemoveInclusion(w http.ResponseWriter, r *http.Request) {
	configID, ok := h.parseConfigID(w, r)
	if !ok {
		return
	}

	inclusionID, err := uuid.Parse(chi.URLParam(r, "incID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid inclusion ID format")
		return
	}

	saved, err := h.labService.RemoveInclusion(r.Context(), configID, inclusionID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to remove inclusion"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, savedConfigToResponse(saved))
}

// parseConfigID extracts and parses the {id} URL parameter, writing the
// error response itself when the ID is missing or malformed.
func (h *TissueHandler) parseConfigID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Config ID is required")
		return uuid.Nil, false
	}

	configID, err := uuid.Parse(pathID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid config ID format")
		return uuid.Nil, false
	}

	return configID, true
}

func parseQueryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
