package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mythweaver/mythweaver/internal/entities"
	"github.com/mythweaver/mythweaver/internal/errors"
	"github.com/mythweaver/mythweaver/internal/orchestrators/combat"
)

// CharacterHandler serves the spell-slot ledger endpoints. Slots are
// durable character state, so these live under /characters rather than
// under a session's combat.
type CharacterHandler struct {
	service combat.Service
	logger  *slog.Logger
}

// NewCharacterHandler creates a character handler backed by the given service
func NewCharacterHandler(service combat.Service, logger *slog.Logger) *CharacterHandler {
	return &CharacterHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the character endpoints on the mux
func (h *CharacterHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/characters/{characterID}/spell-slots/use", h.handleUseSlot)
	mux.HandleFunc("POST /v1/characters/{characterID}/spell-slots/restore", h.handleRestoreSlot)
	mux.HandleFunc("POST /v1/characters/{characterID}/long-rest", h.handleLongRest)
}

// SpellSlotRequest names the slot level being spent or restored
type SpellSlotRequest struct {
	Level int `json:"level"`
}

// SpellSlotResponse returns the character's updated slot ledger
type SpellSlotResponse struct {
	CharacterID string              `json:"character_id"`
	SpellSlots  entities.SpellSlots `json:"spell_slots"`
}

func (h *CharacterHandler) writeSlots(w http.ResponseWriter, character *entities.Character) {
	resp := SpellSlotResponse{CharacterID: character.ID}
	if character.Spellcasting != nil {
		resp.SpellSlots = character.Spellcasting.SpellSlots
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *CharacterHandler) handleUseSlot(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	var req SpellSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteHTTP(w, errors.InvalidArgument("invalid request body"))
		return
	}

	output, err := h.service.UseSpellSlot(r.Context(), &combat.UseSpellSlotInput{
		UserID:      userID,
		CharacterID: r.PathValue("characterID"),
		Level:       req.Level,
	})
	if err != nil {
		h.logger.Warn("use spell slot failed",
			"character_id", r.PathValue("characterID"),
			"level", req.Level,
			"error", err)
		errors.WriteHTTP(w, err)
		return
	}

	h.writeSlots(w, output.Character)
}

func (h *CharacterHandler) handleRestoreSlot(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	var req SpellSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteHTTP(w, errors.InvalidArgument("invalid request body"))
		return
	}

	output, err := h.service.RestoreSpellSlot(r.Context(), &combat.RestoreSpellSlotInput{
		UserID:      userID,
		CharacterID: r.PathValue("characterID"),
		Level:       req.Level,
	})
	if err != nil {
		h.logger.Warn("restore spell slot failed",
			"character_id", r.PathValue("characterID"),
			"level", req.Level,
			"error", err)
		errors.WriteHTTP(w, err)
		return
	}

	h.writeSlots(w, output.Character)
}

func (h *CharacterHandler) handleLongRest(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	output, err := h.service.LongRest(r.Context(), &combat.LongRestInput{
		UserID:      userID,
		CharacterID: r.PathValue("characterID"),
	})
	if err != nil {
		h.logger.Warn("long rest failed",
			"character_id", r.PathValue("characterID"),
			"error", err)
		errors.WriteHTTP(w, err)
		return
	}

	h.writeSlots(w, output.Character)
}
