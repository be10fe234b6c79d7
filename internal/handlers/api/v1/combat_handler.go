// Package v1 exposes the combat engine over HTTP/JSON. Handlers decode
// requests, delegate to the orchestrator, and encode its outputs; all rule
// decisions live below this layer.
package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mythweaver/mythweaver/internal/entities"
	"github.com/mythweaver/mythweaver/internal/errors"
	"github.com/mythweaver/mythweaver/internal/orchestrators/combat"
)

// userIDHeader identifies the caller. Upstream auth middleware is expected
// to have verified it; this service only uses it for role checks.
const userIDHeader = "X-User-ID"

// CombatHandler serves the combat session endpoints
type CombatHandler struct {
	service combat.Service
	logger  *slog.Logger
}

// NewCombatHandler creates a combat handler backed by the given service
func NewCombatHandler(service combat.Service, logger *slog.Logger) *CombatHandler {
	return &CombatHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the combat endpoints on the mux
func (h *CombatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/sessions/{sessionID}/combat", h.handleGetCombat)
	mux.HandleFunc("POST /v1/sessions/{sessionID}/combat/combatants", h.handleAddCombatants)
	mux.HandleFunc("PATCH /v1/sessions/{sessionID}/combat/combatants/{combatantID}", h.handleUpdateCombatant)
	mux.HandleFunc("DELETE /v1/sessions/{sessionID}/combat/combatants/{combatantID}", h.handleRemoveCombatant)
	mux.HandleFunc("POST /v1/sessions/{sessionID}/combat/combatants/{combatantID}/actions", h.handleTakeAction)
	mux.HandleFunc("POST /v1/sessions/{sessionID}/combat/start", h.handleStartCombat)
	mux.HandleFunc("POST /v1/sessions/{sessionID}/combat/advance", h.handleAdvanceTurn)
	mux.HandleFunc("POST /v1/sessions/{sessionID}/combat/end", h.handleEndCombat)
	mux.HandleFunc("GET /v1/actions", h.handleListActions)
}

func requestUserID(r *http.Request) (string, error) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		return "", errors.Unauthenticated("X-User-ID header is required")
	}
	return userID, nil
}

func (h *CombatHandler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *CombatHandler) handleGetCombat(w http.ResponseWriter, r *http.Request) {
	if _, err := requestUserID(r); err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	output, err := h.service.GetCombat(r.Context(), &combat.GetCombatInput{
		SessionID: r.PathValue("sessionID"),
	})
	if err != nil {
		h.logger.Warn("get combat failed", "session_id", r.PathValue("sessionID"), "error", err)
		errors.WriteHTTP(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, output.State)
}

// CombatantSelectionRequest selects a character or template to add
type CombatantSelectionRequest struct {
	CharacterID string `json:"character_id,omitempty"`
	TemplateID  string `json:"template_id,omitempty"`
	Initiative  *int   `json:"initiative,omitempty"`
	IsCompanion bool   `json:"is_companion,omitempty"`
}

// AddCombatantsRequest is the body for adding combatants
type AddCombatantsRequest struct {
	Selections []CombatantSelectionRequest `json:"selections"`
}

// AddCombatantsResponse returns the new state and the created combatants
type AddCombatantsResponse struct {
	State *entities.CombatState `json:"state"`
	Added []*entities.Combatant `json:"added"`
}

func (h *CombatHandler) handleAddCombatants(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	var req AddCombatantsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteHTTP(w, errors.InvalidArgument("invalid request body"))
		return
	}

	selections := make([]combat.CombatantSelection, len(req.Selections))
	for i, s := range req.Selections {
		selections[i] = combat.CombatantSelection{
			CharacterID: s.CharacterID,
			TemplateID:  s.TemplateID,
			Initiative:  s.Initiative,
			IsCompanion: s.IsCompanion,
		}
	}

	output, err := h.service.AddCombatants(r.Context(), &combat.AddCombatantsInput{
		SessionID:  r.PathValue("sessionID"),
		UserID:     userID,
		Selections: selections,
	})
	if err != nil {
		h.logger.Warn("add combatants failed", "session_id", r.PathValue("sessionID"), "error", err)
		errors.WriteHTTP(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, AddCombatantsResponse{State: output.State, Added: output.Added})
}

// UpdateCombatantRequest is a partial update; omitted fields are untouched
type UpdateCombatantRequest struct {
	HPDelta         *int                     `json:"hp_delta,omitempty"`
	StatusEffects   *[]entities.StatusEffect `json:"status_effects,omitempty"`
	Initiative      *int                     `json:"initiative,omitempty"`
	IsCompanion     *bool                    `json:"is_companion,omitempty"`
	ShowHPToPlayers *bool                    `json:"show_hp_to_players,omitempty"`
}

func (h *CombatHandler) handleUpdateCombatant(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	var req UpdateCombatantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteHTTP(w, errors.InvalidArgument("invalid request body"))
		return
	}

	output, err := h.service.UpdateCombatant(r.Context(), &combat.UpdateCombatantInput{
		SessionID:   r.PathValue("sessionID"),
		UserID:      userID,
		CombatantID: r.PathValue("combatantID"),
		Update: combat.CombatantUpdate{
			HPDelta:         req.HPDelta,
			StatusEffects:   req.StatusEffects,
			Initiative:      req.Initiative,
			IsCompanion:     req.IsCompanion,
			ShowHPToPlayers: req.ShowHPToPlayers,
		},
	})
	if err != nil {
		h.logger.Warn("update combatant failed",
			"session_id", r.PathValue("sessionID"),
			"combatant_id", r.PathValue("combatantID"),
			"error", err)
		errors.WriteHTTP(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, output.State)
}

func (h *CombatHandler) handleRemoveCombatant(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	output, err := h.service.RemoveCombatant(r.Context(), &combat.RemoveCombatantInput{
		SessionID:   r.PathValue("sessionID"),
		UserID:      userID,
		CombatantID: r.PathValue("combatantID"),
	})
	if err != nil {
		h.logger.Warn("remove combatant failed",
			"session_id", r.PathValue("sessionID"),
			"combatant_id", r.PathValue("combatantID"),
			"error", err)
		errors.WriteHTTP(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, output.State)
}

func (h *CombatHandler) handleStartCombat(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	output, err := h.service.StartCombat(r.Context(), &combat.StartCombatInput{
		SessionID: r.PathValue("sessionID"),
		UserID:    userID,
	})
	if err != nil {
		h.logger.Warn("start combat failed", "session_id", r.PathValue("sessionID"), "error", err)
		errors.WriteHTTP(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, output.State)
}

func (h *CombatHandler) handleAdvanceTurn(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	output, err := h.service.AdvanceTurn(r.Context(), &combat.AdvanceTurnInput{
		SessionID: r.PathValue("sessionID"),
		UserID:    userID,
	})
	if err != nil {
		h.logger.Warn("advance turn failed", "session_id", r.PathValue("sessionID"), "error", err)
		errors.WriteHTTP(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, output.State)
}

func (h *CombatHandler) handleEndCombat(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	output, err := h.service.EndCombat(r.Context(), &combat.EndCombatInput{
		SessionID: r.PathValue("sessionID"),
		UserID:    userID,
	})
	if err != nil {
		h.logger.Warn("end combat failed", "session_id", r.PathValue("sessionID"), "error", err)
		errors.WriteHTTP(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, output.State)
}

// SpellCastRequest describes the spell being cast with an action
type SpellCastRequest struct {
	SpellID    string `json:"spell_id"`
	SpellLevel *int   `json:"spell_level,omitempty"`
	SlotLevel  int    `json:"slot_level"`
}

// TakeActionRequest is the body for taking a combat action
type TakeActionRequest struct {
	ActionID  string            `json:"action_id"`
	SpellCast *SpellCastRequest `json:"spell_cast,omitempty"`
	Details   string            `json:"details,omitempty"`
}

// TakeActionResponse returns the new state and the acting combatant
type TakeActionResponse struct {
	State     *entities.CombatState `json:"state"`
	Combatant *entities.Combatant   `json:"combatant"`
}

func (h *CombatHandler) handleTakeAction(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	var req TakeActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteHTTP(w, errors.InvalidArgument("invalid request body"))
		return
	}

	input := &combat.TakeTurnActionInput{
		SessionID:   r.PathValue("sessionID"),
		UserID:      userID,
		CombatantID: r.PathValue("combatantID"),
		ActionID:    req.ActionID,
		Details:     req.Details,
	}
	if req.SpellCast != nil {
		input.SpellCast = &combat.SpellCastSelection{
			SpellID:    req.SpellCast.SpellID,
			SpellLevel: req.SpellCast.SpellLevel,
			SlotLevel:  req.SpellCast.SlotLevel,
		}
	}

	output, err := h.service.TakeTurnAction(r.Context(), input)
	if err != nil {
		h.logger.Warn("take action failed",
			"session_id", r.PathValue("sessionID"),
			"combatant_id", r.PathValue("combatantID"),
			"action_id", req.ActionID,
			"error", err)
		errors.WriteHTTP(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, TakeActionResponse{State: output.State, Combatant: output.Combatant})
}

func (h *CombatHandler) handleListActions(w http.ResponseWriter, r *http.Request) {
	output, err := h.service.ListActions(r.Context(), &combat.ListActionsInput{})
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, output.ActionsByCategory)
}
