package plans

import (
	"context"
	"net/http"

	"github.com/2beens/fitplan/internal/auth"
	"github.com/2beens/fitplan/internal/planner/perrors"
	"github.com/2beens/fitplan/internal/telemetry/tracing"
	"github.com/2beens/fitplan/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=plans_test

type service interface {
	List(ctx context.Context, userID uuid.UUID) ([]*Plan, error)
	Get(ctx context.Context, userID, planID uuid.UUID) (*PlanWithSessions, error)
	Update(ctx context.Context, userID, planID uuid.UUID, patch PlanPatch) (*Plan, error)
	Activate(ctx context.Context, userID, planID uuid.UUID) (*Plan, error)
	Deactivate(ctx context.Context, userID, planID uuid.UUID) (*Plan, error)
	Complete(ctx context.Context, userID, planID uuid.UUID) (*Plan, error)
	Delete(ctx context.Context, userID, planID uuid.UUID) error
	CurrentWeekSessions(ctx context.Context, userID uuid.UUID) (*CurrentWeek, error)
	Stats(ctx context.Context, userID, planID uuid.UUID) (*AdherenceStats, error)
	CompleteSession(ctx context.Context, userID, sessionID, workoutID uuid.UUID, notes *string) (*Session, error)
	SkipSession(ctx context.Context, userID, sessionID uuid.UUID, reason *string) (*Session, error)
	UpdateSession(ctx context.Context, userID, sessionID uuid.UUID, patch SessionPatch) (*Session, error)
	DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error
}

type CompleteSessionRequest struct {
	WorkoutID uuid.UUID `json:"workoutId"`
	Notes     *string   `json:"notes"`
}

type SkipSessionRequest struct {
	Reason *string `json:"reason"`
}

type Handler struct {
	service service
}

func NewHandler(service service) *Handler {
	return &Handler{
		service: service,
	}
}

// idVar only matches uuids, so static paths like /plans/jobs never hit the plan routes.
const idVar = "{id:[0-9a-fA-F-]{36}}"

// SetupRoutes registers plan and session routes.
func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/plans", h.HandleList).Methods("GET", "OPTIONS").Name("list-plans")
	r.HandleFunc("/plans/current-week", h.HandleCurrentWeek).Methods("GET", "OPTIONS").Name("current-week")
	r.HandleFunc("/plans/"+idVar, h.HandleGet).Methods("GET", "OPTIONS").Name("get-plan")
	r.HandleFunc("/plans/"+idVar, h.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-plan")
	r.HandleFunc("/plans/"+idVar, h.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-plan")
	r.HandleFunc("/plans/"+idVar+"/activate", h.planAction(h.service.Activate, "activate")).Methods("POST", "OPTIONS").Name("activate-plan")
	r.HandleFunc("/plans/"+idVar+"/deactivate", h.planAction(h.service.Deactivate, "deactivate")).Methods("POST", "OPTIONS").Name("deactivate-plan")
	r.HandleFunc("/plans/"+idVar+"/complete", h.planAction(h.service.Complete, "complete")).Methods("POST", "OPTIONS").Name("complete-plan")
	r.HandleFunc("/plans/"+idVar+"/stats", h.HandleStats).Methods("GET", "OPTIONS").Name("plan-stats")

	r.HandleFunc("/sessions/"+idVar+"/complete", h.HandleCompleteSession).Methods("POST", "OPTIONS").Name("complete-session")
	r.HandleFunc("/sessions/"+idVar+"/skip", h.HandleSkipSession).Methods("POST", "OPTIONS").Name("skip-session")
	r.HandleFunc("/sessions/"+idVar, h.HandleUpdateSession).Methods("PUT", "OPTIONS").Name("update-session")
	r.HandleFunc("/sessions/"+idVar, h.HandleDeleteSession).Methods("DELETE", "OPTIONS").Name("delete-session")
}

// requestIDs resolves the caller and the {id} path var. An unparsable id is
// answered like a missing entity.
func requestIDs(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, err := auth.RequestUserID(r)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return uuid.Nil, uuid.Nil, false
	}

	id, err := pkg.PathUUID(r, "id")
	if err != nil {
		perrors.WriteHTTPError(w, perrors.ErrNotFound)
		return uuid.Nil, uuid.Nil, false
	}

	return userID, id, true
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.list")
	defer span.End()

	userID, err := auth.RequestUserID(r)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	plans, err := h.service.List(ctx, userID)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, plans)
}

func (h *Handler) HandleCurrentWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.currentweek")
	defer span.End()

	userID, err := auth.RequestUserID(r)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	week, err := h.service.CurrentWeekSessions(ctx, userID)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, week)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.get")
	defer span.End()

	userID, planID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	plan, err := h.service.Get(ctx, userID, planID)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, plan)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.update")
	defer span.End()

	userID, planID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	var patch PlanPatch
	if err := pkg.DecodeJSONBody(r, &patch); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	plan, err := h.service.Update(ctx, userID, planID, patch)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, plan)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.delete")
	defer span.End()

	userID, planID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, userID, planID); err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteNoContent(w)
}

func (h *Handler) planAction(
	action func(ctx context.Context, userID, planID uuid.UUID) (*Plan, error),
	name string,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans."+name)
		defer span.End()

		userID, planID, ok := requestIDs(w, r)
		if !ok {
			return
		}

		plan, err := action(ctx, userID, planID)
		if err != nil {
			perrors.WriteHTTPError(w, err)
			return
		}

		pkg.WriteJSON(w, http.StatusOK, plan)
	}
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.stats")
	defer span.End()

	userID, planID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	stats, err := h.service.Stats(ctx, userID, planID)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) HandleCompleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.complete")
	defer span.End()

	userID, sessionID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	var req CompleteSessionRequest
	if err := pkg.DecodeJSONBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.service.CompleteSession(ctx, userID, sessionID, req.WorkoutID, req.Notes)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) HandleSkipSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.skip")
	defer span.End()

	userID, sessionID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	var req SkipSessionRequest
	if err := pkg.DecodeJSONBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.service.SkipSession(ctx, userID, sessionID, req.Reason)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) HandleUpdateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.update")
	defer span.End()

	userID, sessionID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	var patch SessionPatch
	if err := pkg.DecodeJSONBody(r, &patch); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.service.UpdateSession(ctx, userID, sessionID, patch)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.delete")
	defer span.End()

	userID, sessionID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteSession(ctx, userID, sessionID); err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteNoContent(w)
}
