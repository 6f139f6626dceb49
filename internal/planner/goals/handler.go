package goals

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=goals_test

type service interface {
	Get(ctx context.Context, userID, goalID uuid.UUID) (*Goal, error)
	UpdateProgress(ctx context.Context, userID, goalID uuid.UUID, currentValue float64) (*Goal, error)
	SyncUserGoals(ctx context.Context, userID uuid.UUID) (*SyncResult, error)
}

type UpdateProgressRequest struct {
	CurrentValue *float64 `json:"currentValue"`
}

type Handler struct {
	service service
}

func NewHandler(service service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/goals/sync", h.HandleSync).Methods("POST", "OPTIONS").Name("sync-goals")
	r.HandleFunc("/goals/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-goal")
	r.HandleFunc("/goals/{id}/progress", h.HandleUpdateProgress).Methods("PUT", "OPTIONS").Name("update-goal-progress")
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.get")
	defer span.End()

	userID, err := auth.RequestUserID(r)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	goalID, err := pkg.PathUUID(r, "id")
	if err != nil {
		perrors.WriteHTTPError(w, perrors.ErrNotFound)
		return
	}

	goal, err := h.service.Get(ctx, userID, goalID)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, NewWithProgress(goal))
}

func (h *Handler) HandleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.updateprogress")
	defer span.End()

	userID, err := auth.RequestUserID(r)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	goalID, err := pkg.PathUUID(r, "id")
	if err != nil {
		perrors.WriteHTTPError(w, perrors.ErrNotFound)
		return
	}

	var req UpdateProgressRequest
	if err := pkg.DecodeJSONBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.CurrentValue == nil {
		verr := perrors.NewValidationError()
		verr.Add("currentValue", "required")
		perrors.WriteHTTPError(w, verr)
		return
	}

	goal, err := h.service.UpdateProgress(ctx, userID, goalID, *req.CurrentValue)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, NewWithProgress(goal))
}

func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.sync")
	defer span.End()

	userID, err := auth.RequestUserID(r)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	result, err := h.service.SyncUserGoals(ctx, userID)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, result)
}
