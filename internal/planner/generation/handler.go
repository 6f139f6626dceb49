package generation

import (
	"context"
	"net/http"
	"strconv"

	"github.com/2beens/fitplan/internal/auth"
	"github.com/2beens/fitplan/internal/planner/perrors"
	"github.com/2beens/fitplan/internal/telemetry/tracing"
	"github.com/2beens/fitplan/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=generation_test

type jobsService interface {
	CreateJob(ctx context.Context, userID uuid.UUID, c Constraints) (*Job, error)
	GetJobStatus(ctx context.Context, userID, jobID uuid.UUID) (*JobStatusView, error)
	ListJobs(ctx context.Context, userID uuid.UUID, limit int) ([]*JobStatusView, error)
}

type CreateJobResponse struct {
	JobID uuid.UUID `json:"jobId"`
}

type Handler struct {
	service jobsService
}

func NewHandler(service jobsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/plans/generate", h.HandleGenerate).Methods("POST", "OPTIONS").Name("generate-plan")
	r.HandleFunc("/plans/jobs", h.HandleListJobs).Methods("GET", "OPTIONS").Name("list-generation-jobs")
	r.HandleFunc("/plans/jobs/{id}", h.HandleJobStatus).Methods("GET", "OPTIONS").Name("generation-job-status")
}

func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.generation.generate")
	defer span.End()

	userID, err := auth.RequestUserID(r)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	var c Constraints
	if err := pkg.DecodeJSONBody(r, &c); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	job, err := h.service.CreateJob(ctx, userID, c)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusAccepted, CreateJobResponse{JobID: job.ID})
}

func (h *Handler) HandleJobStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.generation.status")
	defer span.End()

	userID, err := auth.RequestUserID(r)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	jobID, err := pkg.PathUUID(r, "id")
	if err != nil {
		perrors.WriteHTTPError(w, perrors.ErrNotFound)
		return
	}

	status, err := h.service.GetJobStatus(ctx, userID, jobID)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, status)
}

func (h *Handler) HandleListJobs(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.generation.list")
	defer span.End()

	userID, err := auth.RequestUserID(r)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	limit := DefaultJobsListLimit
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		limit, err = strconv.Atoi(limitParam)
		if err != nil || limit <= 0 || limit > 100 {
			verr := perrors.NewValidationError()
			verr.Add("limit", "must be between 1 and 100")
			perrors.WriteHTTPError(w, verr)
			return
		}
	}

	jobs, err := h.service.ListJobs(ctx, userID, limit)
	if err != nil {
		perrors.WriteHTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, jobs)
}
