//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/fitplan/internal/planner/generation"
	"github.com/2beens/fitplan/internal/planner/goals"
	"github.com/2beens/fitplan/internal/planner/history"
	"github.com/2beens/fitplan/internal/planner/plans"
	"github.com/2beens/fitplan/internal/telemetry/metrics"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

type staticProposer struct{}

func (p staticProposer) ProposeSessions(_ context.Context, req generation.ProposalRequest) (*generation.Proposal, error) {
	proposal := &generation.Proposal{
		Rationale:           "Build a base first.",
		ProgressionStrategy: "Add weight every week.",
		KeyConsiderations:   []string{"sleep"},
	}
	for week := 1; week <= req.Constraints.WeeksCount; week++ {
		for _, day := range req.Slots {
			proposal.WeeklySchedule = append(proposal.WeeklySchedule, generation.ProposedSession{
				Week:        week,
				Day:         day,
				Name:        "Full body",
				WorkoutType: "strength",
				Duration:    req.Constraints.AvgDuration,
				Intensity:   "medium",
				Exercises: []generation.ProposedExercise{
					{Name: "Back squat", Sets: 3, Reps: 5},
				},
			})
		}
	}
	return proposal, nil
}

func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path string, body any, out any) int {
	var reqBody io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	if out != nil && len(respBytes) > 0 {
		s.Require().NoError(json.Unmarshal(respBytes, out), string(respBytes))
	}
	return resp.StatusCode
}

func (s *IntegrationTestSuite) insertGoal(ctx context.Context) uuid.UUID {
	goalID := uuid.New()
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO goal (id, user_id, title, unit, initial_value, current_value, target_value)
			VALUES ($1, $2, $3, 'workouts', 0, 0, 20);`,
		goalID.String(), s.userID.String(), gofakeit.Sentence(3),
	)
	s.Require().NoError(err)
	return goalID
}

func (s *IntegrationTestSuite) insertWorkout(ctx context.Context) uuid.UUID {
	workoutID := uuid.New()
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO workout (id, user_id, name, date, duration_minutes) VALUES ($1, $2, 'Legs', $3, 50);`,
		workoutID.String(), s.userID.String(), time.Now().UTC().Format("2006-01-02"),
	)
	s.Require().NoError(err)
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO workout_exercise (id, workout_id, name, sets, reps, weight, weight_unit)
			VALUES ($1, $2, 'Back squat', 3, 5, 100, 'kg');`,
		uuid.NewString(), workoutID.String(),
	)
	s.Require().NoError(err)
	return workoutID
}

// newTestManager builds the worker side of generation against the suite databases.
func (s *IntegrationTestSuite) newTestManager() *generation.Manager {
	historyRepo := history.NewRepo(s.dbPool)
	plansRepo := plans.NewRepo(s.dbPool)
	return generation.NewManager(generation.ManagerParams{
		Jobs:    generation.NewJobRepo(s.dbPool),
		Queue:   generation.NewQueue(s.redisClient),
		Timeout: 10 * time.Second,
		Generator: generation.NewGenerator(
			goals.NewService(goals.NewRepo(s.dbPool), historyRepo, 50),
			plansRepo,
			historyRepo,
			staticProposer{},
			50,
		),
		Metrics: metrics.NewTestManager(),
	})
}

func (s *IntegrationTestSuite) TestPlanGenerationAndTracking() {
	ctx := context.Background()
	goalID := s.insertGoal(ctx)
	workoutID := s.insertWorkout(ctx)

	constraints := generation.Constraints{
		GoalID:          goalID,
		Name:            "Strength block",
		WeeksCount:      2,
		WorkoutsPerWeek: 3,
		AvgDuration:     45,
	}

	var created generation.CreateJobResponse
	s.Require().Equal(http.StatusAccepted, s.doRequest(ctx, http.MethodPost, "/plans/generate", constraints, &created))
	s.Require().NotEqual(uuid.Nil, created.JobID)

	var status generation.JobStatusView
	s.Require().Equal(http.StatusOK, s.doRequest(ctx, http.MethodGet, "/plans/jobs/"+created.JobID.String(), nil, &status))
	s.Equal(generation.JobStatusPending, status.Status)

	// the worker side picks the job from the queue
	queue := generation.NewQueue(s.redisClient)
	jobID, err := queue.Reserve(ctx, 2*time.Second)
	s.Require().NoError(err)
	s.Require().Equal(created.JobID, jobID)
	s.Require().NoError(s.newTestManager().Process(ctx, jobID))
	s.Require().NoError(queue.Ack(ctx, jobID))

	s.Require().Equal(http.StatusOK, s.doRequest(ctx, http.MethodGet, "/plans/jobs/"+created.JobID.String(), nil, &status))
	s.Require().Equal(generation.JobStatusCompleted, status.Status)
	s.Require().NotNil(status.PlanID)
	planID := status.PlanID.String()

	var plan plans.PlanWithSessions
	s.Require().Equal(http.StatusOK, s.doRequest(ctx, http.MethodGet, "/plans/"+planID, nil, &plan))
	s.Equal(plans.PlanStatusDraft, plan.Status)
	s.Len(plan.Sessions, 6)

	// one open plan per goal
	var conflict map[string]string
	s.Require().Equal(http.StatusConflict, s.doRequest(ctx, http.MethodPost, "/plans/generate", constraints, &conflict))
	s.Equal(planID, conflict["existingPlanId"])

	var activated plans.Plan
	s.Require().Equal(http.StatusOK, s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/plans/%s/activate", planID), nil, &activated))
	s.Equal(plans.PlanStatusActive, activated.Status)

	var week plans.CurrentWeek
	s.Require().Equal(http.StatusOK, s.doRequest(ctx, http.MethodGet, "/plans/current-week", nil, &week))
	s.Equal(1, week.CurrentWeek)
	s.Require().Len(week.Sessions, 3)

	sessionID := week.Sessions[0].ID.String()
	var session plans.Session
	s.Require().Equal(http.StatusOK, s.doRequest(ctx, http.MethodPost, "/sessions/"+sessionID+"/complete",
		plans.CompleteSessionRequest{WorkoutID: workoutID}, &session))
	s.Equal(plans.SessionStatusCompleted, session.Status)

	// completed is final
	s.Equal(http.StatusConflict, s.doRequest(ctx, http.MethodPost, "/sessions/"+sessionID+"/skip", nil, nil))

	var stats plans.AdherenceStats
	s.Require().Equal(http.StatusOK, s.doRequest(ctx, http.MethodGet, fmt.Sprintf("/plans/%s/stats", planID), nil, &stats))
	s.Equal(6, stats.TotalSessions)
	s.Equal(1, stats.CompletedSessions)
	s.Equal(5, stats.ScheduledSessions)

	var goal goals.WithProgress
	s.Require().Equal(http.StatusOK, s.doRequest(ctx, http.MethodGet, "/goals/"+goalID.String(), nil, &goal))
	s.Equal(float64(1), goal.CurrentValue)

	s.Require().Equal(http.StatusNoContent, s.doRequest(ctx, http.MethodDelete, "/plans/"+planID, nil, nil))
	s.Equal(http.StatusNotFound, s.doRequest(ctx, http.MethodGet, "/plans/"+planID, nil, nil))
}

func (s *IntegrationTestSuite) TestGenerateValidation() {
	ctx := context.Background()

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	s.Require().Equal(http.StatusBadRequest, s.doRequest(ctx, http.MethodPost, "/plans/generate", generation.Constraints{}, &resp))
	s.Contains(resp.Fields, "goalId")
	s.Contains(resp.Fields, "weeksCount")

	s.Equal(http.StatusNotFound, s.doRequest(ctx, http.MethodPost, "/plans/generate", generation.Constraints{
		GoalID:          uuid.New(),
		Name:            "Unknown goal",
		WeeksCount:      1,
		WorkoutsPerWeek: 2,
		AvgDuration:     30,
	}, nil))
}
