package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/2beens/fitplan/internal/telemetry/tracing"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const (
	proposerTemperature = 0.7
	proposerMaxTokens   = 16000
)

var ErrEmptyProposal = errors.New("no workout sessions were proposed")

const systemPrompt = `You are an expert fitness coach and workout planner.
You answer with a single JSON object and nothing else.`

// OpenAIProposer asks a chat completion model, in JSON mode, for the plan content.
type OpenAIProposer struct {
	client openai.Client
	model  shared.ChatModel
}

func NewOpenAIProposer(apiKey, model string, timeout time.Duration, opts ...option.RequestOption) *OpenAIProposer {
	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	chatModel := shared.ChatModel(model)
	if chatModel == "" {
		chatModel = openai.ChatModelGPT4o
	}

	clientOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
	}, opts...)

	return &OpenAIProposer{
		client: openai.NewClient(clientOpts...),
		model:  chatModel,
	}
}

func (p *OpenAIProposer) ProposeSessions(ctx context.Context, req ProposalRequest) (_ *Proposal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "proposer.openai.proposesessions")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("model", string(p.model)))

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(BuildPrompt(req)),
		},
		Model: p.model,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		Temperature:         openai.Float(proposerTemperature),
		MaxCompletionTokens: openai.Int(proposerMaxTokens),
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, ErrEmptyProposal
	}
	span.SetAttributes(attribute.Int64("tokens.total", completion.Usage.TotalTokens))
	log.Debugf("proposer: %d tokens used", completion.Usage.TotalTokens)

	return ParseProposal(completion.Choices[0].Message.Content)
}

// ParseProposal decodes a model answer. Code fences around the JSON are tolerated.
func ParseProposal(content string) (*Proposal, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var proposal Proposal
	if err := json.Unmarshal([]byte(content), &proposal); err != nil {
		return nil, fmt.Errorf("decode proposal: %w", err)
	}
	if len(proposal.WeeklySchedule) == 0 {
		return nil, ErrEmptyProposal
	}
	return &proposal, nil
}

// BuildPrompt renders the user message sent to the model.
func BuildPrompt(req ProposalRequest) string {
	var sb strings.Builder
	c := req.Constraints

	sb.WriteString("Generate a personalized workout plan based on the following information.\n")

	if g := req.Goal; g != nil {
		sb.WriteString("\n## User Goal\n")
		fmt.Fprintf(&sb, "- Title: %s\n", g.Title)
		if g.Description != "" {
			fmt.Fprintf(&sb, "- Description: %s\n", g.Description)
		}
		fmt.Fprintf(&sb, "- Target: %g %s\n", g.TargetValue, g.Unit)
		fmt.Fprintf(&sb, "- Current: %g %s\n", g.CurrentValue, g.Unit)
		if g.TargetDate != nil {
			fmt.Fprintf(&sb, "- Target Date: %s\n", g.TargetDate.Format(time.DateOnly))
		}
	}

	sb.WriteString("\n## Plan Requirements\n")
	fmt.Fprintf(&sb, "- Duration: %d weeks\n", c.WeeksCount)
	fmt.Fprintf(&sb, "- Workouts per Week: %d\n", c.WorkoutsPerWeek)
	fmt.Fprintf(&sb, "- Average Session Duration: %d minutes\n", c.AvgDuration)
	days := make([]string, 0, len(req.Slots))
	for _, d := range req.Slots {
		days = append(days, fmt.Sprintf("%d (%s)", d, time.Weekday(d)))
	}
	fmt.Fprintf(&sb, "- Workout Days: %s\n", strings.Join(days, ", "))

	prefs := c.Preferences
	sb.WriteString("\n## User Preferences\n")
	fmt.Fprintf(&sb, "- Fitness Level: %s\n", orDefault(prefs.FitnessLevel, "intermediate"))
	fmt.Fprintf(&sb, "- Focus Areas: %s\n", orDefault(strings.Join(prefs.FocusAreas, ", "), "Full body"))
	fmt.Fprintf(&sb, "- Available Equipment: %s\n", orDefault(strings.Join(prefs.Equipment, ", "), "Full gym access"))
	if prefs.GymAccess != nil && !*prefs.GymAccess {
		sb.WriteString("- Gym Access: Home workouts only\n")
	} else {
		sb.WriteString("- Gym Access: Yes\n")
	}
	if prefs.Constraints != "" {
		fmt.Fprintf(&sb, "- Constraints/Injuries: %s\n", prefs.Constraints)
	}

	if len(req.Stats) > 0 {
		sb.WriteString("\n## Exercise Performance Data\n")
		names := make([]string, 0, len(req.Stats))
		for name := range req.Stats {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			s := req.Stats[name]
			fmt.Fprintf(&sb, "- %s: Max %g %s, Avg %.1f %s, %d sets", name, s.MaxWeight, s.WeightUnit, s.AvgWeight, s.WeightUnit, s.TotalSets)
			if s.MixedUnits {
				sb.WriteString(" (logged in mixed units, unreliable)")
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString(promptInstructions)
	return sb.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

const promptInstructions = `
## Instructions
1. Respect all constraints and injuries mentioned.
2. Match the user's fitness level and focus on the goal.
3. Include progressive overload across weeks.
4. Each workout has 4-6 exercises with sets, reps and weights.
5. Use exactly the listed workout days, for every week.
6. Day is the day of week: 0=Sunday, 1=Monday, ..., 6=Saturday.

## Output Format
{
  "weeklySchedule": [
    {
      "week": 1,
      "day": 1,
      "dayName": "Monday",
      "name": "Upper Body Strength",
      "workoutType": "strength",
      "exercises": [
        {"name": "Bench Press", "sets": 3, "reps": 10, "weight": 60, "weightUnit": "kg", "restSeconds": 90}
      ],
      "duration": 60,
      "intensity": "medium",
      "notes": "Focus on form this week"
    }
  ],
  "rationale": "Why this plan suits the user",
  "progressionStrategy": "How the plan progresses week by week",
  "keyConsiderations": ["Point 1", "Point 2"]
}
`
