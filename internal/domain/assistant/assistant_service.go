package assistant

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/tripweaver/tripweaver-api/internal/llm"
	"github.com/tripweaver/tripweaver-api/internal/types"
	"github.com/tripweaver/tripweaver-api/pkg/observability"
)

const (
	descriptorTemperature   float32 = 0.2
	conversationTemperature float32 = 0.5
)

const (
	apologyReply = "Sorry, I couldn't reach the trip assistant just now. Your itinerary is unchanged - please try again in a moment."
	clarifyReply = "I couldn't map that to specific itinerary changes. Could you tell me which day and which activity you'd like to adjust?"
	specifyReply = "Those changes need a little more detail before I can apply them safely. Your itinerary is unchanged - could you be more specific?"
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service is the assistant pipeline: classify the request, ask the generator
// for change descriptors, extract and apply them, and assemble a reply with
// follow-up suggestions. Stateless across calls; the itinerary travels with
// the request.
type Service interface {
	ProcessMessage(ctx context.Context, itinerary types.Itinerary, message string) (*types.AssistantResponse, error)
}

// ServiceImpl provides the implementation for Service.
type ServiceImpl struct {
	logger     *slog.Logger
	aiClient   llm.ChatClient
	cache      *cache.Cache
	classifier *types.RequestClassifier
}

// NewService creates the assistant service. The cache memoizes generated
// change summaries keyed by prompt hash.
func NewService(aiClient llm.ChatClient, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:     logger,
		aiClient:   aiClient,
		cache:      cache.New(24*time.Hour, 1*time.Hour),
		classifier: &types.RequestClassifier{},
	}
}

// ProcessMessage runs the full pipeline for one user message. Extraction and
// mutation failures are recovered locally into well-formed "no changes"
// responses; the only user-visible failure is an unreachable generator, and
// even that returns the original itinerary with an apology rather than an
// error.
func (s *ServiceImpl) ProcessMessage(ctx context.Context, itinerary types.Itinerary, message string) (*types.AssistantResponse, error) {
	ctx, span := otel.Tracer("AssistantService").Start(ctx, "ProcessMessage", trace.WithAttributes(
		attribute.Int("message.length", len(message)),
		attribute.Int("itinerary.days", len(itinerary.Schedule.Days)),
	))
	defer span.End()

	intent := s.classifier.Classify(message)
	observability.IntentTotal.WithLabelValues(string(intent.Type)).Inc()
	span.SetAttributes(
		attribute.String("intent.type", string(intent.Type)),
		attribute.String("intent.action", intent.Action),
	)
	s.logger.InfoContext(ctx, "intent classified",
		slog.String("intent", string(intent.Type)),
		slog.String("action", intent.Action),
		slog.Float64("confidence", intent.Confidence))

	if intent.Type != types.IntentModifyItinerary {
		return s.converse(ctx, itinerary, message, intent)
	}

	raw, err := s.generate(ctx, getChangeDescriptorPrompt(itinerary, message, intent), "descriptors", descriptorTemperature)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generator call failed")
		s.logger.ErrorContext(ctx, "generator call failed", slog.Any("error", err))
		return &types.AssistantResponse{
			Reply:       apologyReply,
			Itinerary:   itinerary,
			Suggestions: GenerateSuggestions(nil, intent.Action, itinerary),
			Intent:      intent,
		}, nil
	}

	payload, ok := ExtractJSONPayload(raw)
	if !ok {
		observability.ExtractionTotal.WithLabelValues("not_found").Inc()
		s.logger.WarnContext(ctx, "no JSON payload in generator output", slog.Int("response_length", len(raw)))
		return s.noChanges(itinerary, intent, clarifyReply), nil
	}
	observability.ExtractionTotal.WithLabelValues("found").Inc()

	var descriptors []types.ChangeDescriptor
	if err := json.Unmarshal([]byte(payload), &descriptors); err != nil {
		// Schema miss is treated identically to an extraction miss.
		s.logger.WarnContext(ctx, "payload is not a descriptor list", slog.Any("error", err))
		return s.noChanges(itinerary, intent, clarifyReply), nil
	}

	updated, applied, err := ApplyChanges(itinerary, descriptors, &instrumentedObserver{ctx: ctx, logger: s.logger})
	if err != nil {
		span.RecordError(err)
		s.logger.WarnContext(ctx, "change batch rejected", slog.Any("error", err), slog.Int("descriptors", len(descriptors)))
		return s.noChanges(itinerary, intent, specifyReply), nil
	}
	span.SetAttributes(attribute.Int("changes.applied", applied))

	return &types.AssistantResponse{
		Reply:        s.summarize(ctx, message, descriptors, applied),
		Itinerary:    updated,
		Suggestions:  GenerateSuggestions(descriptors, intent.Action, updated),
		AppliedCount: applied,
		Intent:       intent,
	}, nil
}

// converse handles the non-modification intents with a single generator call
// and no itinerary mutation.
func (s *ServiceImpl) converse(ctx context.Context, itinerary types.Itinerary, message string, intent types.Intent) (*types.AssistantResponse, error) {
	reply, err := s.generate(ctx, getConversationalPrompt(itinerary, message, intent), "conversation", conversationTemperature)
	if err != nil {
		s.logger.ErrorContext(ctx, "generator call failed", slog.Any("error", err))
		reply = apologyReply
	}
	return &types.AssistantResponse{
		Reply:       reply,
		Itinerary:   itinerary,
		Suggestions: GenerateSuggestions(nil, intent.Action, itinerary),
		Intent:      intent,
	}, nil
}

func (s *ServiceImpl) noChanges(itinerary types.Itinerary, intent types.Intent, reply string) *types.AssistantResponse {
	return &types.AssistantResponse{
		Reply:       reply,
		Itinerary:   itinerary,
		Suggestions: GenerateSuggestions(nil, intent.Action, itinerary),
		Intent:      intent,
	}
}

// generate performs one generator call and extracts the first candidate text.
func (s *ServiceImpl) generate(ctx context.Context, prompt, purpose string, temperature float32) (string, error) {
	start := time.Now()
	response, err := s.aiClient.GenerateResponse(ctx, prompt, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	})
	observability.LLMRequestDuration.WithLabelValues(purpose).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("generate %s: %w", purpose, err)
	}

	var txt string
	for _, candidate := range response.Candidates {
		if candidate.Content != nil && len(candidate.Content.Parts) > 0 {
			txt = candidate.Content.Parts[0].Text
			break
		}
	}
	if txt == "" {
		return "", fmt.Errorf("generate %s: empty response", purpose)
	}
	return txt, nil
}

// summarize asks the generator for a conversational recap of the applied
// changes, memoized by prompt hash. A generator failure here degrades to a
// static summary; the changes themselves already landed.
func (s *ServiceImpl) summarize(ctx context.Context, message string, descriptors []types.ChangeDescriptor, applied int) string {
	prompt := getChangeSummaryPrompt(message, descriptors, applied)
	key := fmt.Sprintf("summary:%x", md5.Sum([]byte(prompt)))
	if cached, found := s.cache.Get(key); found {
		if text, ok := cached.(string); ok {
			return text
		}
	}

	text, err := s.generate(ctx, prompt, "summary", conversationTemperature)
	if err != nil {
		s.logger.WarnContext(ctx, "summary generation failed, using fallback", slog.Any("error", err))
		if applied == 0 {
			return "I looked at your request but none of the changes matched your current schedule."
		}
		return fmt.Sprintf("Done - I applied %d change(s) to your itinerary.", applied)
	}

	s.cache.Set(key, text, cache.DefaultExpiration)
	return text
}

// instrumentedObserver routes mutation engine events into structured logs and
// the instruction counters.
type instrumentedObserver struct {
	ctx    context.Context
	logger *slog.Logger
}

func (o *instrumentedObserver) Applied(d types.ChangeDescriptor, day int, activity string) {
	observability.InstructionsTotal.WithLabelValues("applied").Inc()
	o.logger.InfoContext(o.ctx, "change applied",
		slog.String("type", string(d.Type)),
		slog.Int("day", day),
		slog.String("activity", activity))
}

func (o *instrumentedObserver) Skipped(d types.ChangeDescriptor, day int, reason string) {
	observability.InstructionsTotal.WithLabelValues("skipped").Inc()
	o.logger.InfoContext(o.ctx, "change skipped",
		slog.String("type", string(d.Type)),
		slog.Int("day", day),
		slog.String("reason", reason))
}

func (o *instrumentedObserver) Failed(d types.ChangeDescriptor, err error) {
	observability.InstructionsTotal.WithLabelValues("failed").Inc()
	o.logger.WarnContext(o.ctx, "change failed",
		slog.String("type", string(d.Type)),
		slog.Any("error", err))
}
