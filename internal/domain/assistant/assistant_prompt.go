package assistant

import (
	"encoding/json"
	"fmt"

	"github.com/tripweaver/tripweaver-api/internal/types"
)

// getChangeDescriptorPrompt asks the generator for a JSON array of change
// descriptors for the user's request against the current itinerary.
func getChangeDescriptorPrompt(itinerary types.Itinerary, message string, intent types.Intent) string {
	doc, err := json.MarshalIndent(itinerary, "", "  ")
	if err != nil {
		doc = []byte("{}")
	}

	return fmt.Sprintf(`You are a travel itinerary editor. The user asked: %q
The request was classified as %q (%s).

Current itinerary:
%s

Translate the request into itinerary changes. Respond with ONLY a JSON array
of change objects, no prose, using this structure:
[
  {
    "type": "addition" | "modification" | "removal",
    "description": "short human-readable summary of this change",
    "affectedDays": [1, 2],
    "activityName": "name of the activity to add, modify, or remove",
    "before": "original value (modifications only, optional)",
    "after": "new content (additions and modifications)"
  }
]

Rules:
- Reference only day numbers that exist in the itinerary.
- For modifications, "after" may use "New Name: new description" to rename.
- Keep the array empty if no concrete change can be derived.`,
		message, intent.Action, intent.Type, string(doc))
}

// getConversationalPrompt covers the non-modification intents: questions,
// suggestion requests, troubleshooting, and small talk.
func getConversationalPrompt(itinerary types.Itinerary, message string, intent types.Intent) string {
	doc, err := json.MarshalIndent(itinerary, "", "  ")
	if err != nil {
		doc = []byte("{}")
	}

	return fmt.Sprintf(`You are a travel assistant. The user asked: %q
The request was classified as %q (%s).

Current itinerary:
%s

Answer helpfully in 2-4 sentences, grounded in the itinerary above. Plain
text only, no JSON, no markdown.`,
		message, intent.Action, intent.Type, string(doc))
}

// getChangeSummaryPrompt asks the generator for a short conversational
// summary of the changes that were applied.
func getChangeSummaryPrompt(message string, descriptors []types.ChangeDescriptor, appliedCount int) string {
	changes, err := json.Marshal(descriptors)
	if err != nil {
		changes = []byte("[]")
	}

	return fmt.Sprintf(`The user asked: %q

These itinerary changes were requested (as JSON):
%s

%d of them were applied. Write a friendly 2-3 sentence summary of what
changed in the trip, in second person, without technical vocabulary and
without mentioning JSON or day lookups. Plain text only.`,
		message, string(changes), appliedCount)
}
