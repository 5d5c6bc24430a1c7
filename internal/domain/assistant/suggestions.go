package assistant

import (
	"fmt"
	"math/rand"

	"github.com/tripweaver/tripweaver-api/internal/types"
)

const maxSuggestions = 4

const genericSuggestion = "What else would you like to adjust on this trip?"

// cannedSuggestions are keyed by the classifier's action label. At most two
// are prepended to the generated list.
var cannedSuggestions = map[string][]string{
	"budget modification": {
		"Find more free activities",
		"Suggest budget-friendly restaurants",
	},
	"relax itinerary": {
		"Add more free time between activities",
		"Drop the busiest day's least essential stop",
	},
	"active itinerary": {
		"Add an outdoor adventure",
		"Find a hiking or biking option nearby",
	},
	"add cultural activities": {
		"Add a heritage site visit",
		"Find a local museum or gallery",
	},
}

// GenerateSuggestions derives 3-4 short follow-up prompts from the applied
// descriptors, the classified action, and the mutated itinerary. The core is
// deterministic; the single randomized element is which uncovered day gets
// offered for modification. No failure mode: with empty inputs it returns
// the generic fallback alone.
func GenerateSuggestions(descriptors []types.ChangeDescriptor, action string, itinerary types.Itinerary) []string {
	var suggestions []string

	if canned, ok := cannedSuggestions[action]; ok {
		if len(canned) > 2 {
			canned = canned[:2]
		}
		suggestions = append(suggestions, canned...)
	}

	if day, ok := pickUncoveredDay(descriptors, len(itinerary.Schedule.Days)); ok {
		suggestions = append(suggestions, fmt.Sprintf("Modify day %d", day))
	}

	if len(suggestions) < maxSuggestions {
		suggestions = append(suggestions, genericSuggestion)
	}
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// pickUncoveredDay returns a random valid day number no descriptor touched,
// or ok=false when every day was covered or the itinerary has no days.
func pickUncoveredDay(descriptors []types.ChangeDescriptor, totalDays int) (int, bool) {
	covered := make(map[int]bool)
	for _, d := range descriptors {
		for _, day := range d.AffectedDays {
			covered[day] = true
		}
	}

	var uncovered []int
	for day := 1; day <= totalDays; day++ {
		if !covered[day] {
			uncovered = append(uncovered, day)
		}
	}
	if len(uncovered) == 0 {
		return 0, false
	}
	return uncovered[rand.Intn(len(uncovered))], true
}
