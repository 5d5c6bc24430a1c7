package types

import (
	a "github.com/petar-dambovaliev/aho-corasick"
)

// IntentType is the coarse category a user request routes to.
type IntentType string

const (
	IntentModifyItinerary IntentType = "modify_itinerary"
	IntentAskQuestion     IntentType = "ask_question"
	IntentGetSuggestions  IntentType = "get_suggestions"
	IntentTroubleshoot    IntentType = "troubleshoot"
	IntentGeneralChat     IntentType = "general_chat"
)

// Intent is the classification result: a coarse type, a specific action
// label used to key prompts and canned suggestions, and a confidence score
// in [0,1].
type Intent struct {
	Type       IntentType `json:"type"`
	Action     string     `json:"action"`
	Confidence float64    `json:"confidence"`
}

// intentRule pairs a keyword matcher with the classification it yields.
// Rules are evaluated in declaration order, first match wins: the
// domain-specific buckets (budget, pace, activity level, culture) come before
// the generic verb bucket on purpose, otherwise "make my trip cheaper" would
// be intercepted by "make" and routed to the generic modify action.
type intentRule struct {
	matcher    a.AhoCorasick
	intent     IntentType
	action     string
	confidence float64
}

func newWordMatcher(patterns []string) a.AhoCorasick {
	builder := a.NewAhoCorasickBuilder(a.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  true,
	})
	return builder.Build(patterns)
}

var intentRules = []intentRule{
	{
		matcher:    newWordMatcher([]string{"save money", "cheaper", "budget", "expensive"}),
		intent:     IntentModifyItinerary,
		action:     "budget modification",
		confidence: 0.9,
	},
	{
		matcher:    newWordMatcher([]string{"less busy", "more relaxed", "too busy", "slow down"}),
		intent:     IntentModifyItinerary,
		action:     "relax itinerary",
		confidence: 0.9,
	},
	{
		matcher:    newWordMatcher([]string{"more active", "adventurous", "energetic", "outdoor", "exciting", "adventure"}),
		intent:     IntentModifyItinerary,
		action:     "active itinerary",
		confidence: 0.9,
	},
	{
		matcher:    newWordMatcher([]string{"cultural", "culture", "museum", "historical"}),
		intent:     IntentModifyItinerary,
		action:     "add cultural activities",
		confidence: 0.9,
	},
	{
		matcher:    newWordMatcher([]string{"make", "add", "remove", "change", "modify", "replace", "swap"}),
		intent:     IntentModifyItinerary,
		action:     "modify itinerary",
		confidence: 0.9,
	},
	{
		matcher:    newWordMatcher([]string{"what", "where", "when", "how", "why", "tell me", "explain", "should i"}),
		intent:     IntentAskQuestion,
		action:     "answer question",
		confidence: 0.8,
	},
	{
		matcher:    newWordMatcher([]string{"suggest", "recommend", "alternatives", "options", "better", "ideas"}),
		intent:     IntentGetSuggestions,
		action:     "provide suggestions",
		confidence: 0.8,
	},
	{
		matcher:    newWordMatcher([]string{"problem", "issue", "conflict", "fix"}),
		intent:     IntentTroubleshoot,
		action:     "solve problem",
		confidence: 0.8,
	},
}

// RequestClassifier maps a free-text user request to an Intent using ordered
// keyword rules. Pure, deterministic, case-insensitive.
type RequestClassifier struct{}

func (c *RequestClassifier) Classify(message string) Intent {
	for _, rule := range intentRules {
		iter := rule.matcher.Iter(message)
		if iter.Next() != nil {
			return Intent{Type: rule.intent, Action: rule.action, Confidence: rule.confidence}
		}
	}

	return Intent{Type: IntentGeneralChat, Action: "general conversation", Confidence: 0.5}
}
