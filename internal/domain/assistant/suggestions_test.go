package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweaver/tripweaver-api/internal/types"
)

func TestGenerateSuggestionsKnownAction(t *testing.T) {
	it := sampleItinerary()
	descriptors := []types.ChangeDescriptor{
		{Type: types.ChangeModification, AffectedDays: []int{1}, ActivityName: "Guided City Tour", After: "cheaper option"},
	}

	got := GenerateSuggestions(descriptors, "budget modification", it)
	require.Len(t, got, 4)
	assert.Equal(t, "Find more free activities", got[0])
	assert.Equal(t, "Suggest budget-friendly restaurants", got[1])
	// Day 1 is covered, so the offered day must be 2 or 3.
	assert.Contains(t, []string{"Modify day 2", "Modify day 3"}, got[2])
	assert.Equal(t, genericSuggestion, got[3])
}

func TestGenerateSuggestionsUncoveredDayMembership(t *testing.T) {
	it := sampleItinerary()
	descriptors := []types.ChangeDescriptor{
		{Type: types.ChangeRemoval, AffectedDays: []int{2}, ActivityName: "Tile Museum"},
	}

	// The day pick is randomized; it must always come from the uncovered set.
	for i := 0; i < 25; i++ {
		got := GenerateSuggestions(descriptors, "relax itinerary", it)
		require.Len(t, got, 4)
		assert.Contains(t, []string{"Modify day 1", "Modify day 3"}, got[2])
	}
}

func TestGenerateSuggestionsAllDaysCovered(t *testing.T) {
	it := sampleItinerary()
	descriptors := []types.ChangeDescriptor{
		{Type: types.ChangeModification, AffectedDays: []int{1, 2, 3}, ActivityName: "everything", After: "x"},
	}

	got := GenerateSuggestions(descriptors, "active itinerary", it)
	require.Len(t, got, 3)
	assert.Equal(t, "Add an outdoor adventure", got[0])
	assert.Equal(t, "Find a hiking or biking option nearby", got[1])
	assert.Equal(t, genericSuggestion, got[2])
}

func TestGenerateSuggestionsUnknownAction(t *testing.T) {
	it := sampleItinerary()

	got := GenerateSuggestions(nil, "modify itinerary", it)
	require.Len(t, got, 2)
	assert.Contains(t, []string{"Modify day 1", "Modify day 2", "Modify day 3"}, got[0])
	assert.Equal(t, genericSuggestion, got[1])
}

func TestGenerateSuggestionsEmptyInputs(t *testing.T) {
	got := GenerateSuggestions(nil, "", types.Itinerary{})
	assert.Equal(t, []string{genericSuggestion}, got)
}

func TestGenerateSuggestionsBounds(t *testing.T) {
	it := sampleItinerary()
	actions := []string{"budget modification", "relax itinerary", "active itinerary", "add cultural activities", "modify itinerary", ""}
	for _, action := range actions {
		got := GenerateSuggestions(nil, action, it)
		assert.GreaterOrEqual(t, len(got), 1, "action %q", action)
		assert.LessOrEqual(t, len(got), maxSuggestions, "action %q", action)
	}
}

func TestPickUncoveredDay(t *testing.T) {
	descriptors := []types.ChangeDescriptor{
		{AffectedDays: []int{1, 3}},
		{AffectedDays: []int{5}},
	}

	day, ok := pickUncoveredDay(descriptors, 5)
	require.True(t, ok)
	assert.Contains(t, []int{2, 4}, day)

	_, ok = pickUncoveredDay(descriptors, 0)
	assert.False(t, ok)

	_, ok = pickUncoveredDay([]types.ChangeDescriptor{{AffectedDays: []int{1, 2}}}, 2)
	assert.False(t, ok)
}

func TestPickUncoveredDayIgnoresOutOfRange(t *testing.T) {
	// Descriptors referencing days beyond the itinerary leave real days open.
	descriptors := []types.ChangeDescriptor{{AffectedDays: []int{99}}}

	day, ok := pickUncoveredDay(descriptors, 2)
	require.True(t, ok)
	assert.Contains(t, []int{1, 2}, day)
}
