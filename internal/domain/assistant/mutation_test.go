package assistant

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweaver/tripweaver-api/internal/types"
)

func sampleItinerary() types.Itinerary {
	return types.Itinerary{
		Destinations: []types.Destination{{Name: "Lisbon", Days: 3}},
		Schedule: types.Schedule{
			Days: []types.Day{
				{
					Day:         1,
					Destination: "Lisbon",
					Title:       "Old Town",
					Activities: []types.Activity{
						{Time: "9:00 AM", Name: "Guided City Tour", Description: "Walk the Alfama district", Cost: "$30"},
						{Time: "1:00 PM", Name: "Tram 28 Ride", Description: "Classic tram loop", Cost: "$5"},
					},
				},
				{
					Day:         2,
					Destination: "Lisbon",
					Title:       "Museums",
					Activities: []types.Activity{
						{Time: "10:00 AM", Name: "Tile Museum", Description: "Azulejo collection", Cost: "$8"},
						{Time: "3:00 PM", Name: "Expensive Restaurant Dinner", Description: "Tasting menu", Cost: "$120"},
					},
				},
				{
					Day:         3,
					Destination: "Sintra",
					Title:       "Day Trip",
					Activities: []types.Activity{
						{Time: "8:00 AM", Name: "Pena Palace", Description: "Hilltop palace visit", Cost: "$20"},
					},
				},
			},
		},
	}
}

func TestApplyChangesAdditionSortsByTime(t *testing.T) {
	it := sampleItinerary()
	descriptors := []types.ChangeDescriptor{{
		Type:         types.ChangeAddition,
		Description:  "Add a market visit",
		AffectedDays: []int{1},
		ActivityName: "Local Market Tour",
		After:        "Explore the central market stalls",
	}}

	updated, applied, err := ApplyChanges(it, descriptors, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	day := updated.Schedule.Days[0]
	require.Len(t, day.Activities, 3)

	// No parseable time on the new activity, so it sorts to the front.
	added := day.Activities[0]
	assert.Equal(t, "Local Market Tour", added.Name)
	assert.Equal(t, "Explore the central market stalls", added.Description)
	assert.Equal(t, "Lisbon", added.Location)
	assert.Equal(t, "Free", added.Cost)
	assert.Equal(t, requestedActivityDuration, added.Duration)
	assert.Equal(t, requestedActivityCategory, added.Category)

	assert.Equal(t, "Guided City Tour", day.Activities[1].Name)
	assert.Equal(t, "Tram 28 Ride", day.Activities[2].Name)
}

func TestApplyChangesInputNeverMutated(t *testing.T) {
	it := sampleItinerary()
	before, err := json.Marshal(it)
	require.NoError(t, err)

	descriptors := []types.ChangeDescriptor{
		{Type: types.ChangeAddition, AffectedDays: []int{2}, ActivityName: "Fado Show", After: "Evening fado performance"},
		{Type: types.ChangeRemoval, AffectedDays: []int{1}, ActivityName: "city tour"},
	}
	_, applied, err := ApplyChanges(it, descriptors, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	after, err := json.Marshal(it)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestApplyChangesRemovalFuzzyMatch(t *testing.T) {
	it := sampleItinerary()
	descriptors := []types.ChangeDescriptor{{
		Type:         types.ChangeRemoval,
		AffectedDays: []int{1},
		ActivityName: "city tour",
	}}

	updated, applied, err := ApplyChanges(it, descriptors, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	day := updated.Schedule.Days[0]
	require.Len(t, day.Activities, 1)
	assert.Equal(t, "Tram 28 Ride", day.Activities[0].Name)
}

func TestApplyChangesRemovalAbsentActivity(t *testing.T) {
	it := sampleItinerary()
	descriptors := []types.ChangeDescriptor{{
		Type:         types.ChangeRemoval,
		AffectedDays: []int{1},
		ActivityName: "Scuba Diving",
	}}

	updated, applied, err := ApplyChanges(it, descriptors, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, applied)
	assert.Equal(t, it, updated)
}

func TestApplyChangesUnknownDayIsSilentNoop(t *testing.T) {
	it := sampleItinerary()
	descriptors := []types.ChangeDescriptor{{
		Type:         types.ChangeAddition,
		AffectedDays: []int{99},
		ActivityName: "Ghost Activity",
		After:        "Should never land anywhere",
	}}

	updated, applied, err := ApplyChanges(it, descriptors, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, applied)
	assert.Equal(t, it, updated)
}

func TestApplyChangesEmptyAffectedDays(t *testing.T) {
	it := sampleItinerary()
	descriptors := []types.ChangeDescriptor{{
		Type:         types.ChangeRemoval,
		AffectedDays: nil,
		ActivityName: "Tile Museum",
	}}

	updated, applied, err := ApplyChanges(it, descriptors, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, applied)
	assert.Equal(t, it, updated)
}

func TestApplyChangesInvalidDescriptorFailsBatch(t *testing.T) {
	it := sampleItinerary()
	descriptors := []types.ChangeDescriptor{
		{Type: types.ChangeRemoval, AffectedDays: []int{1}, ActivityName: "Tram 28 Ride"},
		{Type: types.ChangeAddition, AffectedDays: []int{2}, ActivityName: "Picnic"}, // missing After
	}

	updated, applied, err := ApplyChanges(it, descriptors, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrBadRequest)
	assert.Equal(t, 0, applied)
	// Even the valid first descriptor must not land.
	assert.Equal(t, it, updated)
}

func TestApplyChangesModificationColonSplit(t *testing.T) {
	it := sampleItinerary()
	descriptors := []types.ChangeDescriptor{{
		Type:         types.ChangeModification,
		Description:  "Swap the pricey dinner for something cheaper",
		AffectedDays: []int{2},
		ActivityName: "Expensive Restaurant",
		After:        "Street Food Crawl: Free tastings at the night market ($15 optional add-ons)",
	}}

	updated, applied, err := ApplyChanges(it, descriptors, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	act := updated.Schedule.Days[1].Activities[1]
	assert.Equal(t, "Street Food Crawl", act.Name)
	assert.Equal(t, "Free tastings at the night market ($15 optional add-ons)", act.Description)
	// "free" outranks the dollar amount in the replacement text.
	assert.Equal(t, "Free", act.Cost)
}

func TestApplyChangesModificationRenameWithoutColon(t *testing.T) {
	it := sampleItinerary()
	descriptors := []types.ChangeDescriptor{{
		Type:         types.ChangeModification,
		Description:  "Make day three more relaxed",
		AffectedDays: []int{3},
		ActivityName: "Palace",
		After:        "Slow walk through the palace gardens",
	}}

	updated, applied, err := ApplyChanges(it, descriptors, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	// Partial name match plus a colon-free replacement means the generator
	// renamed the activity and rewrote its description.
	act := updated.Schedule.Days[2].Activities[0]
	assert.Equal(t, "Palace", act.Name)
	assert.Equal(t, "Slow walk through the palace gardens", act.Description)
	// No cost keyword in the description, so cost is untouched.
	assert.Equal(t, "$20", act.Cost)
}

func TestApplyChangesModificationDescriptionOnly(t *testing.T) {
	it := sampleItinerary()
	descriptors := []types.ChangeDescriptor{{
		Type:         types.ChangeModification,
		Description:  "More detail on the tram ride",
		AffectedDays: []int{1},
		ActivityName: "Tram 28 Ride",
		After:        "Ride the full loop through Graca and Estrela",
	}}

	updated, applied, err := ApplyChanges(it, descriptors, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	act := updated.Schedule.Days[0].Activities[1]
	assert.Equal(t, "Tram 28 Ride", act.Name)
	assert.Equal(t, "Ride the full loop through Graca and Estrela", act.Description)
}

func TestCostFromContent(t *testing.T) {
	tests := []struct {
		content  string
		expected string
	}{
		{"Free walking tour of the district", "Free"},
		{"FREE entry ($40 for the guided option)", "Free"},
		{"Entry is $25 per person", "$25"},
		{"A low-key afternoon at the park", "Budget-friendly"},
		{"", "Budget-friendly"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, costFromContent(tt.content), "content: %q", tt.content)
	}
}

func TestParseClockMinutes(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"9:00 AM", 540},
		{"3:00 PM", 900},
		{"12 PM", 720},
		{"12:15 AM", 15},
		{"14:30", 870},
		{"7 PM", 1140},
		{"around noon", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseClockMinutes(tt.input), "input: %q", tt.input)
	}
}

type recordingObserver struct {
	applied []string
	skipped []string
	failed  int
}

func (r *recordingObserver) Applied(d types.ChangeDescriptor, day int, activity string) {
	r.applied = append(r.applied, activity)
}

func (r *recordingObserver) Skipped(d types.ChangeDescriptor, day int, reason string) {
	r.skipped = append(r.skipped, reason)
}

func (r *recordingObserver) Failed(d types.ChangeDescriptor, err error) {
	r.failed++
}

func TestApplyChangesObserverEvents(t *testing.T) {
	it := sampleItinerary()
	descriptors := []types.ChangeDescriptor{
		{Type: types.ChangeRemoval, AffectedDays: []int{1}, ActivityName: "Tram 28 Ride"},
		{Type: types.ChangeRemoval, AffectedDays: []int{99}, ActivityName: "Nothing Here"},
		{Type: types.ChangeRemoval, AffectedDays: nil, ActivityName: "Also Nothing"},
	}

	obs := &recordingObserver{}
	_, applied, err := ApplyChanges(it, descriptors, obs)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.Equal(t, []string{"Tram 28 Ride"}, obs.applied)
	assert.Equal(t, []string{"day not found", "no affected days"}, obs.skipped)
	assert.Zero(t, obs.failed)
}
