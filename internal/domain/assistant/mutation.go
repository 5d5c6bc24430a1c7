package assistant

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tripweaver/tripweaver-api/internal/types"
)

// ChangeObserver receives one event per (descriptor, day) instruction as the
// mutation engine works through a batch. The engine itself stays free of
// logging concerns; callers decide what an event means.
type ChangeObserver interface {
	Applied(d types.ChangeDescriptor, day int, activity string)
	Skipped(d types.ChangeDescriptor, day int, reason string)
	Failed(d types.ChangeDescriptor, err error)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) Applied(types.ChangeDescriptor, int, string) {}
func (NoopObserver) Skipped(types.ChangeDescriptor, int, string) {}
func (NoopObserver) Failed(types.ChangeDescriptor, error)        {}

const (
	requestedActivityDuration = "2 hours"
	requestedActivityTip      = "Added at your request"
	requestedActivityCategory = "Requested"
)

var (
	clockRe  = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*(AM|PM)?`)
	dollarRe = regexp.MustCompile(`\$\d+`)
)

// ApplyChanges applies an ordered list of change descriptors to a deep copy
// of the itinerary and returns the copy plus the number of descriptors that
// had at least one effect. The input itinerary is never mutated.
//
// Unmatched days and activities are expected and frequent (day numbers and
// names are derived from generator free text), so they degrade to per
// instruction no-ops rather than errors. A descriptor missing required
// variant fields fails the whole batch: the original itinerary is the safe
// fallback and the caller reports the batch as failed.
func ApplyChanges(itinerary types.Itinerary, descriptors []types.ChangeDescriptor, obs ChangeObserver) (types.Itinerary, int, error) {
	if obs == nil {
		obs = NoopObserver{}
	}

	for _, d := range descriptors {
		if err := d.Validate(); err != nil {
			obs.Failed(d, err)
			return itinerary, 0, fmt.Errorf("invalid change descriptor: %w", err)
		}
	}

	updated, err := cloneItinerary(itinerary)
	if err != nil {
		return itinerary, 0, fmt.Errorf("failed to clone itinerary: %w", err)
	}

	applied := 0
	for _, d := range descriptors {
		if len(d.AffectedDays) == 0 {
			obs.Skipped(d, 0, "no affected days")
			continue
		}

		touched := false
		for _, dayNum := range d.AffectedDays {
			day := findDay(&updated.Schedule, dayNum)
			if day == nil {
				obs.Skipped(d, dayNum, "day not found")
				continue
			}

			var ok bool
			switch d.Type {
			case types.ChangeAddition:
				ok = applyAddition(day, d)
			case types.ChangeRemoval:
				ok = applyRemoval(day, d)
			case types.ChangeModification:
				ok = applyModification(day, d)
			}
			if ok {
				touched = true
				obs.Applied(d, dayNum, d.ActivityName)
			} else {
				obs.Skipped(d, dayNum, "activity not found")
			}
		}
		if touched {
			applied++
		}
	}

	return updated, applied, nil
}

// cloneItinerary deep-copies via a JSON round trip so concurrent callers
// holding the same logical document never observe partial writes.
func cloneItinerary(it types.Itinerary) (types.Itinerary, error) {
	raw, err := json.Marshal(it)
	if err != nil {
		return types.Itinerary{}, err
	}
	var out types.Itinerary
	if err := json.Unmarshal(raw, &out); err != nil {
		return types.Itinerary{}, err
	}
	return out, nil
}

func findDay(schedule *types.Schedule, dayNum int) *types.Day {
	for i := range schedule.Days {
		if schedule.Days[i].Day == dayNum {
			return &schedule.Days[i]
		}
	}
	return nil
}

// findActivity locates the first activity whose name case-insensitively
// contains the descriptor's activity name. Substring matching is intentional:
// generator-produced names rarely echo the original exactly.
func findActivity(day *types.Day, name string) int {
	needle := strings.ToLower(name)
	for i := range day.Activities {
		if strings.Contains(strings.ToLower(day.Activities[i].Name), needle) {
			return i
		}
	}
	return -1
}

func applyAddition(day *types.Day, d types.ChangeDescriptor) bool {
	day.Activities = append(day.Activities, types.Activity{
		Name:        d.ActivityName,
		Description: d.After,
		Location:    day.Destination,
		Duration:    requestedActivityDuration,
		Cost:        "Free",
		Tips:        requestedActivityTip,
		Category:    requestedActivityCategory,
	})
	sortActivitiesByTime(day.Activities)
	return true
}

func applyRemoval(day *types.Day, d types.ChangeDescriptor) bool {
	i := findActivity(day, d.ActivityName)
	if i == -1 {
		return false
	}
	day.Activities = append(day.Activities[:i], day.Activities[i+1:]...)
	return true
}

func applyModification(day *types.Day, d types.ChangeDescriptor) bool {
	i := findActivity(day, d.ActivityName)
	if i == -1 {
		return false
	}
	act := &day.Activities[i]

	if strings.TrimSpace(d.After) != "" {
		if strings.Contains(d.After, ":") {
			// "New Name: new description" carries both parts; each is applied
			// only when non-empty after trimming.
			parts := strings.SplitN(d.After, ":", 2)
			if name := strings.TrimSpace(parts[0]); name != "" {
				act.Name = name
			}
			if desc := strings.TrimSpace(parts[1]); desc != "" {
				act.Description = desc
			}
		} else if d.ActivityName != act.Name {
			// The generator renamed the activity and rewrote its description.
			act.Name = d.ActivityName
			act.Description = d.After
		} else {
			act.Description = d.After
		}
	}

	if mentionsCost(d.Description) {
		act.Cost = costFromContent(d.After)
	}
	return true
}

func mentionsCost(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range []string{"budget", "cost", "expensive", "cheaper"} {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// costFromContent derives the new cost field from replacement text. The
// "free" keyword wins over a dollar amount even when both are present; this
// mirrors the observed product behavior and must not be reordered without
// product guidance.
func costFromContent(content string) string {
	if strings.Contains(strings.ToLower(content), "free") {
		return "Free"
	}
	if amount := dollarRe.FindString(content); amount != "" {
		return amount
	}
	return "Budget-friendly"
}

func sortActivitiesByTime(activities []types.Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		return parseClockMinutes(activities[i].Time) < parseClockMinutes(activities[j].Time)
	})
}

// parseClockMinutes converts a free-text clock expression ("9:00 AM", "14:30",
// "7 PM") to minutes since midnight. Unparseable times sort as 0, a coarse
// fallback rather than a precision guarantee.
func parseClockMinutes(s string) int {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	minutes := 0
	if m[2] != "" {
		minutes, _ = strconv.Atoi(m[2])
	}

	switch strings.ToUpper(m[3]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 12 {
			hour += 12
		}
	}
	return hour*60 + minutes
}
