package planner

import (
	"sort"
	"time"

	"studyctl/pkg/studyflow"
)

// DayAgenda holds the events of one calendar day in start order.
type DayAgenda struct {
	Day    time.Time
	Events []studyflow.Event
}

// GroupByDay sorts events by start time and groups them per local day,
// keeping at most maxPerDay entries per day (0 keeps all).
// Events without a start time are dropped.
func GroupByDay(events []studyflow.Event, maxPerDay int) []DayAgenda {
	var valid []studyflow.Event
	for _, e := range events {
		if !e.Start.IsZero() {
			valid = append(valid, e)
		}
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Start.Before(valid[j].Start.Time)
	})

	dayMap := make(map[string]*DayAgenda)
	var dayKeys []string // chronological order of first appearance

	for _, e := range valid {
		key := e.Start.Format("2006-01-02")
		if _, exists := dayMap[key]; !exists {
			y, m, d := e.Start.Date()
			dayMap[key] = &DayAgenda{Day: time.Date(y, m, d, 0, 0, 0, 0, e.Start.Location())}
			dayKeys = append(dayKeys, key)
		}

		if maxPerDay <= 0 || len(dayMap[key].Events) < maxPerDay {
			dayMap[key].Events = append(dayMap[key].Events, e)
		}
	}

	var result []DayAgenda
	for _, key := range dayKeys {
		result = append(result, *dayMap[key])
	}
	return result
}
