package response_models

import (
	"slices"
	"strings"

	"tripmate/internal/slots"
)

// TimelineItem is one resolved slot: the chosen place for a day and time.
type TimelineItem struct {
	ID        string         `json:"id"`
	Day       int            `json:"day"`
	Time      string         `json:"time"`
	Category  slots.Category `json:"category"`
	Region    string         `json:"region"`
	PlaceName string         `json:"placeName"`
	Address   string         `json:"address"`
	MapX      string         `json:"mapx,omitempty"`
	MapY      string         `json:"mapy,omitempty"`
	Link      string         `json:"link,omitempty"`
	Note      string         `json:"note,omitempty"`
}

type DayTimeline struct {
	Day   int            `json:"day"`
	Items []TimelineItem `json:"items"`
}

type ItineraryResponse struct {
	Items   []TimelineItem `json:"items"`
	Days    []DayTimeline  `json:"days"`
	Summary string         `json:"summary"`
	Meta    PlanMeta       `json:"meta"`
}

// TimelineDays lists the distinct days present in items, ascending.
func TimelineDays(items []TimelineItem) []int {
	days := make([]int, 0)
	for _, it := range items {
		if !slices.Contains(days, it.Day) {
			days = append(days, it.Day)
		}
	}
	slices.Sort(days)
	return days
}

// ItemsOfDay returns the items of one day ordered by time.
func ItemsOfDay(items []TimelineItem, day int) []TimelineItem {
	out := make([]TimelineItem, 0)
	for _, it := range items {
		if it.Day == day {
			out = append(out, it)
		}
	}
	slices.SortStableFunc(out, func(a, b TimelineItem) int {
		return strings.Compare(a.Time, b.Time)
	})
	return out
}

// GroupByDay builds the per-day timeline view.
func GroupByDay(items []TimelineItem) []DayTimeline {
	days := TimelineDays(items)
	out := make([]DayTimeline, 0, len(days))
	for _, d := range days {
		out = append(out, DayTimeline{Day: d, Items: ItemsOfDay(items, d)})
	}
	return out
}
