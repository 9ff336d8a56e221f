// Package slots turns structured trip parameters into a day-by-day list of
// time-stamped search slots.
package slots

import "strings"

type Theme string

const (
	ThemeHistory  Theme = "역사"
	ThemeFood     Theme = "맛집"
	ThemeNature   Theme = "자연"
	ThemeActivity Theme = "액티비티"
	ThemeCafe     Theme = "카페"
)

// ParseTheme accepts the Korean theme names and their English aliases.
// Unknown values yield the empty theme.
func ParseTheme(s string) Theme {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "역사", "history":
		return ThemeHistory
	case "맛집", "food":
		return ThemeFood
	case "자연", "nature":
		return ThemeNature
	case "액티비티", "activity":
		return ThemeActivity
	case "카페", "cafe":
		return ThemeCafe
	}
	return ""
}

type Season string

const (
	Spring Season = "봄"
	Summer Season = "여름"
	Fall   Season = "가을"
	Winter Season = "겨울"
)

func ParseSeason(s string) Season {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "봄", "spring":
		return Spring
	case "여름", "summer":
		return Summer
	case "가을", "fall", "autumn":
		return Fall
	case "겨울", "winter":
		return Winter
	}
	return ""
}

type Category string

const (
	Breakfast     Category = "아침식사"
	Lunch         Category = "점심식사"
	Dinner        Category = "저녁식사"
	Sightseeing   Category = "관광"
	Cafe          Category = "카페"
	NightActivity Category = "야간활동"
)

func (c Category) IsMeal() bool {
	return c == Breakfast || c == Lunch || c == Dinner
}

// TripInfo is the structured form of a free-text trip request. Optional numbers
// are pointers so that "not mentioned" differs from zero.
type TripInfo struct {
	Region     string   `json:"region"`
	Nights     *int     `json:"nights,omitempty"`
	Days       *int     `json:"days,omitempty"`
	Companions string   `json:"companions,omitempty"`
	Theme      Theme    `json:"theme,omitempty"`
	BudgetKRW  *int     `json:"budgetKRW,omitempty"`
	SeasonHint Season   `json:"seasonHint,omitempty"`
	AvoidFoods []string `json:"avoidFoods,omitempty"`
}

// Normalize canonicalises theme and season spellings; unknown values are cleared.
func (t TripInfo) Normalize() TripInfo {
	t.Region = strings.TrimSpace(t.Region)
	t.Theme = ParseTheme(string(t.Theme))
	t.SeasonHint = ParseSeason(string(t.SeasonHint))
	return t
}

// MaxDays bounds the effective day count.
const MaxDays = 30

// DayCount is days, else nights+1, else 1, clamped to [1, MaxDays].
func (t TripInfo) DayCount() int {
	n := 1
	switch {
	case t.Days != nil:
		n = *t.Days
	case t.Nights != nil:
		n = *t.Nights + 1
	}
	return min(max(n, 1), MaxDays)
}

type PlanSlot struct {
	Day      int      `json:"day"`
	Time     string   `json:"time"`
	Region   string   `json:"region"`
	Category Category `json:"category"`
	Keyword  string   `json:"keyword"`
	Note     string   `json:"note,omitempty"`
}
