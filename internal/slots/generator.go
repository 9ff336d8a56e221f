package slots

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// SeasonOf maps a month onto its three-month season.
func SeasonOf(m time.Month) Season {
	switch m {
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	case time.September, time.October, time.November:
		return Fall
	}
	return Winter
}

// ResolveSeason prefers the explicit hint and falls back to the month of now.
func ResolveSeason(info TripInfo, now time.Time) Season {
	if s := ParseSeason(string(info.SeasonHint)); s != "" {
		return s
	}
	return SeasonOf(now.Month())
}

// NormalizeRegion strips one trailing administrative suffix (시, 군, 구, 광역시, ...)
// as long as at least two runes remain. An empty region becomes 서울.
func NormalizeRegion(region string) string {
	r := strings.TrimSpace(region)
	for _, suffix := range adminSuffixes {
		if !strings.HasSuffix(r, suffix) {
			continue
		}
		if rest := strings.TrimSpace(strings.TrimSuffix(r, suffix)); utf8.RuneCountInString(rest) >= 2 {
			r = rest
		}
		break
	}
	if r == "" {
		return defaultRegion
	}
	return r
}

// dayTemplate drops breakfast on arrival day and the night block on departure day.
func dayTemplate(day, totalDays int) []block {
	out := make([]block, 0, len(fullDay))
	for _, b := range fullDay {
		if day == 1 && b.category == Breakfast {
			continue
		}
		if day == totalDays && b.category == NightActivity {
			continue
		}
		out = append(out, b)
	}
	return out
}

// SlotCount is the number of slots Generate emits for a trip of n days.
func SlotCount(n int) int {
	n = min(max(n, 1), MaxDays)
	if n == 1 {
		return len(fullDay) - 2
	}
	return len(fullDay)*n - 2
}

// generation holds the bookkeeping of a single Generate call.
type generation struct {
	region string
	theme  Theme
	budget *int
	season Season
	avoid  []string

	usedPerDay   map[int]map[Cuisine]bool
	usedTrip     map[Cuisine]bool
	usedKeywords map[string]bool
}

func newGeneration(info TripInfo, now time.Time) *generation {
	avoid := make([]string, 0, len(info.AvoidFoods))
	for _, a := range info.AvoidFoods {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			avoid = append(avoid, a)
		}
	}
	return &generation{
		region:       NormalizeRegion(info.Region),
		theme:        ParseTheme(string(info.Theme)),
		budget:       info.BudgetKRW,
		season:       ResolveSeason(info, now),
		avoid:        avoid,
		usedPerDay:   make(map[int]map[Cuisine]bool),
		usedTrip:     make(map[Cuisine]bool),
		usedKeywords: make(map[string]bool),
	}
}

func (g *generation) excluded(s string) bool {
	low := strings.ToLower(s)
	for _, a := range g.avoid {
		if strings.Contains(low, a) {
			return true
		}
	}
	return false
}

func (g *generation) firstAllowed(options []string) (string, bool) {
	for _, o := range options {
		if !g.excluded(o) {
			return o, true
		}
	}
	return "", false
}

// nextCuisine prefers a cuisine unused today, then unused on the whole trip, that
// the avoid list does not exclude. The avoid list never blocks generation.
func (g *generation) nextCuisine(day int) Cuisine {
	pool := cuisinePool(g.theme)
	today := g.usedPerDay[day]
	if today == nil {
		today = make(map[Cuisine]bool)
		g.usedPerDay[day] = today
	}

	ordered := make([]Cuisine, 0, len(pool))
	for _, c := range pool {
		if !today[c] && !g.usedTrip[c] {
			ordered = append(ordered, c)
		}
	}
	for _, c := range pool {
		if !today[c] && g.usedTrip[c] {
			ordered = append(ordered, c)
		}
	}

	pick := pool[0]
	found := false
	for _, c := range ordered {
		if !g.excluded(string(c)) {
			pick, found = c, true
			break
		}
	}
	if !found {
		for _, c := range pool {
			if !g.excluded(string(c)) {
				pick = c
				break
			}
		}
	}

	today[pick] = true
	g.usedTrip[pick] = true
	return pick
}

func (g *generation) budgetSuffix() string {
	if g.budget == nil {
		return ""
	}
	switch {
	case *g.budget <= lowBudgetMax:
		return lowBudgetSuffix
	case *g.budget >= highBudgetMin:
		return highBudgetSuffix
	}
	return ""
}

func (g *generation) mealKeyword(meal Category, cuisine Cuisine) (keyword, note string) {
	price := g.budgetSuffix()

	if meal == Breakfast {
		base, ok := g.firstAllowed(regionBreakfast[g.region])
		if !ok {
			base = defaultBreakfast
		}
		return base + price, ""
	}

	label := "저녁"
	if meal == Lunch {
		label = "점심"
	}
	if dish, ok := g.firstAllowed(regionSeasonal[g.region][g.season]); ok {
		return fmt.Sprintf("%s %s 맛집%s", dish, label, price), fmt.Sprintf("%s 제철 메뉴", g.season)
	}
	return fmt.Sprintf("%s %s 맛집%s", cuisine, label, price), ""
}

func (g *generation) otherKeyword(category Category) string {
	switch category {
	case Cafe:
		return cafeKeyword
	case Sightseeing:
		if kw, ok := sightseeingKeywords[g.theme]; ok {
			return kw
		}
		return defaultSightseeing
	}
	if kw, ok := nightKeywords[g.theme]; ok {
		return kw
	}
	return defaultNight
}

// unique records kw, appending " 추천" (then " 추천 2", " 추천 3", ...) when it
// was already emitted on this trip.
func (g *generation) unique(kw string) string {
	if g.usedKeywords[kw] {
		candidate := kw + repeatSuffix
		for n := 2; g.usedKeywords[candidate]; n++ {
			candidate = fmt.Sprintf("%s%s %d", kw, repeatSuffix, n)
		}
		kw = candidate
	}
	g.usedKeywords[kw] = true
	return kw
}

// Generate builds the slot list using the current time for the season fallback.
func Generate(info TripInfo) []PlanSlot {
	return GenerateAt(info, time.Now())
}

// GenerateAt is Generate with an explicit clock. Output depends only on info and
// the month of now.
func GenerateAt(info TripInfo, now time.Time) []PlanSlot {
	g := newGeneration(info, now)
	days := info.DayCount()

	out := make([]PlanSlot, 0, SlotCount(days))
	for d := 1; d <= days; d++ {
		for _, b := range dayTemplate(d, days) {
			var kw, note string
			if b.category.IsMeal() {
				kw, note = g.mealKeyword(b.category, g.nextCuisine(d))
			} else {
				kw = g.otherKeyword(b.category)
			}
			out = append(out, PlanSlot{
				Day:      d,
				Time:     b.time,
				Region:   g.region,
				Category: b.category,
				Keyword:  g.unique(kw),
				Note:     note,
			})
		}
	}
	return out
}
