// Package ranking filters franchise outlets out of local-search candidates and
// orders the rest by theme, price and distance hints.
package ranking

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// PlaceCandidate is one local-search result. MapX and MapY are numbers carried as
// strings, as the search provider returns them.
type PlaceCandidate struct {
	Title    string `json:"title"`
	Address  string `json:"address"`
	MapX     string `json:"mapx"`
	MapY     string `json:"mapy"`
	Link     string `json:"link"`
	Category string `json:"category"`
}

type RankMode string

const (
	ModeDistance  RankMode = "distance"
	ModeTheme     RankMode = "theme"
	ModePriceLow  RankMode = "price_low"
	ModePriceHigh RankMode = "price_high"
)

// ParseRankMode maps wire values and the UI button labels to a RankMode.
func ParseRankMode(s string) (RankMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "distance", "거리순":
		return ModeDistance, true
	case "theme", "테마순":
		return ModeTheme, true
	case "price_low", "낮은 가격순":
		return ModePriceLow, true
	case "price_high", "높은 가격순":
		return ModePriceHigh, true
	}
	return "", false
}

type RankOptions struct {
	RegionName string
	ThemeHint  string
	Mode       RankMode
}

// Score weights. None of them has been calibrated against user feedback yet.
const (
	BaseScore            = 10.0
	DistanceWeight       = 50.0
	ThemeWeight          = 40.0
	SecondaryThemeFactor = 0.5
	PriceWeight          = 30.0
	RegionBoost          = 5.0

	MaxRanked       = 5
	MaxSearchRanked = 10
)

// Theme keyword sets, keyed by canonical hint.
const (
	ThemeHeritage = "역사·유적"
	ThemeNature   = "자연·힐링"
	ThemeActivity = "액티비티"
	ThemeFoodTour = "맛집투어"
)

var themeKeywords = map[string][]string{
	ThemeHeritage: {"사찰", "유적", "고분", "성곽", "서원", "향교", "역사", "박물관"},
	ThemeNature:   {"공원", "정원", "숲", "산책", "전망대", "해변", "호수", "온천", "계곡"},
	ThemeActivity: {"서핑", "카약", "승마", "패러글라이딩", "짚라인", "클라이밍", "레저"},
	ThemeFoodTour: {"맛집", "시장", "먹거리", "분식", "노포", "현지"},
}

// themeAliases maps trip themes and English names onto the keyword sets.
var themeAliases = map[string]string{
	"역사":       ThemeHeritage,
	"history":  ThemeHeritage,
	"자연":       ThemeNature,
	"nature":   ThemeNature,
	"activity": ThemeActivity,
	"맛집":       ThemeFoodTour,
	"food":     ThemeFoodTour,
}

var (
	cheapHints     = []string{"분식", "국밥", "백반", "시장", "포장마차", "김밥", "칼국수", "버거", "치킨"}
	expensiveHints = []string{"파인다이닝", "오마카세", "코스요리", "스테이크", "와인바", "루프탑", "프렌치", "코스"}
)

type scored struct {
	place PlaceCandidate
	score float64
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// coord parses a coordinate string; anything non-finite counts as zero.
func coord(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func searchText(p PlaceCandidate) string {
	return p.Title + " " + p.Address + " " + p.Category
}

func themeKeywordsFor(hint string) []string {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return nil
	}
	if kws, ok := themeKeywords[hint]; ok {
		return kws
	}
	if key, ok := themeAliases[strings.ToLower(hint)]; ok {
		return themeKeywords[key]
	}
	return nil
}

func themeScore(p PlaceCandidate, hint string) float64 {
	kws := themeKeywordsFor(hint)
	if len(kws) == 0 {
		return 0
	}
	if containsAny(searchText(p), kws) {
		return ThemeWeight
	}
	return 0
}

func priceScore(p PlaceCandidate, mode RankMode) float64 {
	switch mode {
	case ModePriceLow:
		if containsAny(searchText(p), cheapHints) {
			return PriceWeight
		}
	case ModePriceHigh:
		if containsAny(searchText(p), expensiveHints) {
			return PriceWeight
		}
	}
	return 0
}

func regionScore(p PlaceCandidate, regionName string) float64 {
	if regionName != "" && strings.Contains(p.Address+" "+p.Title, regionName) {
		return RegionBoost
	}
	return 0
}

type centroid struct {
	x, y float64
	ok   bool
}

func centroidOf(items []PlaceCandidate) centroid {
	if len(items) == 0 {
		return centroid{}
	}
	var sx, sy float64
	for _, it := range items {
		sx += coord(it.MapX)
		sy += coord(it.MapY)
	}
	n := float64(len(items))
	return centroid{x: sx / n, y: sy / n, ok: true}
}

// distanceScore is closer-is-higher, bounded to [0, DistanceWeight].
func distanceScore(c centroid, p PlaceCandidate) float64 {
	if !c.ok {
		return 0
	}
	dx := coord(p.MapX) - c.x
	dy := coord(p.MapY) - c.y
	s := DistanceWeight / (math.Sqrt(dx*dx+dy*dy) + 1)
	return math.Max(0, math.Min(DistanceWeight, s))
}

// FilterFranchises drops candidates whose title contains a known brand.
func FilterFranchises(candidates []PlaceCandidate) []PlaceCandidate {
	out := make([]PlaceCandidate, 0, len(candidates))
	for _, c := range candidates {
		if !MatchesBrand(c.Title) {
			out = append(out, c)
		}
	}
	return out
}

func sortAndCut(items []scored, limit int) []PlaceCandidate {
	slices.SortStableFunc(items, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return 0
	})
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]PlaceCandidate, len(items))
	for i, it := range items {
		out[i] = it.place
	}
	return out
}

// RankPlaces filters franchise outlets, scores the remainder and returns at most
// MaxRanked candidates, highest score first. Ties keep input order. regionName
// falls back to opts.RegionName when empty.
func RankPlaces(candidates []PlaceCandidate, regionName string, opts RankOptions) []PlaceCandidate {
	mode := opts.Mode
	if mode == "" {
		mode = ModeTheme
	}
	if regionName == "" {
		regionName = opts.RegionName
	}

	// centroid over every candidate, franchises included
	var center centroid
	if mode == ModeDistance {
		center = centroidOf(candidates)
	}

	filtered := FilterFranchises(candidates)
	items := make([]scored, 0, len(filtered))
	for _, p := range filtered {
		s := BaseScore
		if mode == ModeDistance {
			s += distanceScore(center, p)
		}
		if mode == ModeTheme {
			s += themeScore(p, opts.ThemeHint)
		} else {
			s += themeScore(p, opts.ThemeHint) * SecondaryThemeFactor
		}
		s += priceScore(p, mode)
		s += regionScore(p, regionName)
		items = append(items, scored{place: p, score: s})
	}

	return sortAndCut(items, MaxRanked)
}

// RankForSearch is the lighter pass used behind the place-search API: franchise
// filter, region boost and a half-weight theme signal, capped at MaxSearchRanked.
func RankForSearch(candidates []PlaceCandidate, regionName, themeHint string) []PlaceCandidate {
	filtered := FilterFranchises(candidates)
	items := make([]scored, 0, len(filtered))
	for _, p := range filtered {
		s := BaseScore + regionScore(p, regionName) + themeScore(p, themeHint)*SecondaryThemeFactor
		items = append(items, scored{place: p, score: s})
	}
	return sortAndCut(items, MaxSearchRanked)
}
