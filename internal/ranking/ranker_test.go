package ranking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func place(title, address, x, y, category string) PlaceCandidate {
	return PlaceCandidate{
		Title:    title,
		Address:  address,
		MapX:     x,
		MapY:     y,
		Link:     "https://example.com/" + title,
		Category: category,
	}
}

func titles(ps []PlaceCandidate) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Title
	}
	return out
}

func TestRankPlaces_BlacklistAndThemeBonus(t *testing.T) {
	in := []PlaceCandidate{
		place("스타벅스 강남점", "서울 강남구 테헤란로 1", "0", "0", "카페"),
		place("할머니손맛집", "경북 경주시 황남동 1", "0", "0", "한식"),
	}

	got := RankPlaces(in, "경주", RankOptions{Mode: ModeTheme, ThemeHint: ThemeFoodTour})

	require.Len(t, got, 1)
	assert.Equal(t, "할머니손맛집", got[0].Title)
}

func TestRankPlaces_ThemeBonusOrdersAheadOfPlainMatches(t *testing.T) {
	in := []PlaceCandidate{
		place("경주 한옥카페", "경북 경주시", "0", "0", "카페"),
		place("경주 할머니손맛집", "경북 경주시", "0", "0", "한식"),
	}

	got := RankPlaces(in, "경주", RankOptions{Mode: ModeTheme, ThemeHint: ThemeFoodTour})
	assert.Equal(t, []string{"경주 할머니손맛집", "경주 한옥카페"}, titles(got))

	// half weight still wins a tie-break outside theme mode
	got = RankPlaces(in, "경주", RankOptions{Mode: ModePriceHigh, ThemeHint: ThemeFoodTour})
	assert.Equal(t, []string{"경주 할머니손맛집", "경주 한옥카페"}, titles(got))
}

func TestRankPlaces_TripThemeAlias(t *testing.T) {
	in := []PlaceCandidate{
		place("동네 공원", "", "0", "0", "공원"),
		place("불국사", "경북 경주시", "0", "0", "사찰"),
	}
	got := RankPlaces(in, "", RankOptions{Mode: ModeTheme, ThemeHint: "역사"})
	assert.Equal(t, "불국사", got[0].Title)
}

func TestRankPlaces_EmptyInput(t *testing.T) {
	assert.Empty(t, RankPlaces(nil, "경주", RankOptions{Mode: ModeDistance}))
	assert.Empty(t, RankPlaces([]PlaceCandidate{}, "", RankOptions{}))
}

func TestRankPlaces_AtMostFive(t *testing.T) {
	var in []PlaceCandidate
	for i := 0; i < 12; i++ {
		in = append(in, place(fmt.Sprintf("가게%d", i), "", "0", "0", ""))
	}
	in = append(in, place("맥도날드 역삼점", "", "0", "0", ""))

	for _, mode := range []RankMode{ModeDistance, ModeTheme, ModePriceLow, ModePriceHigh} {
		got := RankPlaces(in, "", RankOptions{Mode: mode})
		assert.Len(t, got, MaxRanked, string(mode))
		assert.NotContains(t, titles(got), "맥도날드 역삼점")
	}

	small := in[:3]
	assert.Len(t, RankPlaces(small, "", RankOptions{}), 3)
}

func TestRankPlaces_StableOnEqualScores(t *testing.T) {
	in := []PlaceCandidate{
		place("다", "", "0", "0", ""),
		place("가", "", "0", "0", ""),
		place("나", "", "0", "0", ""),
	}
	got := RankPlaces(in, "", RankOptions{Mode: ModeTheme})
	assert.Equal(t, []string{"다", "가", "나"}, titles(got))
}

func TestRankPlaces_DistanceMonotonic(t *testing.T) {
	// centroid is the origin
	in := []PlaceCandidate{
		place("C", "", "4", "0", ""),
		place("A", "", "1", "0", ""),
		place("D", "", "-3", "0", ""),
		place("B", "", "-2", "0", ""),
	}
	got := RankPlaces(in, "", RankOptions{Mode: ModeDistance})
	assert.Equal(t, []string{"A", "B", "D", "C"}, titles(got))
}

func TestRankPlaces_DistanceCentroidIncludesFilteredCandidates(t *testing.T) {
	in := []PlaceCandidate{
		place("스타벅스", "", "100", "0", ""),
		place("far", "", "0", "0", ""),
		place("near", "", "50", "0", ""),
	}
	// without the franchise the centroid would be (25, 0) and the two would tie
	got := RankPlaces(in, "", RankOptions{Mode: ModeDistance})
	assert.Equal(t, []string{"near", "far"}, titles(got))
}

func TestRankPlaces_NonNumericCoordinatesCountAsZero(t *testing.T) {
	in := []PlaceCandidate{
		place("far", "", "10", "10", ""),
		place("broken", "", "abc", "", ""),
		place("origin", "", "0", "0", ""),
	}
	got := RankPlaces(in, "", RankOptions{Mode: ModeDistance})
	require.Len(t, got, 3)
	assert.Equal(t, "far", got[2].Title)
}

func TestRankPlaces_PriceModes(t *testing.T) {
	in := []PlaceCandidate{
		place("한우 오마카세", "", "0", "0", "일식"),
		place("시장 국밥집", "", "0", "0", "한식"),
	}
	low := RankPlaces(in, "", RankOptions{Mode: ModePriceLow})
	assert.Equal(t, "시장 국밥집", low[0].Title)

	high := RankPlaces(in, "", RankOptions{Mode: ModePriceHigh})
	assert.Equal(t, "한우 오마카세", high[0].Title)
}

func TestRankPlaces_RegionBoostFromOptions(t *testing.T) {
	in := []PlaceCandidate{
		place("바다횟집", "강원 속초시", "0", "0", ""),
		place("산채식당", "강원 강릉시", "0", "0", ""),
	}
	got := RankPlaces(in, "", RankOptions{RegionName: "강릉"})
	assert.Equal(t, "산채식당", got[0].Title)
}

func TestRankForSearch(t *testing.T) {
	var in []PlaceCandidate
	for i := 0; i < 14; i++ {
		in = append(in, place(fmt.Sprintf("식당%d", i), "부산 해운대구", "0", "0", ""))
	}
	in = append([]PlaceCandidate{place("버거킹 서면점", "부산", "0", "0", "")}, in...)
	in = append(in, place("해운대 시장", "부산 해운대구", "0", "0", "시장"))

	got := RankForSearch(in, "부산", ThemeFoodTour)
	require.Len(t, got, MaxSearchRanked)
	assert.Equal(t, "해운대 시장", got[0].Title)
	assert.NotContains(t, titles(got), "버거킹 서면점")
	assert.Equal(t, "식당0", got[1].Title)
}

func TestParseRankMode(t *testing.T) {
	m, ok := ParseRankMode("거리순")
	assert.True(t, ok)
	assert.Equal(t, ModeDistance, m)

	m, ok = ParseRankMode(" PRICE_HIGH ")
	assert.True(t, ok)
	assert.Equal(t, ModePriceHigh, m)

	_, ok = ParseRankMode("rating")
	assert.False(t, ok)
}
