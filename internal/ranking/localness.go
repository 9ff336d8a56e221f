package ranking

import "strings"

// localKeywords are city names and words associated with traditional or
// neighbourhood establishments.
var localKeywords = []string{
	"시장", "전통", "노포", "토박이", "로컬", "향토", "가맥", "골목",
	"분식집", "식당", "포장마차", "재래시장", "국밥", "순대국", "칼국수",
	"비빔밥", "막국수", "회센터", "횟집", "정식", "한정식", "오미자", "황태", "메밀",
	"속초", "강릉", "경주", "전주", "여수", "통영", "부산", "춘천", "제주", "인천",
	"광주", "대구", "대전", "청주", "안동", "공주", "포항", "군산",
}

const (
	localKeywordBonus   = 2
	localRegionBonus    = 3
	franchisePenalty    = 5
	independentBonus    = 1
	independentMaxScore = 1
)

// LocalnessScore rewards names with regional or traditional character and
// penalises likely franchise outlets. It is not part of the RankPlaces formula.
func LocalnessScore(placeName, regionName string) int {
	name := strings.ToLower(placeName)
	score := 0

	for _, k := range localKeywords {
		if strings.Contains(name, k) {
			score += localKeywordBonus
		}
	}

	if regionName != "" && strings.Contains(name, strings.ToLower(regionName)) {
		score += localRegionBonus
	}

	if IsFranchise(placeName, DefaultFranchiseThreshold) {
		score -= franchisePenalty
	} else if FranchiseScore(placeName) <= independentMaxScore {
		score += independentBonus
	}

	return score
}
