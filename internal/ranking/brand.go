package ranking

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultFranchiseThreshold is the score at which a name is treated as a chain outlet.
const DefaultFranchiseThreshold = 3

// franchiseBrands covers cafe/dessert, burger/chicken/pizza and Korean chain brands,
// in Hangul and Latin spellings. Entries match as substrings of the normalized
// name, so short tokens (toms, 신전, 공차) also hit independent places whose names
// contain them, e.g. "Customs Coffee". Dropping such a place is accepted over
// letting a chain outlet through.
var franchiseBrands = []string{
	// cafe / dessert
	"스타벅스", "starbucks", "이디야", "ediya", "투썸", "twosome", "파스쿠찌", "빽다방", "paik",
	"던킨", "dunkin", "배스킨라빈스", "베스킨라빈스", "baskin", "파리바게뜨", "paris baguette",
	"뚜레쥬르", "tlj", "설빙", "공차", "gongcha", "탐앤탐스", "toms", "할리스", "hollys",
	"엔제리너스", "엔젤리너스", "angel-in-us",
	// burger / chicken / pizza
	"맥도날드", "mcdonald", "버거킹", "lotteria", "롯데리아", "kfc", "맘스터치", "mom's touch",
	"쉐이크쉑", "shake shack", "써브웨이", "subway", "교촌", "bhc", "네네치킨", "굽네", "처갓집",
	"푸라닭", "호식이두마리", "도미노", "domino", "피자헛", "pizza hut", "파파존스", "papa john",
	// Korean chains
	"본죽", "본도시락", "한솥", "신전", "죠스떡볶이", "죠스", "역전할머니맥주", "경성주막", "두찜", "육수당",
}

// normalizedBrands holds franchiseBrands run through normalizeName once at init.
var normalizedBrands = func() []string {
	out := make([]string, 0, len(franchiseBrands))
	for _, b := range franchiseBrands {
		if n := normalizeName(b); n != "" {
			out = append(out, n)
		}
	}
	return out
}()

var branchPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)[가-힣a-z0-9]{1,10}점$`),
	regexp.MustCompile(`(?i)[0-9]+호점$`),
	regexp.MustCompile(`(?i)(역|터미널|센터|몰|타워)[가-힣]*점$`),
	regexp.MustCompile(`(?i)[가-힣a-z0-9]{1,10}(본점|본사)`),
}

var (
	genericTradePattern  = regexp.MustCompile(`(?i)치킨|피자|버거|도시락|분식|카페|커피`)
	branchSuffixPattern  = regexp.MustCompile(`(?i)(점|호점)$`)
	capitalizedWordRegex = regexp.MustCompile(`[A-Z]{2,}`)
)

// normalizeName folds compatibility forms (full-width Latin, decomposed Hangul),
// lower-cases and keeps letters and digits only.
func normalizeName(s string) string {
	s = strings.ToLower(norm.NFKC.String(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MatchesBrand reports whether the normalized name contains a known franchise brand.
func MatchesBrand(placeName string) bool {
	n := normalizeName(placeName)
	if n == "" {
		return false
	}
	for _, brand := range normalizedBrands {
		if strings.Contains(n, brand) {
			return true
		}
	}
	return false
}

// FranchiseScore grows with the likelihood that placeName is a chain outlet.
//
//	+3 known brand keyword
//	+2 branch suffix such as 강남점, 3호점, 서울역점, 본점
//	+1 generic trade word combined with a branch suffix (○○치킨 강남점)
//	+1 two or more ALL-CAPS words
func FranchiseScore(placeName string) int {
	raw := strings.TrimSpace(placeName)
	score := 0

	if MatchesBrand(raw) {
		score += 3
	}

	for _, re := range branchPatterns {
		if re.MatchString(raw) {
			score += 2
			break
		}
	}

	if genericTradePattern.MatchString(raw) && branchSuffixPattern.MatchString(raw) {
		score++
	}

	if len(capitalizedWordRegex.FindAllString(raw, -1)) >= 2 {
		score++
	}

	return score
}

// IsFranchise applies threshold to FranchiseScore. A threshold <= 0 selects
// DefaultFranchiseThreshold.
func IsFranchise(placeName string, threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultFranchiseThreshold
	}
	return FranchiseScore(placeName) >= threshold
}
