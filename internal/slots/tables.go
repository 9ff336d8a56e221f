package slots

type block struct {
	time     string
	category Category
}

var fullDay = []block{
	{"09:00", Breakfast},
	{"11:00", Sightseeing},
	{"13:00", Lunch},
	{"15:00", Sightseeing},
	{"18:00", Dinner},
	{"20:00", NightActivity},
}

type Cuisine string

const (
	Korean   Cuisine = "한식"
	Seafood  Cuisine = "해산물"
	Japanese Cuisine = "일식"
	Chinese  Cuisine = "중식"
	Western  Cuisine = "양식"
	Snack    Cuisine = "분식"
)

var baseCuisines = []Cuisine{Korean, Seafood, Japanese, Chinese, Western, Snack}

// cuisinePools orders cuisines by preference for each theme.
var cuisinePools = map[Theme][]Cuisine{
	ThemeFood:     {Korean, Seafood, Japanese, Chinese, Western, Snack},
	ThemeHistory:  {Korean, Seafood, Snack, Chinese, Japanese, Western},
	ThemeNature:   {Seafood, Korean, Western, Snack, Japanese, Chinese},
	ThemeCafe:     {Korean, Western, Japanese, Chinese, Seafood, Snack},
	ThemeActivity: {Korean, Snack, Japanese, Chinese, Western, Seafood},
}

func cuisinePool(theme Theme) []Cuisine {
	if pool, ok := cuisinePools[theme]; ok {
		return pool
	}
	return baseCuisines
}

const defaultBreakfast = "한식 아침식사"

var regionBreakfast = map[string][]string{
	"전주": {"콩나물국밥", "한식 아침식사"},
	"부산": {"돼지국밥", "해장국", "한식 아침식사"},
	"경주": {"한식 아침식사", "국밥", "해장국"},
	"강릉": {"순두부 백반", "한식 아침식사"},
	"제주": {"고기국수", "한식 아침식사"},
}

var regionSeasonal = map[string]map[Season][]string{
	"경주": {
		Spring: {"봄나물 한정식"},
		Summer: {"냉면", "물회"},
		Fall:   {"버섯 전골"},
		Winter: {"국밥", "수육국밥"},
	},
	"부산": {
		Summer: {"물회", "회센터"},
		Winter: {"돼지국밥"},
	},
	"강릉": {
		Summer: {"물회", "생선구이"},
		Winter: {"초당순두부"},
	},
	"제주": {
		Summer: {"갈치회", "해산물"},
		Winter: {"고기국수", "흑돼지"},
	},
}

// Budget thresholds in KRW for the price suffix.
const (
	lowBudgetMax  = 200_000
	highBudgetMin = 700_000

	lowBudgetSuffix  = " 가성비"
	highBudgetSuffix = " 고급"

	repeatSuffix = " 추천"
)

var sightseeingKeywords = map[Theme]string{
	ThemeHistory:  "유적지 박물관 성곽 사적지",
	ThemeNature:   "자연 명소 전망 포토스팟",
	ThemeActivity: "체험 액티비티 체험장",
	ThemeCafe:     "포토 스팟",
}

var nightKeywords = map[Theme]string{
	ThemeFood:    "야시장 포장마차",
	ThemeHistory: "야간 명소",
}

const (
	defaultSightseeing = "명소"
	defaultNight       = "야경 명소"
	cafeKeyword        = "디저트 카페"
	defaultRegion      = "서울"
)

// adminSuffixes are stripped from the end of a region name, longest first.
var adminSuffixes = []string{"특별자치도", "특별자치시", "특별시", "광역시", "시", "군", "구"}
