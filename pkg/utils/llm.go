package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// TripExtractorInterface turns a free-text trip request into the raw model reply.
// The reply is expected to carry a single JSON object somewhere in its text.
type TripExtractorInterface interface {
	ExtractTrip(ctx context.Context, message string) (string, error)
}

const TripExtractionSystemPrompt = `
당신의 유일한 역할은 "사용자 여행 요구를 구조화"하는 것입니다.
아래 스키마의 단일 JSON 객체만 출력하세요:

- region: 필수. 도시/지역명(예: "경주").
- nights: 선택. "N박"이면 N.
- days: 선택. "N일"이면 N. (없으면 nights+1 로)
- companions: 선택. (예: "친구", "가족"...)
- theme: 선택. ["역사","맛집","자연","액티비티","카페"] 중 1개.
- budgetKRW: 선택. "50만원" -> 500000 처럼 원 단위 정수.
- seasonHint: 선택. ["봄","여름","가을","겨울"] 중 1개. (사용자가 계절/월을 말했을 때만)
- avoidFoods: 선택. 사용자가 "알레르기/비선호"라고 말한 음식 키워드 배열. (예: ["갑각류","땅콩","매운"])

금지:
- 장소/상호/호텔/카페 이름 생성 금지.
- 배열이 아닌 "단일 JSON"만.
`

func tripUserMessage(message string) string {
	return fmt.Sprintf("사용자 입력: \"\"\"%s\"\"\"", message)
}

// ExtractJSONObject cuts the text between the first "{" and the last "}" and
// decodes it into out. It reports false when there is no such span or it does
// not decode.
func ExtractJSONObject(text string, out any) bool {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return false
	}
	return json.Unmarshal([]byte(text[start:end+1]), out) == nil
}
