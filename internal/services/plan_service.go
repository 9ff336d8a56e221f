package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"tripmate/internal/models/response_models"
	"tripmate/internal/slots"
	"tripmate/pkg/metrics"
	"tripmate/pkg/utils"
)

const fallbackRegion = "서울"

type PlanServiceInterface interface {
	// ExtractTrip asks the LLM for structured trip info. Unparseable replies fall
	// back to a trip in 서울 instead of failing.
	ExtractTrip(ctx context.Context, message string) (slots.TripInfo, error)
	PlanFromMessage(ctx context.Context, message string) (*response_models.PlanResponse, error)
	PlanFromTrip(info slots.TripInfo) *response_models.PlanResponse
}

type PlanService struct {
	extractor utils.TripExtractorInterface
	log       *zap.Logger
	now       func() time.Time
}

func NewPlanService(extractor utils.TripExtractorInterface, log *zap.Logger) PlanServiceInterface {
	return &PlanService{
		extractor: extractor,
		log:       log,
		now:       utils.NowKST,
	}
}

func (p *PlanService) ExtractTrip(ctx context.Context, message string) (slots.TripInfo, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return slots.TripInfo{}, fmt.Errorf("%w: message is required", utils.ErrInvalidInput)
	}

	reply, err := p.extractor.ExtractTrip(ctx, message)
	if err != nil {
		metrics.TripExtractionsTotal.WithLabelValues("error").Inc()
		if errors.Is(err, utils.ErrTripExtractionFailed) {
			return slots.TripInfo{}, err
		}
		return slots.TripInfo{}, fmt.Errorf("%w: %v", utils.ErrTripExtractionFailed, err)
	}

	info, ok := decodeTripInfo(reply)
	if !ok {
		metrics.TripExtractionsTotal.WithLabelValues("fallback").Inc()
		p.log.Info("Trip extraction fell back to default region", zap.String("reply", reply))
		return slots.TripInfo{Region: fallbackRegion}, nil
	}

	metrics.TripExtractionsTotal.WithLabelValues("ok").Inc()
	return info.Normalize(), nil
}

func (p *PlanService) PlanFromMessage(ctx context.Context, message string) (*response_models.PlanResponse, error) {
	info, err := p.ExtractTrip(ctx, message)
	if err != nil {
		return nil, err
	}
	return p.PlanFromTrip(info), nil
}

func (p *PlanService) PlanFromTrip(info slots.TripInfo) *response_models.PlanResponse {
	info = info.Normalize()
	now := p.now()

	planSlots := slots.GenerateAt(info, now)
	metrics.SlotsGeneratedTotal.Add(float64(len(planSlots)))

	avoid := info.AvoidFoods
	if avoid == nil {
		avoid = []string{}
	}
	return &response_models.PlanResponse{
		Slots: planSlots,
		Meta: response_models.PlanMeta{
			Season:     slots.ResolveSeason(info, now),
			AvoidFoods: avoid,
			TripInfo:   info,
		},
	}
}

// decodeTripInfo reads the model reply field by field. Only region is required;
// an optional field of the wrong shape is coerced when possible and dropped
// otherwise.
func decodeTripInfo(reply string) (slots.TripInfo, bool) {
	var fields map[string]json.RawMessage
	if !utils.ExtractJSONObject(reply, &fields) {
		return slots.TripInfo{}, false
	}

	info := slots.TripInfo{Region: strings.TrimSpace(lenientString(fields["region"]))}
	if info.Region == "" {
		return slots.TripInfo{}, false
	}
	info.Nights = lenientInt(fields["nights"])
	info.Days = lenientInt(fields["days"])
	info.BudgetKRW = lenientInt(fields["budgetKRW"])
	info.Companions = lenientString(fields["companions"])
	info.Theme = slots.Theme(lenientString(fields["theme"]))
	info.SeasonHint = slots.Season(lenientString(fields["seasonHint"]))
	info.AvoidFoods = lenientStrings(fields["avoidFoods"])
	return info, true
}

func lenientString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// lenientInt accepts JSON numbers (fractions truncated) and numeric strings.
func lenientInt(raw json.RawMessage) *int {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return nil
		}
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return nil
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return nil
	}
	n := int(f)
	return &n
}

// lenientStrings accepts an array (non-string items skipped) or one
// comma-separated string.
func lenientStrings(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if json.Unmarshal(raw, &items) == nil {
		out := make([]string, 0, len(items))
		for _, it := range items {
			if s := strings.TrimSpace(lenientString(it)); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	var out []string
	for _, part := range strings.Split(lenientString(raw), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
