package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"tripmate/internal/models/request_models"
	"tripmate/internal/models/response_models"
	"tripmate/internal/ranking"
	"tripmate/internal/slots"
	"tripmate/pkg/utils"
)

type ItineraryServiceInterface interface {
	// Build plans the trip and resolves every slot to a place, in slot order.
	Build(ctx context.Context, req request_models.ItineraryRequest) (*response_models.ItineraryResponse, error)
}

type ItineraryService struct {
	planService  PlanServiceInterface
	placeService PlaceServiceInterface
	log          *zap.Logger
}

func NewItineraryService(planService PlanServiceInterface, placeService PlaceServiceInterface, log *zap.Logger) ItineraryServiceInterface {
	return &ItineraryService{
		planService:  planService,
		placeService: placeService,
		log:          log,
	}
}

// querySuffix is appended to the slot keyword for the primary search.
func querySuffix(c slots.Category) string {
	switch {
	case c.IsMeal():
		return " 맛집"
	case c == slots.Cafe:
		return " 카페"
	}
	return " 관광"
}

// backupSuffix is appended to the bare region when the primary search is empty.
func backupSuffix(c slots.Category) string {
	switch {
	case c.IsMeal():
		return " 맛집"
	case c == slots.Cafe:
		return " 카페"
	}
	return " 명소"
}

func (s *ItineraryService) Build(ctx context.Context, req request_models.ItineraryRequest) (*response_models.ItineraryResponse, error) {
	var plan *response_models.PlanResponse
	switch {
	case req.TripInfo != nil:
		plan = s.planService.PlanFromTrip(*req.TripInfo)
	case strings.TrimSpace(req.Message) != "":
		var err error
		if plan, err = s.planService.PlanFromMessage(ctx, req.Message); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: message or tripInfo is required", utils.ErrInvalidInput)
	}

	items := make([]response_models.TimelineItem, 0, len(plan.Slots))
	usedTitles := make(map[string]bool)
	anchors := make(map[int]*ranking.Point)

	for _, slot := range plan.Slots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		search := request_models.PlaceSearchRequest{
			Query:      fmt.Sprintf("%s %s%s", slot.Region, slot.Keyword, querySuffix(slot.Category)),
			Category:   string(slot.Category),
			Region:     slot.Region,
			AvoidFoods: plan.Meta.AvoidFoods,
			Anchor:     anchors[slot.Day],
		}
		places, err := s.placeService.Search(ctx, search)
		if err != nil {
			return nil, err
		}
		if len(places) == 0 {
			search.Query = slot.Region + backupSuffix(slot.Category)
			if places, err = s.placeService.Search(ctx, search); err != nil {
				return nil, err
			}
		}
		if len(places) == 0 {
			s.log.Debug("No place for slot", zap.Int("day", slot.Day), zap.String("time", slot.Time), zap.String("keyword", slot.Keyword))
			continue
		}

		chosen := places[0]
		for _, p := range places {
			if !usedTitles[p.Title] {
				chosen = p
				break
			}
		}
		usedTitles[chosen.Title] = true

		if pt := ranking.PointOf(chosen); !pt.IsZero() {
			anchors[slot.Day] = &pt
		}

		items = append(items, response_models.TimelineItem{
			ID:        fmt.Sprintf("%d-%s-%s", slot.Day, slot.Time, chosen.Title),
			Day:       slot.Day,
			Time:      slot.Time,
			Category:  slot.Category,
			Region:    slot.Region,
			PlaceName: chosen.Title,
			Address:   chosen.Address,
			MapX:      chosen.MapX,
			MapY:      chosen.MapY,
			Link:      chosen.Link,
			Note:      slot.Note,
		})
	}

	return &response_models.ItineraryResponse{
		Items:   items,
		Days:    response_models.GroupByDay(items),
		Summary: fmt.Sprintf("%d개의 일정을 생성했어요", len(items)),
		Meta:    plan.Meta,
	}, nil
}
