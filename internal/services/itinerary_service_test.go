package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"tripmate/internal/models/request_models"
	"tripmate/internal/ranking"
	"tripmate/internal/slots"
	"tripmate/pkg/utils"
)

type fakePlaceService struct {
	reqs   []request_models.PlaceSearchRequest
	search func(req request_models.PlaceSearchRequest) ([]ranking.PlaceCandidate, error)
}

func (f *fakePlaceService) Search(_ context.Context, req request_models.PlaceSearchRequest) ([]ranking.PlaceCandidate, error) {
	f.reqs = append(f.reqs, req)
	return f.search(req)
}

func place(title, x, y string) ranking.PlaceCandidate {
	return ranking.PlaceCandidate{Title: title, Address: "경북 경주시", MapX: x, MapY: y, Link: "http://" + title}
}

func TestItineraryBuild_FromTripInfo(t *testing.T) {
	places := &fakePlaceService{search: func(req request_models.PlaceSearchRequest) ([]ranking.PlaceCandidate, error) {
		return []ranking.PlaceCandidate{place("황남동 한옥카페", "100", "200"), place("대릉원 돌담길", "110", "210")}, nil
	}}
	svc := NewItineraryService(newTestPlanService(&fakeExtractor{}), places, zap.NewNop())

	days := 1
	res, err := svc.Build(context.Background(), request_models.ItineraryRequest{
		Message:  "ignored",
		TripInfo: &slots.TripInfo{Region: "경주시", Days: &days, AvoidFoods: []string{"땅콩"}},
	})
	require.NoError(t, err)

	n := slots.SlotCount(1)
	require.Len(t, res.Items, n)
	require.Len(t, places.reqs, n)
	assert.Equal(t, fmt.Sprintf("%d개의 일정을 생성했어요", n), res.Summary)
	require.Len(t, res.Days, 1)
	assert.Len(t, res.Days[0].Items, n)

	first := places.reqs[0]
	assert.True(t, strings.HasPrefix(first.Query, "경주 "), first.Query)
	assert.Equal(t, "경주", first.Region)
	assert.Equal(t, []string{"땅콩"}, first.AvoidFoods)
	assert.Nil(t, first.Anchor, "no anchor before the first pick")

	second := places.reqs[1]
	require.NotNil(t, second.Anchor)
	assert.Equal(t, ranking.Point{X: 100, Y: 200}, *second.Anchor)

	// the first pick is reused only once every title has been taken
	assert.Equal(t, "황남동 한옥카페", res.Items[0].PlaceName)
	assert.Equal(t, "대릉원 돌담길", res.Items[1].PlaceName)
	assert.Equal(t, "황남동 한옥카페", res.Items[2].PlaceName)

	it := res.Items[0]
	assert.Equal(t, fmt.Sprintf("1-%s-황남동 한옥카페", it.Time), it.ID)
	assert.Equal(t, "경주", it.Region)
	assert.Equal(t, "http://황남동 한옥카페", it.Link)
}

func TestItineraryBuild_QuerySuffixes(t *testing.T) {
	places := &fakePlaceService{search: func(req request_models.PlaceSearchRequest) ([]ranking.PlaceCandidate, error) {
		return []ranking.PlaceCandidate{place(req.Query, "0", "0")}, nil
	}}
	svc := NewItineraryService(newTestPlanService(&fakeExtractor{}), places, zap.NewNop())

	days := 2
	res, err := svc.Build(context.Background(), request_models.ItineraryRequest{
		TripInfo: &slots.TripInfo{Region: "전주", Days: &days},
	})
	require.NoError(t, err)

	for i, req := range places.reqs {
		cat := slots.Category(req.Category)
		switch {
		case cat.IsMeal():
			assert.True(t, strings.HasSuffix(req.Query, " 맛집"), req.Query)
		case cat == slots.Cafe:
			assert.True(t, strings.HasSuffix(req.Query, " 카페"), req.Query)
		default:
			assert.True(t, strings.HasSuffix(req.Query, " 관광"), req.Query)
		}
		assert.Nil(t, req.Anchor, "zero coordinates never become an anchor")
		assert.Equal(t, res.Items[i].Category, cat)
	}
}

func TestItineraryBuild_BackupQueryAndSkips(t *testing.T) {
	places := &fakePlaceService{search: func(req request_models.PlaceSearchRequest) ([]ranking.PlaceCandidate, error) {
		if req.Query == "경주 맛집" {
			return []ranking.PlaceCandidate{place("교동 쌈밥", "1", "1")}, nil
		}
		return nil, nil
	}}
	svc := NewItineraryService(newTestPlanService(&fakeExtractor{}), places, zap.NewNop())

	days := 1
	res, err := svc.Build(context.Background(), request_models.ItineraryRequest{
		TripInfo: &slots.TripInfo{Region: "경주", Days: &days},
	})
	require.NoError(t, err)

	meals := 0
	var backups []string
	for _, req := range places.reqs {
		if slots.Category(req.Category).IsMeal() {
			meals++
		}
		if !strings.Contains(strings.TrimPrefix(req.Query, "경주 "), " ") {
			backups = append(backups, req.Query)
		}
	}
	assert.Contains(t, backups, "경주 명소")
	assert.Contains(t, backups, "경주 카페")
	assert.Len(t, res.Items, meals, "only meal slots resolve")
	for _, it := range res.Items {
		assert.True(t, it.Category.IsMeal())
		assert.Equal(t, "교동 쌈밥", it.PlaceName)
	}
}

func TestItineraryBuild_FromMessage(t *testing.T) {
	places := &fakePlaceService{search: func(req request_models.PlaceSearchRequest) ([]ranking.PlaceCandidate, error) {
		return []ranking.PlaceCandidate{place("성산일출봉", "5", "5")}, nil
	}}
	svc := NewItineraryService(newTestPlanService(&fakeExtractor{reply: `{"region":"제주","days":1}`}), places, zap.NewNop())

	res, err := svc.Build(context.Background(), request_models.ItineraryRequest{Message: "제주 당일치기"})
	require.NoError(t, err)
	assert.Equal(t, "제주", res.Meta.TripInfo.Region)
	assert.Len(t, res.Items, slots.SlotCount(1))
}

func TestItineraryBuild_Errors(t *testing.T) {
	places := &fakePlaceService{search: func(request_models.PlaceSearchRequest) ([]ranking.PlaceCandidate, error) {
		return nil, utils.ErrSearchProviderUnavailable
	}}
	svc := NewItineraryService(newTestPlanService(&fakeExtractor{}), places, zap.NewNop())

	_, err := svc.Build(context.Background(), request_models.ItineraryRequest{Message: "  "})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.Build(context.Background(), request_models.ItineraryRequest{TripInfo: &slots.TripInfo{Region: "경주"}})
	assert.ErrorIs(t, err, utils.ErrSearchProviderUnavailable)
	assert.Len(t, places.reqs, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Build(ctx, request_models.ItineraryRequest{TripInfo: &slots.TripInfo{Region: "경주"}})
	assert.ErrorIs(t, err, context.Canceled)
}
