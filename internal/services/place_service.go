package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"tripmate/internal/models/request_models"
	"tripmate/internal/ranking"
	"tripmate/pkg/metrics"
	"tripmate/pkg/utils"
)

const (
	primaryDisplay    = 15
	lastResortDisplay = 20
	minPrimaryResults = 3
	backupStopAt      = 10
	maxPlaceResults   = 10
)

type PlaceServiceInterface interface {
	Search(ctx context.Context, req request_models.PlaceSearchRequest) ([]ranking.PlaceCandidate, error)
}

type PlaceService struct {
	client LocalSearchClient
	log    *zap.Logger
}

func NewPlaceService(client LocalSearchClient, log *zap.Logger) PlaceServiceInterface {
	return &PlaceService{client: client, log: log}
}

var htmlTagRegex = regexp.MustCompile(`<[^>]+>`)

func stripHTML(s string) string {
	return html.UnescapeString(htmlTagRegex.ReplaceAllString(s, ""))
}

// backupQueries is the category ladder tried when the primary query is thin.
// The bare region always comes last.
func backupQueries(region, category string) []string {
	base := strings.TrimSpace(region)
	var suffixes []string
	switch {
	case strings.Contains(category, "식사"):
		suffixes = []string{"현지 맛집", "인기 맛집", "베스트 맛집", "한식 맛집", "해산물 맛집", "음식점"}
	case strings.Contains(category, "카페"):
		suffixes = []string{"디저트 카페", "분위기 좋은 카페", "핫플 카페", "베이커리"}
	default:
		suffixes = []string{"관광 명소", "랜드마크", "볼거리", "여행지"}
	}

	out := make([]string, 0, len(suffixes)+1)
	seen := make(map[string]bool)
	add := func(q string) {
		q = strings.TrimSpace(q)
		if q == "" || seen[q] {
			return
		}
		seen[q] = true
		out = append(out, q)
	}
	for _, s := range suffixes {
		add(base + " " + s)
	}
	add(base)
	return out
}

func toCandidate(it NaverLocalItem) ranking.PlaceCandidate {
	addr := it.RoadAddress
	if addr == "" {
		addr = it.Address
	}
	return ranking.PlaceCandidate{
		Title:    stripHTML(it.Title),
		Address:  addr,
		MapX:     it.MapX,
		MapY:     it.MapY,
		Link:     it.Link,
		Category: it.Category,
	}
}

func avoided(p ranking.PlaceCandidate, avoid []string) bool {
	low := strings.ToLower(p.Title + " " + p.Address + " " + p.Category)
	for _, a := range avoid {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" && strings.Contains(low, a) {
			return true
		}
	}
	return false
}

// searchRun tracks provider outcomes of one Search call.
type searchRun struct {
	s         *PlaceService
	attempts  int
	failures  int
	lastError error
}

func (r *searchRun) query(ctx context.Context, stage, q string, display int) []NaverLocalItem {
	r.attempts++
	items, err := r.s.client.SearchLocal(ctx, q, display)
	if err != nil {
		r.failures++
		r.lastError = err
		metrics.SearchQueriesTotal.WithLabelValues(stage, "error").Inc()
		r.s.log.Warn("Local search failed", zap.String("stage", stage), zap.String("query", q), zap.Error(err))
		return nil
	}
	outcome := "ok"
	if len(items) == 0 {
		outcome = "empty"
	}
	metrics.SearchQueriesTotal.WithLabelValues(stage, outcome).Inc()
	return items
}

func (r *searchRun) allFailed() bool {
	return r.attempts > 0 && r.failures == r.attempts
}

// Search resolves a query to at most ten places: primary query, backup ladder
// when fewer than three results, avoid-food filter, ranking, anchor reorder and
// a last bare-region query when nothing survives.
func (s *PlaceService) Search(ctx context.Context, req request_models.PlaceSearchRequest) ([]ranking.PlaceCandidate, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return []ranking.PlaceCandidate{}, nil
	}
	region := strings.TrimSpace(req.Region)
	if region == "" {
		region = strings.Fields(query)[0]
	}

	run := &searchRun{s: s}
	collected := make([]NaverLocalItem, 0, primaryDisplay)
	seen := make(map[string]bool)
	collect := func(items []NaverLocalItem) {
		for _, it := range items {
			key := it.Link + "|" + stripHTML(it.Title)
			if seen[key] {
				continue
			}
			seen[key] = true
			collected = append(collected, it)
		}
	}

	collect(run.query(ctx, metrics.StagePrimary, query, primaryDisplay))

	if len(collected) < minPrimaryResults {
		for _, q := range backupQueries(region, req.Category) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			collect(run.query(ctx, metrics.StageBackup, q, primaryDisplay))
			if len(collected) >= backupStopAt {
				break
			}
		}
	}

	cleaned := make([]ranking.PlaceCandidate, 0, len(collected))
	for _, it := range collected {
		if p := toCandidate(it); !avoided(p, req.AvoidFoods) {
			cleaned = append(cleaned, p)
		}
	}
	if n := len(cleaned) - len(ranking.FilterFranchises(cleaned)); n > 0 {
		metrics.FranchiseFilteredTotal.Add(float64(n))
	}

	var refined []ranking.PlaceCandidate
	if mode, ok := ranking.ParseRankMode(req.Mode); ok {
		refined = ranking.RankPlaces(cleaned, region, ranking.RankOptions{
			RegionName: region,
			ThemeHint:  req.ThemeHint,
			Mode:       mode,
		})
	} else {
		refined = ranking.RankForSearch(cleaned, region, req.ThemeHint)
	}

	if req.Anchor != nil {
		refined = ranking.ReorderByAnchor(refined, req.Anchor)
	}

	if len(refined) == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, it := range run.query(ctx, metrics.StageLastResort, region, lastResortDisplay) {
			refined = append(refined, toCandidate(it))
		}
	}

	if len(refined) == 0 && run.allFailed() {
		return nil, fmt.Errorf("search %q: %w", query, asUnavailable(run.lastError))
	}

	if refined == nil {
		refined = []ranking.PlaceCandidate{}
	}
	if len(refined) > maxPlaceResults {
		refined = refined[:maxPlaceResults]
	}
	return refined, nil
}

func asUnavailable(err error) error {
	switch {
	case err == nil:
		return utils.ErrSearchProviderUnavailable
	case errors.Is(err, utils.ErrSearchProviderUnavailable):
		return err
	}
	return fmt.Errorf("%w: %v", utils.ErrSearchProviderUnavailable, err)
}
