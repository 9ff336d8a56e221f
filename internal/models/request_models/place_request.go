package request_models

import "tripmate/internal/ranking"

type PlaceSearchRequest struct {
	Query      string         `json:"query"`
	Category   string         `json:"category,omitempty"`
	Region     string         `json:"region,omitempty"`
	AvoidFoods []string       `json:"avoidFoods,omitempty"`
	Anchor     *ranking.Point `json:"anchor,omitempty"`
	// Mode selects the full ranker (distance, theme, price_low, price_high).
	// Empty keeps the lighter search ranking.
	Mode      string `json:"mode,omitempty"`
	ThemeHint string `json:"themeHint,omitempty"`
}
