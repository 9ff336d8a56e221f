package response_models

import "tripmate/internal/ranking"

type PlaceSearchResponse struct {
	Items []ranking.PlaceCandidate `json:"items"`
}
