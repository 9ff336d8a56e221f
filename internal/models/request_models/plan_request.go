package request_models

import "tripmate/internal/slots"

type PlanRequest struct {
	Message string `json:"message"`
}

// ItineraryRequest carries either a free-text message or an already structured trip.
// TripInfo wins when both are present.
type ItineraryRequest struct {
	Message  string          `json:"message,omitempty"`
	TripInfo *slots.TripInfo `json:"tripInfo,omitempty"`
}
