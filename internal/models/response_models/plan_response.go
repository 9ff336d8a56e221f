package response_models

import "tripmate/internal/slots"

type PlanMeta struct {
	Season     slots.Season   `json:"season"`
	AvoidFoods []string       `json:"avoidFoods"`
	TripInfo   slots.TripInfo `json:"tripInfo"`
}

type PlanResponse struct {
	Slots []slots.PlanSlot `json:"slots"`
	Meta  PlanMeta         `json:"meta"`
}
