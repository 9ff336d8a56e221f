package services_fx

import (
	"go.uber.org/fx"
	"tripmate/internal/services"
)

var Module = fx.Provide(
	services.NewPlanService,
	services.NewPlaceService,
	services.NewItineraryService)
