package controllers_fx

import (
	"go.uber.org/fx"
	"tripmate/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewPlanController),
	fx.Provide(controllers.NewPlaceController),
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewHealthController))
