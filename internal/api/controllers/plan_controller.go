package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tripmate/internal/models/request_models"
	"tripmate/internal/services"
	"tripmate/internal/slots"
	"tripmate/pkg/utils"
)

type PlanController struct {
	planService services.PlanServiceInterface
}

func NewPlanController(planService services.PlanServiceInterface) *PlanController {
	return &PlanController{
		planService: planService,
	}
}

// POST /api/plan
func (pc *PlanController) CreatePlanHandler(c *gin.Context) {
	var req request_models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := pc.planService.PlanFromMessage(c.Request.Context(), req.Message)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan created successfully")
}

// POST /api/plan/slots
func (pc *PlanController) GenerateSlotsHandler(c *gin.Context) {
	var info slots.TripInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	utils.RespondSuccess(c, pc.planService.PlanFromTrip(info), "Slots generated successfully")
}
