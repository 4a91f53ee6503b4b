package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lifescope/backend/internal/application/usecase/activity"
	"github.com/lifescope/backend/internal/application/usecase/goal"
	"github.com/lifescope/backend/internal/integration/entrypoint/dto"
)

// ActivityController handles the activities nested under a goal.
// Every mutation answers with the recomputed goal.
type ActivityController struct {
	addUseCase    *activity.AddActivityUseCase
	updateUseCase *activity.UpdateActivityUseCase
	removeUseCase *activity.RemoveActivityUseCase
	toggleUseCase *activity.ToggleActivityUseCase
	recalculator  *goal.ProgressRecalculator
}

// NewActivityController creates a new activity controller instance.
func NewActivityController(
	addUseCase *activity.AddActivityUseCase,
	updateUseCase *activity.UpdateActivityUseCase,
	removeUseCase *activity.RemoveActivityUseCase,
	toggleUseCase *activity.ToggleActivityUseCase,
	recalculator *goal.ProgressRecalculator,
) *ActivityController {
	return &ActivityController{
		addUseCase:    addUseCase,
		updateUseCase: updateUseCase,
		removeUseCase: removeUseCase,
		toggleUseCase: toggleUseCase,
		recalculator:  recalculator,
	}
}

// Add handles POST /goals/:id/activities requests.
func (c *ActivityController) Add(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "id", "goal")
	if !ok {
		return
	}

	var req dto.CreateActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		activityBindingError(ctx, err)
		return
	}

	deadline, err := dto.ParseDate(req.Deadline)
	if err != nil {
		activityBindingError(ctx, err)
		return
	}

	output, err := c.addUseCase.Execute(ctx.Request.Context(), activity.AddActivityInput{
		GoalID:    goalID,
		UserID:    userID,
		Name:      req.Name,
		Frequency: req.Frequency,
		Deadline:  deadline,
	})
	if err != nil {
		handleGoalError(ctx, err)
		return
	}

	now := c.recalculator.Now(ctx.Request.Context())
	ctx.JSON(http.StatusCreated, dto.ActivityMutationResponse{
		Activity: dto.ToActivityResponse(output.Activity, now),
		Goal:     dto.ToGoalResponse(output.Goal, now),
	})
}

// Update handles PATCH /goals/:id/activities/:activityId requests.
func (c *ActivityController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "id", "goal")
	if !ok {
		return
	}
	activityID, ok := parseIDParam(ctx, "activityId", "activity")
	if !ok {
		return
	}

	var req dto.UpdateActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		activityBindingError(ctx, err)
		return
	}

	input := activity.UpdateActivityInput{
		GoalID:     goalID,
		ActivityID: activityID,
		UserID:     userID,
		Name:       req.Name,
		Frequency:  req.Frequency,
	}
	if req.Deadline != nil {
		if *req.Deadline == "" {
			input.ClearDeadline = true
		} else {
			deadline, err := dto.ParseDate(req.Deadline)
			if err != nil {
				activityBindingError(ctx, err)
				return
			}
			input.Deadline = deadline
		}
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleGoalError(ctx, err)
		return
	}

	now := c.recalculator.Now(ctx.Request.Context())
	ctx.JSON(http.StatusOK, dto.ActivityMutationResponse{
		Activity: dto.ToActivityResponse(output.Activity, now),
		Goal:     dto.ToGoalResponse(output.Goal, now),
	})
}

// Remove handles DELETE /goals/:id/activities/:activityId requests.
func (c *ActivityController) Remove(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "id", "goal")
	if !ok {
		return
	}
	activityID, ok := parseIDParam(ctx, "activityId", "activity")
	if !ok {
		return
	}

	output, err := c.removeUseCase.Execute(ctx.Request.Context(), activity.RemoveActivityInput{
		GoalID:     goalID,
		ActivityID: activityID,
		UserID:     userID,
	})
	if err != nil {
		handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal, c.recalculator.Now(ctx.Request.Context())))
}

// Toggle handles POST /goals/:id/activities/:activityId/toggle requests.
func (c *ActivityController) Toggle(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "id", "goal")
	if !ok {
		return
	}
	activityID, ok := parseIDParam(ctx, "activityId", "activity")
	if !ok {
		return
	}

	output, err := c.toggleUseCase.Execute(ctx.Request.Context(), activity.ToggleActivityInput{
		GoalID:     goalID,
		ActivityID: activityID,
		UserID:     userID,
	})
	if err != nil {
		handleGoalError(ctx, err)
		return
	}

	now := c.recalculator.Now(ctx.Request.Context())
	ctx.JSON(http.StatusOK, dto.ActivityMutationResponse{
		Activity: dto.ToActivityResponse(output.Activity, now),
		Goal:     dto.ToGoalResponse(output.Goal, now),
	})
}
