// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lifescope/backend/internal/application/usecase/goal"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
	"github.com/lifescope/backend/internal/integration/entrypoint/dto"
)

// GoalController handles goal endpoints.
type GoalController struct {
	listUseCase   *goal.ListGoalsUseCase
	createUseCase *goal.CreateGoalUseCase
	getUseCase    *goal.GetGoalUseCase
	updateUseCase *goal.UpdateGoalUseCase
	deleteUseCase *goal.DeleteGoalUseCase
	recalculator  *goal.ProgressRecalculator
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	listUseCase *goal.ListGoalsUseCase,
	createUseCase *goal.CreateGoalUseCase,
	getUseCase *goal.GetGoalUseCase,
	updateUseCase *goal.UpdateGoalUseCase,
	deleteUseCase *goal.DeleteGoalUseCase,
	recalculator *goal.ProgressRecalculator,
) *GoalController {
	return &GoalController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		recalculator:  recalculator,
	}
}

// List handles GET /goals requests.
func (c *GoalController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var query dto.ListGoalsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		goalBindingError(ctx, err)
		return
	}

	input := goal.ListGoalsInput{UserID: userID}
	if query.Status != "" {
		status := entity.GoalStatus(query.Status)
		input.Status = &status
	}
	if query.Category != "" {
		input.Category = &query.Category
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output.Goals, c.recalculator.Now(ctx.Request.Context())))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		goalBindingError(ctx, err)
		return
	}

	deadline, err := dto.ParseDate(req.Deadline)
	if err != nil {
		invalidDeadline(ctx)
		return
	}

	input := goal.CreateGoalInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Deadline:    deadline,
	}
	if req.Priority != nil {
		priority := entity.GoalPriority(*req.Priority)
		input.Priority = &priority
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output.Goal, c.recalculator.Now(ctx.Request.Context())))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "id", "goal")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{
		GoalID: goalID,
		UserID: userID,
	})
	if err != nil {
		handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal, c.recalculator.Now(ctx.Request.Context())))
}

// Update handles PATCH /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "id", "goal")
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		goalBindingError(ctx, err)
		return
	}

	input := goal.UpdateGoalInput{
		GoalID:      goalID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}
	if req.Priority != nil {
		priority := entity.GoalPriority(*req.Priority)
		input.Priority = &priority
	}
	if req.Deadline != nil {
		if *req.Deadline == "" {
			input.ClearDeadline = true
		} else {
			deadline, err := dto.ParseDate(req.Deadline)
			if err != nil {
				invalidDeadline(ctx)
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

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal, c.recalculator.Now(ctx.Request.Context())))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "id", "goal")
	if !ok {
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), goal.DeleteGoalInput{
		GoalID: goalID,
		UserID: userID,
	}); err != nil {
		handleGoalError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func invalidDeadline(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "deadline must be formatted as YYYY-MM-DD",
		Code:  string(domainerror.ErrCodeInvalidGoalDeadline),
	})
}
