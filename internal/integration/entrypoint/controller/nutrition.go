package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/application/usecase/nutrition"
	domainerror "github.com/lifescope/backend/internal/domain/error"
	"github.com/lifescope/backend/internal/integration/entrypoint/dto"
	"github.com/lifescope/backend/internal/integration/entrypoint/validation"
)

// NutritionController handles nutrition log endpoints.
type NutritionController struct {
	createUseCase  *nutrition.CreateEntryUseCase
	listUseCase    *nutrition.ListEntriesUseCase
	deleteUseCase  *nutrition.DeleteEntryUseCase
	summaryUseCase *nutrition.DailySummaryUseCase
}

// NewNutritionController creates a new nutrition controller instance.
func NewNutritionController(
	createUseCase *nutrition.CreateEntryUseCase,
	listUseCase *nutrition.ListEntriesUseCase,
	deleteUseCase *nutrition.DeleteEntryUseCase,
	summaryUseCase *nutrition.DailySummaryUseCase,
) *NutritionController {
	return &NutritionController{
		createUseCase:  createUseCase,
		listUseCase:    listUseCase,
		deleteUseCase:  deleteUseCase,
		summaryUseCase: summaryUseCase,
	}
}

// Create handles POST /nutrition requests.
func (c *NutritionController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateNutritionEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		code := domainerror.ErrCodeNutritionNameRequired
		var parseErr *time.ParseError
		switch validation.FailedField(err) {
		case "MealType":
			code = domainerror.ErrCodeInvalidMealType
		case "Calories", "ProteinG", "CarbsG", "FatG":
			code = domainerror.ErrCodeNegativeMacros
		case "":
			if errors.As(err, &parseErr) {
				code = domainerror.ErrCodeInvalidNutritionDate
			}
		}
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(code),
			Details: bindingDetails(err),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), nutrition.CreateEntryInput{
		UserID:     userID,
		Name:       req.Name,
		MealType:   req.MealType,
		Calories:   req.Calories,
		ProteinG:   req.ProteinG,
		CarbsG:     req.CarbsG,
		FatG:       req.FatG,
		ConsumedAt: req.ConsumedAt,
		Notes:      req.Notes,
	})
	if err != nil {
		handleNutritionError(ctx, err)
		return
	}

	loc := adapter.LocationFromContext(ctx.Request.Context())
	ctx.JSON(http.StatusCreated, dto.ToNutritionEntryResponse(output.Entry, loc))
}

// List handles GET /nutrition?date=YYYY-MM-DD requests.
func (c *NutritionController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	day, ok := bindDay(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), nutrition.ListEntriesInput{
		UserID: userID,
		Day:    day,
	})
	if err != nil {
		handleNutritionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNutritionListResponse(output.Day, output.Entries))
}

// Summary handles GET /nutrition/summary?date=YYYY-MM-DD requests.
func (c *NutritionController) Summary(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	day, ok := bindDay(ctx)
	if !ok {
		return
	}

	summary, err := c.summaryUseCase.Execute(ctx.Request.Context(), nutrition.DailySummaryInput{
		UserID: userID,
		Day:    day,
	})
	if err != nil {
		handleNutritionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNutritionSummaryResponse(summary))
}

// Delete handles DELETE /nutrition/:id requests.
func (c *NutritionController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	entryID, ok := parseIDParam(ctx, "id", "entry")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), nutrition.DeleteEntryInput{
		UserID:  userID,
		EntryID: entryID,
	})
	if err != nil {
		handleNutritionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// bindDay reads the optional date query in the request timezone.
func bindDay(ctx *gin.Context) (*time.Time, bool) {
	var query dto.NutritionDayQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "date must use the YYYY-MM-DD format",
			Code:  string(domainerror.ErrCodeInvalidNutritionDate),
		})
		return nil, false
	}
	day, err := dto.ParseDay(query.Date, adapter.LocationFromContext(ctx.Request.Context()))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "date must use the YYYY-MM-DD format",
			Code:  string(domainerror.ErrCodeInvalidNutritionDate),
		})
		return nil, false
	}
	return day, true
}

func handleNutritionError(ctx *gin.Context, err error) {
	statusOf := func(code domainerror.NutritionErrorCode) int {
		if code == domainerror.ErrCodeNutritionEntryNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadRequest
	}
	if !respondCoded(ctx, err, statusOf) {
		internalError(ctx, err)
	}
}
