package v1

import (
	"net/http"

	"github.com/agencydesk/backend/internal/httputil"
	"github.com/agencydesk/backend/internal/models"
	ad_uuid "github.com/agencydesk/backend/internal/uuid"
	"github.com/gin-gonic/gin"
)

// The expense tables predate structured costs and are kept readable so that
// old data stays inspectable. Writes go through /v1/costs.

// RegisterExpenseRoutes registers the read-only routes for legacy expenses
// with the RouterGroup that is passed.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsExpenseList)
	r.GET("", GetExpenses)
}

// RegisterContractorExpenseRoutes registers the read-only routes for legacy
// contractor expenses with the RouterGroup that is passed.
func RegisterContractorExpenseRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsContractorExpenseList)
	r.GET("", GetContractorExpenses)
}

// OptionsExpenseList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Expenses
//	@Success		204
//	@Router			/v1/expenses [options]
func OptionsExpenseList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsContractorExpenseList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Expenses
//	@Success		204
//	@Router			/v1/contractor-expenses [options]
func OptionsContractorExpenseList(c *gin.Context) {
	httputil.OptionsGet(c)
}

type ExpenseListResponse struct {
	Data  []models.Expense `json:"data"`                                                          // List of legacy expenses
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ContractorExpenseListResponse struct {
	Data  []models.ContractorExpense `json:"data"`                                                          // List of legacy contractor expenses
	Error *string                    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ExpenseQueryFilter struct {
	CompanyID ad_uuid.UUID `form:"company"` // By ID of the Company
}

// GetExpenses returns the legacy expenses
//
//	@Summary		Get legacy expenses
//	@Description	Returns the expenses from the legacy table. This data is read-only, use costs for new entries.
//	@Tags			Expenses
//	@Produce		json
//	@Success		200	{object}	ExpenseListResponse
//	@Failure		500	{object}	ExpenseListResponse
//	@Param			company	query	string	false	"Filter by company ID"
//	@Router			/v1/expenses [get]
func GetExpenses(c *gin.Context) {
	var filter ExpenseQueryFilter
	_ = c.Bind(&filter)

	queryFields, _ := httputil.GetURLFields(c.Request.URL, filter)

	var expenses []models.Expense
	err := models.DB.
		Order("name ASC").
		Where(&models.Expense{CompanyID: filter.CompanyID.UUID}, queryFields...).
		Find(&expenses).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseListResponse{
			Error: &s,
		})
		return
	}

	if expenses == nil {
		expenses = make([]models.Expense, 0)
	}

	c.JSON(http.StatusOK, ExpenseListResponse{Data: expenses})
}

// GetContractorExpenses returns the legacy contractor expenses
//
//	@Summary		Get legacy contractor expenses
//	@Description	Returns the contractor expenses from the legacy table. This data is read-only, use costs for new entries.
//	@Tags			Expenses
//	@Produce		json
//	@Success		200	{object}	ContractorExpenseListResponse
//	@Failure		500	{object}	ContractorExpenseListResponse
//	@Param			company	query	string	false	"Filter by company ID"
//	@Router			/v1/contractor-expenses [get]
func GetContractorExpenses(c *gin.Context) {
	var filter ExpenseQueryFilter
	_ = c.Bind(&filter)

	queryFields, _ := httputil.GetURLFields(c.Request.URL, filter)

	var expenses []models.ContractorExpense
	err := models.DB.
		Order("year ASC, month ASC").
		Where(&models.ContractorExpense{CompanyID: filter.CompanyID.UUID}, queryFields...).
		Find(&expenses).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractorExpenseListResponse{
			Error: &s,
		})
		return
	}

	if expenses == nil {
		expenses = make([]models.ContractorExpense, 0)
	}

	c.JSON(http.StatusOK, ContractorExpenseListResponse{Data: expenses})
}
