package v1

import (
	"net/http"
	"os"
	"time"

	"github.com/agencydesk/backend/internal/models"
	"github.com/agencydesk/backend/internal/types"
	"github.com/gin-gonic/gin"
)

type MonthlyCostsResponse struct {
	Data  *MonthlyCosts `json:"data"`                                                          // The cost breakdown
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MonthlyCosts struct {
	Month     types.Month          `json:"month" example:"2024-03"` // The month the breakdown is for
	Breakdown models.CostBreakdown `json:"breakdown"`               // Payroll, contractor and other costs
}

type RevenueReportResponse struct {
	Data  *models.RevenueReport `json:"data"`                                                          // Twelve revenue buckets
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// demoMode reports whether sample data may be shown for empty reports.
// It is an explicit opt-in for demo installations.
func demoMode() bool {
	return os.Getenv("DEMO_MODE") == "true"
}

// @Summary		Monthly operating costs
// @Description	Returns the company's operating costs for one month, split into payroll, contractor and other costs
// @Tags			Companies
// @Produce		json
// @Success		200		{object}	MonthlyCostsResponse
// @Failure		400		{object}	MonthlyCostsResponse
// @Failure		404		{object}	MonthlyCostsResponse
// @Failure		500		{object}	MonthlyCostsResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			month	query		string	false	"The month in YYYY-MM format. Defaults to the current month."
// @Router			/v1/companies/{id}/costs/monthly [get]
func GetCompanyMonthlyCosts(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthlyCostsResponse{
			Error: &s,
		})
		return
	}

	var company models.Company
	err = models.DB.First(&company, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthlyCostsResponse{
			Error: &s,
		})
		return
	}

	var query QueryMonth
	_ = c.Bind(&query)

	month := types.MonthOf(time.Now())
	if !query.Month.IsZero() {
		month = types.MonthOf(query.Month)
	}

	breakdown, err := company.OperatingCost(models.DB, month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthlyCostsResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, MonthlyCostsResponse{
		Data: &MonthlyCosts{
			Month:     month,
			Breakdown: breakdown,
		},
	})
}

// @Summary		Monthly revenue
// @Description	Returns the company's revenue for a year, one booked and forecast bucket per month
// @Tags			Companies
// @Produce		json
// @Success		200		{object}	RevenueReportResponse
// @Failure		400		{object}	RevenueReportResponse
// @Failure		404		{object}	RevenueReportResponse
// @Failure		500		{object}	RevenueReportResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			year	query		int		false	"Four digit year. Defaults to the current year."
// @Router			/v1/companies/{id}/revenue [get]
func GetCompanyRevenue(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RevenueReportResponse{
			Error: &s,
		})
		return
	}

	var company models.Company
	err = models.DB.First(&company, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RevenueReportResponse{
			Error: &s,
		})
		return
	}

	var query QueryYear
	_ = c.Bind(&query)

	year := time.Now().Year()
	if query.Year != 0 {
		year = query.Year
	}

	if year < 1000 || year > 9999 {
		s := errYearParameter.Error()
		c.JSON(http.StatusBadRequest, RevenueReportResponse{
			Error: &s,
		})
		return
	}

	var options []models.RevenueOption
	if demoMode() {
		options = append(options, models.WithDemoSamples())
	}

	report, err := company.RevenueByMonth(models.DB, year, options...)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RevenueReportResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, RevenueReportResponse{Data: &report})
}
