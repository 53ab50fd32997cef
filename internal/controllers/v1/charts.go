package v1

import (
	"net/http"
	"time"

	"github.com/agencydesk/backend/internal/httputil"
	"github.com/agencydesk/backend/internal/models"
	"github.com/agencydesk/backend/internal/types"
	ad_uuid "github.com/agencydesk/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterChartRoutes registers the routes for chart data with
// the RouterGroup that is passed.
func RegisterChartRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/revenue", OptionsRevenueChart)
	r.GET("/revenue", GetRevenueChart)
}

// OptionsRevenueChart returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Charts
//	@Success		204
//	@Router			/v1/charts/revenue [options]
func OptionsRevenueChart(c *gin.Context) {
	httputil.OptionsGet(c)
}

type ChartQuery struct {
	CompanyID ad_uuid.UUID `form:"company"` // ID of the company
	Year      int          `form:"year"`    // Four digit year, defaults to the current year
}

// RevenueChart is the monthly revenue of one year, shaped for a stacked chart.
type RevenueChart struct {
	Year      int               `json:"year" example:"2024"`
	Labels    []string          `json:"labels" example:"2024-01,2024-02"` // One label per month
	Booked    []decimal.Decimal `json:"booked"`                           // Booked revenue per month
	Forecast  []decimal.Decimal `json:"forecast"`                         // Forecast revenue per month
	Source    string            `json:"source" example:"ledger"`          // Which data the series was computed from
	Synthetic bool              `json:"synthetic" example:"false"`        // True when the series contains demo data
}

type RevenueChartResponse struct {
	Data  *RevenueChart `json:"data"`                                                // The chart series
	Error *string       `json:"error" example:"the company query parameter must be set"` // The error, if any occurred
}

// GetRevenueChart returns the revenue series for one year
//
//	@Summary		Revenue chart
//	@Description	Returns month labels and booked and forecast revenue series for the stacked revenue chart
//	@Tags			Charts
//	@Produce		json
//	@Success		200	{object}	RevenueChartResponse
//	@Failure		400	{object}	RevenueChartResponse
//	@Failure		404	{object}	RevenueChartResponse
//	@Failure		500	{object}	RevenueChartResponse
//	@Param			company	query	string	true	"ID of the company"
//	@Param			year	query	int		false	"The year. Defaults to the current year."
//	@Router			/v1/charts/revenue [get]
func GetRevenueChart(c *gin.Context) {
	var query ChartQuery
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, RevenueChartResponse{
			Error: &s,
		})
		return
	}

	company, err := dashboardCompany(query.CompanyID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RevenueChartResponse{
			Error: &s,
		})
		return
	}

	year := query.Year
	if year == 0 {
		year = time.Now().Year()
	}
	if year < 1000 || year > 9999 {
		s := errYearParameter.Error()
		c.JSON(http.StatusBadRequest, RevenueChartResponse{
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
		c.JSON(status(err), RevenueChartResponse{
			Error: &s,
		})
		return
	}

	chart := RevenueChart{
		Year:      year,
		Labels:    make([]string, 0, 12),
		Booked:    make([]decimal.Decimal, 0, 12),
		Forecast:  make([]decimal.Decimal, 0, 12),
		Source:    report.Source,
		Synthetic: report.Synthetic,
	}

	for i, bucket := range report.Months {
		chart.Labels = append(chart.Labels, types.NewMonth(year, time.Month(i+1)).String())
		chart.Booked = append(chart.Booked, bucket.Booked)
		chart.Forecast = append(chart.Forecast, bucket.Forecast)
	}

	c.JSON(http.StatusOK, RevenueChartResponse{Data: &chart})
}
