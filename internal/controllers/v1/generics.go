package v1

import (
	"github.com/agencydesk/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request
// for a specific resource. The allow function sets the verbs for the route.
//
// Note: This function only works for resources with an ID, not for calculated endpoints (like /dashboard)
func resourceOptionsDetail[R models.Company | models.Client | models.UserProfile | models.Project | models.Cost | models.MonthlyRevenue](c *gin.Context, allow func(*gin.Context), resource R) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&resource, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	allow(c)
}
