package v1

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/agencydesk/backend/internal/httputil"
	"github.com/agencydesk/backend/internal/importer"
	"github.com/agencydesk/backend/internal/importer/parser/revenuecsv"
	"github.com/agencydesk/backend/internal/models"
	ad_uuid "github.com/agencydesk/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
)

// RegisterImportRoutes registers the routes for imports with
// the RouterGroup that is passed.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsImport)
	r.OPTIONS("/revenues", OptionsImportRevenues)
	r.POST("/revenues", ImportRevenues)
}

// OptionsImport returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Import
//	@Success		204
//	@Router			/v1/import [options]
func OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// OptionsImportRevenues returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Import
//	@Success		204
//	@Router			/v1/import/revenues [options]
func OptionsImportRevenues(c *gin.Context) {
	httputil.OptionsPost(c)
}

type ImportQuery struct {
	CompanyID ad_uuid.UUID `form:"companyId" binding:"required"` // ID of the company to import the revenue for
}

// ImportResult is the outcome of a revenue import.
type ImportResult struct {
	Created  int                       `json:"created" example:"10"` // Number of ledger entries that were saved
	Previews []importer.RevenuePreview `json:"previews"`             // The saved entries with the names they referenced
	Errors   []string                  `json:"errors" example:"error in line 3 of the CSV: could not parse the month"`
}

type ImportResponse struct {
	Data  *ImportResult `json:"data"`                                               // The outcome of the import
	Error *string       `json:"error" example:"you must send a file to this endpoint"` // The error, if any occurred
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// ImportRevenues imports monthly revenue from a CSV export
//
//	@Summary		Import revenue
//	@Description	Imports monthly revenue entries from a CSV file. Client and project names may contain * wildcards and are matched against the company's resources. Rows with unresolvable names are reported and skipped.
//	@Tags			Import
//	@Accept			multipart/form-data
//	@Produce		json
//	@Success		201	{object}	ImportResponse
//	@Failure		400	{object}	ImportResponse
//	@Failure		404	{object}	ImportResponse
//	@Failure		500	{object}	ImportResponse
//	@Param			file		formData	file	true	"File to import. Only CSV files are supported."
//	@Param			companyId	query		string	true	"ID of the company to import the revenue for"
//	@Router			/v1/import/revenues [post]
func ImportRevenues(c *gin.Context) {
	var query ImportQuery
	if err := c.Bind(&query); err != nil {
		s := errCompanyIDParameter.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{
			Error: &s,
		})
		return
	}

	var company models.Company
	err := models.DB.First(&company, query.CompanyID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	f, err := getUploadedFile(c, ".csv")
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{
			Error: &s,
		})
		return
	}
	defer f.Close()

	previews, err := revenuecsv.Parse(f, company)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{
			Error: &s,
		})
		return
	}

	var clients []models.Client
	err = models.DB.Where(&models.Client{CompanyID: company.ID}).Find(&clients).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	var projects []models.Project
	err = models.DB.Where(&models.Project{CompanyID: company.ID}).Find(&projects).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	result := ImportResult{
		Previews: make([]importer.RevenuePreview, 0),
		Errors:   make([]string, 0),
	}

	for i, preview := range previews {
		if preview.ClientName != "" {
			id, err := matchClient(clients, preview.ClientName)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", i+1, err))
				continue
			}
			preview.Entry.ClientID = &id
		}

		if preview.ProjectName != "" {
			id, err := matchProject(projects, preview.ProjectName)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", i+1, err))
				continue
			}
			preview.Entry.ProjectID = &id
		}

		err := models.DB.Create(&preview.Entry).Error
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", i+1, err))
			continue
		}

		result.Previews = append(result.Previews, preview)
		result.Created++
	}

	c.JSON(http.StatusCreated, ImportResponse{Data: &result})
}

// matchClient resolves a name from the file against the company's clients.
// The name may contain * wildcards and must match exactly one client.
func matchClient(clients []models.Client, name string) (uuid.UUID, error) {
	var matches []uuid.UUID
	for _, client := range clients {
		if glob.Glob(name, client.Name) {
			matches = append(matches, client.ID)
		}
	}

	if len(matches) != 1 {
		return uuid.Nil, fmt.Errorf("%q matches %d clients, it must match exactly one", name, len(matches))
	}

	return matches[0], nil
}

// matchProject resolves a name from the file against the company's projects.
// The name may contain * wildcards and must match exactly one project.
func matchProject(projects []models.Project, name string) (uuid.UUID, error) {
	var matches []uuid.UUID
	for _, project := range projects {
		if glob.Glob(name, project.Name) {
			matches = append(matches, project.ID)
		}
	}

	if len(matches) != 1 {
		return uuid.Nil, fmt.Errorf("%q matches %d projects, it must match exactly one", name, len(matches))
	}

	return matches[0], nil
}
