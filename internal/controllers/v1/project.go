package v1

import (
	"net/http"

	"github.com/agencydesk/backend/internal/httputil"
	"github.com/agencydesk/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterProjectRoutes registers the routes for projects with
// the RouterGroup that is passed
func RegisterProjectRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsProjectList)
		r.GET("", GetProjects)
		r.POST("", CreateProjects)
	}

	// Project with ID
	{
		r.OPTIONS("/:id", OptionsProjectDetail)
		r.GET("/:id", GetProject)
		r.PATCH("/:id", UpdateProject)
		r.DELETE("/:id", DeleteProject)

		r.OPTIONS("/:id/utilization", OptionsProjectUtilization)
		r.GET("/:id/utilization", GetProjectUtilization)

		r.OPTIONS("/:id/allocations", OptionsProjectAllocations)
		r.GET("/:id/allocations", GetProjectAllocations)
		r.POST("/:id/allocations", ReplaceProjectAllocations)
		r.DELETE("/:id/allocations", DeleteProjectAllocations)

		r.OPTIONS("/:id/members", OptionsProjectMembers)
		r.GET("/:id/members", GetProjectMembers)
		r.POST("/:id/members", AddProjectMember)
		r.DELETE("/:id/members", RemoveProjectMember)
	}
}

// OptionsProjectList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Projects
//	@Success		204
//	@Router			/v1/projects [options]
func OptionsProjectList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsProjectDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Projects
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/projects/{id} [options]
func OptionsProjectDetail(c *gin.Context) {
	resourceOptionsDetail(c, httputil.OptionsGetPatchDelete, models.Project{})
}

// OptionsProjectUtilization returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Projects
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/projects/{id}/utilization [options]
func OptionsProjectUtilization(c *gin.Context) {
	resourceOptionsDetail(c, httputil.OptionsGet, models.Project{})
}

// OptionsProjectAllocations returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Projects
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/projects/{id}/allocations [options]
func OptionsProjectAllocations(c *gin.Context) {
	resourceOptionsDetail(c, httputil.OptionsGetPostDelete, models.Project{})
}

// OptionsProjectMembers returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Projects
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/projects/{id}/members [options]
func OptionsProjectMembers(c *gin.Context) {
	resourceOptionsDetail(c, httputil.OptionsGetPostDelete, models.Project{})
}

// CreateProjects creates new projects
//
//	@Summary		Create projects
//	@Description	Creates new projects
//	@Tags			Projects
//	@Produce		json
//	@Success		201	{object}	ProjectCreateResponse
//	@Failure		400	{object}	ProjectCreateResponse
//	@Failure		404	{object}	ProjectCreateResponse
//	@Failure		500	{object}	ProjectCreateResponse
//	@Param			projects	body		[]ProjectEditable	true	"Projects"
//	@Router			/v1/projects [post]
func CreateProjects(c *gin.Context) {
	var editables []ProjectEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectCreateResponse{
			Error: &s,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	responseStatus := http.StatusCreated
	r := ProjectCreateResponse{}

	for _, editable := range editables {
		project := editable.model()

		err = models.DB.Create(&project).Error
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		data := newProject(c, project)
		r.Data = append(r.Data, ProjectResponse{Data: &data})
	}

	c.JSON(responseStatus, r)
}

// GetProjects returns a list of projects filtered by the query parameters
//
//	@Summary		Get projects
//	@Description	Returns a list of projects
//	@Tags			Projects
//	@Produce		json
//	@Success		200	{object}	ProjectListResponse
//	@Failure		400	{object}	ProjectListResponse
//	@Failure		500	{object}	ProjectListResponse
//	@Router			/v1/projects [get]
//	@Param			company		query	string	false	"Filter by company ID"
//	@Param			client		query	string	false	"Filter by client ID"
//	@Param			name		query	string	false	"Filter by name"
//	@Param			status		query	string	false	"Filter by status"
//	@Param			revenueType	query	string	false	"Filter by revenue type"
//	@Param			note		query	string	false	"Filter by note"
//	@Param			search		query	string	false	"Search for this text in name and note"
//	@Param			offset		query	uint	false	"The offset of the first Project returned. Defaults to 0."
//	@Param			limit		query	int		false	"Maximum number of Projects to return. Defaults to 50."
func GetProjects(c *gin.Context) {
	var filter ProjectQueryFilter

	// The filters contain only strings, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("name ASC").
		Where(&model, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Projects and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var projects []models.Project
	err = q.Find(&projects).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Project, 0)
	for _, project := range projects {
		data = append(data, newProject(c, project))
	}

	c.JSON(http.StatusOK, ProjectListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetProject returns a specific project
//
//	@Summary		Get project
//	@Description	Returns a specific project
//	@Tags			Projects
//	@Produce		json
//	@Success		200	{object}	ProjectResponse
//	@Failure		400	{object}	ProjectResponse
//	@Failure		404	{object}	ProjectResponse
//	@Failure		500	{object}	ProjectResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/projects/{id} [get]
func GetProject(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, ProjectResponse{
			Error: &s,
		})
		return
	}

	var project models.Project
	err := models.DB.First(&project, &models.Project{
		DefaultModel: models.DefaultModel{
			ID: uri.ID.UUID,
		},
	}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	data := newProject(c, project)
	c.JSON(http.StatusOK, ProjectResponse{Data: &data})
}

// UpdateProject updates a specific project
//
//	@Summary		Update project
//	@Description	Updates an existing project. Only values to be updated need to be specified.
//	@Tags			Projects
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	ProjectResponse
//	@Failure		400	{object}	ProjectResponse
//	@Failure		404	{object}	ProjectResponse
//	@Failure		500	{object}	ProjectResponse
//	@Param			id		path		URIID			true	"ID formatted as string"
//	@Param			project	body		ProjectEditable	true	"Project"
//	@Router			/v1/projects/{id} [patch]
func UpdateProject(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, ProjectResponse{
			Error: &s,
		})
		return
	}

	var project models.Project
	err := models.DB.First(&project, &models.Project{
		DefaultModel: models.DefaultModel{
			ID: uri.ID.UUID,
		},
	}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ProjectEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	var data ProjectEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&project).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	apiResource := newProject(c, project)
	c.JSON(http.StatusOK, ProjectResponse{Data: &apiResource})
}

// DeleteProject deletes a specific project
//
//	@Summary		Delete project
//	@Description	Deletes a project
//	@Tags			Projects
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/projects/{id} [delete]
func DeleteProject(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	var project models.Project
	err := models.DB.First(&project, &models.Project{
		DefaultModel: models.DefaultModel{
			ID: uri.ID.UUID,
		},
	}).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&project).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// GetProjectUtilization returns the project's hours against its budget
//
//	@Summary		Project utilization
//	@Description	Returns the allocated hours, budget and health of the project
//	@Tags			Projects
//	@Produce		json
//	@Success		200	{object}	UtilizationResponse
//	@Failure		400	{object}	UtilizationResponse
//	@Failure		404	{object}	UtilizationResponse
//	@Failure		500	{object}	UtilizationResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/projects/{id}/utilization [get]
func GetProjectUtilization(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, UtilizationResponse{
			Error: &s,
		})
		return
	}

	var project models.Project
	err := models.DB.First(&project, &models.Project{
		DefaultModel: models.DefaultModel{
			ID: uri.ID.UUID,
		},
	}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UtilizationResponse{
			Error: &s,
		})
		return
	}

	report, err := project.Utilization(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UtilizationResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, UtilizationResponse{Data: &report})
}

// GetProjectAllocations returns the allocations saved on the project
//
//	@Summary		Get allocations
//	@Description	Returns all allocations of the project
//	@Tags			Projects
//	@Produce		json
//	@Success		200	{object}	AllocationListResponse
//	@Failure		400	{object}	AllocationListResponse
//	@Failure		404	{object}	AllocationListResponse
//	@Failure		500	{object}	AllocationListResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/projects/{id}/allocations [get]
func GetProjectAllocations(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, AllocationListResponse{
			Error: &s,
		})
		return
	}

	var project models.Project
	err := models.DB.First(&project, &models.Project{
		DefaultModel: models.DefaultModel{
			ID: uri.ID.UUID,
		},
	}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationListResponse{
			Error: &s,
		})
		return
	}

	var allocations []models.ProjectAllocation
	err = models.DB.
		Where(&models.ProjectAllocation{ProjectID: project.ID}).
		Order("year ASC, month ASC, week ASC").
		Find(&allocations).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Allocation, 0)
	for _, allocation := range allocations {
		data = append(data, newAllocation(allocation))
	}

	c.JSON(http.StatusOK, AllocationListResponse{Data: data})
}

// ReplaceProjectAllocations replaces all allocations of the project
//
//	@Summary		Replace allocations
//	@Description	Replaces all allocations of the project with the submitted ones. Rows referencing unknown members are reported and skipped, all other rows are saved.
//	@Tags			Projects
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	ReplaceAllocationsResponse
//	@Failure		400	{object}	ReplaceAllocationsResponse
//	@Failure		404	{object}	ReplaceAllocationsResponse
//	@Failure		500	{object}	ReplaceAllocationsResponse
//	@Param			id			path	URIID						true	"ID formatted as string"
//	@Param			allocations	body	[]models.AllocationEntry	true	"Allocations"
//	@Router			/v1/projects/{id}/allocations [post]
func ReplaceProjectAllocations(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, ReplaceAllocationsResponse{
			Error: &s,
		})
		return
	}

	var project models.Project
	err := models.DB.First(&project, &models.Project{
		DefaultModel: models.DefaultModel{
			ID: uri.ID.UUID,
		},
	}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReplaceAllocationsResponse{
			Error: &s,
		})
		return
	}

	var entries []models.AllocationEntry
	err = httputil.BindData(c, &entries)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReplaceAllocationsResponse{
			Error: &s,
		})
		return
	}

	result, err := project.ReplaceAllocations(models.DB, entries)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReplaceAllocationsResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ReplaceAllocationsResponse{Data: &result})
}

// DeleteProjectAllocations deletes all allocations of the project
//
//	@Summary		Delete allocations
//	@Description	Deletes all allocations of the project
//	@Tags			Projects
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/projects/{id}/allocations [delete]
func DeleteProjectAllocations(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	var project models.Project
	err := models.DB.First(&project, &models.Project{
		DefaultModel: models.DefaultModel{
			ID: uri.ID.UUID,
		},
	}).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = project.ReplaceAllocations(models.DB, []models.AllocationEntry{})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// GetProjectMembers returns the project team
//
//	@Summary		Get team
//	@Description	Returns the members on the project team
//	@Tags			Projects
//	@Produce		json
//	@Success		200	{object}	TeamListResponse
//	@Failure		400	{object}	TeamListResponse
//	@Failure		404	{object}	TeamListResponse
//	@Failure		500	{object}	TeamListResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/projects/{id}/members [get]
func GetProjectMembers(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, TeamListResponse{
			Error: &s,
		})
		return
	}

	var project models.Project
	err := models.DB.
		Preload("TeamMembers").
		First(&project, &models.Project{
			DefaultModel: models.DefaultModel{
				ID: uri.ID.UUID,
			},
		}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TeamListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Member, 0)
	for _, member := range project.TeamMembers {
		data = append(data, newMember(c, member))
	}

	c.JSON(http.StatusOK, TeamListResponse{Data: data})
}

// AddProjectMember adds a member to the project team
//
//	@Summary		Add team member
//	@Description	Adds a member to the project team
//	@Tags			Projects
//	@Accept			json
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id		path	URIID			true	"ID formatted as string"
//	@Param			member	body	TeamEditable	true	"Member"
//	@Router			/v1/projects/{id}/members [post]
func AddProjectMember(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	var project models.Project
	err := models.DB.First(&project, &models.Project{
		DefaultModel: models.DefaultModel{
			ID: uri.ID.UUID,
		},
	}).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var editable TeamEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = project.AddMember(models.DB, editable.MemberID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// RemoveProjectMember removes a member from the project team
//
//	@Summary		Remove team member
//	@Description	Removes a member from the project team and deletes their allocations on the project
//	@Tags			Projects
//	@Accept			json
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id		path	URIID			true	"ID formatted as string"
//	@Param			member	body	TeamEditable	true	"Member"
//	@Router			/v1/projects/{id}/members [delete]
func RemoveProjectMember(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	var project models.Project
	err := models.DB.First(&project, &models.Project{
		DefaultModel: models.DefaultModel{
			ID: uri.ID.UUID,
		},
	}).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var editable TeamEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = project.RemoveMember(models.DB, editable.MemberID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
