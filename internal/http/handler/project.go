package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"leaseintake/internal/model"
	"leaseintake/internal/service"
)

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type projectResponse struct {
	Success bool           `json:"success"`
	Data    *model.Project `json:"data"`
}

type projectListResponse struct {
	Success bool `json:"success"`
	*service.ProjectListResult
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type leaseResponse struct {
	Success bool                 `json:"success"`
	Data    *model.LeaseDocument `json:"data"`
}

type leaseListResponse struct {
	Success bool `json:"success"`
	*service.LeaseListResult
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type statsResponse struct {
	Success bool         `json:"success"`
	Data    *model.Stats `json:"data"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// pagination reads limit and offset; ok is false once an error response was written.
func pagination(c *fiber.Ctx) (limit, offset int, ok bool, err error) {
	limit, perr := strconv.Atoi(c.Query("limit", "10"))
	if perr != nil {
		return 0, 0, false, writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
	}
	offset, perr = strconv.Atoi(c.Query("offset", "0"))
	if perr != nil {
		return 0, 0, false, writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
	}
	return limit, offset, true, nil
}

// idParam returns the :id path parameter when it is a UUID.
func idParam(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func writeInvalidID(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
}

// ListProjects godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Param limit query int false "Page size (max 100)" default(10)
// @Param offset query int false "Rows to skip" default(0)
// @Param q query string false "Case-insensitive name filter"
// @Success 200 {object} projectListResponse
// @Failure 400 {object} errorPayload
// @Router /api/projects [get]
func ListProjects(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := pagination(c)
		if !ok {
			return err
		}
		res, err := svc.List(c.UserContext(), limit, offset, c.Query("q"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(projectListResponse{Success: true, ProjectListResult: res, Limit: limit, Offset: offset})
	}
}

// CreateProject godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param body body createProjectRequest true "Project"
// @Success 201 {object} projectResponse
// @Failure 400 {object} errorPayload
// @Router /api/projects [post]
func CreateProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createProjectRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		p, err := svc.Create(c.UserContext(), req.Name, req.Description)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(projectResponse{Success: true, Data: p})
	}
}

// GetProject godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path string true "Project id"
// @Success 200 {object} projectResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/projects/{id} [get]
func GetProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c)
		if !ok {
			return writeInvalidID(c)
		}
		p, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(projectResponse{Success: true, Data: p})
	}
}

// DeleteProject godoc
// @Summary Delete a project and its leases
// @Description Stored files are not removed.
// @Tags projects
// @Produce json
// @Param id path string true "Project id"
// @Success 200 {object} successResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/projects/{id} [delete]
func DeleteProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c)
		if !ok {
			return writeInvalidID(c)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(successResponse{Success: true})
	}
}

// ListProjectLeases godoc
// @Summary List the leases of a project
// @Tags projects
// @Produce json
// @Param id path string true "Project id"
// @Param limit query int false "Page size (max 100)" default(10)
// @Param offset query int false "Rows to skip" default(0)
// @Success 200 {object} leaseListResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/projects/{id}/leases [get]
func ListProjectLeases(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c)
		if !ok {
			return writeInvalidID(c)
		}
		limit, offset, ok, err := pagination(c)
		if !ok {
			return err
		}
		res, err := svc.ListLeases(c.UserContext(), id, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(leaseListResponse{Success: true, LeaseListResult: res, Limit: limit, Offset: offset})
	}
}

// ExportProject godoc
// @Summary Download a project's leases as XLSX
// @Tags projects
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Project id"
// @Success 200 {file} file
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/projects/{id}/export [get]
func ExportProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c)
		if !ok {
			return writeInvalidID(c)
		}
		out, err := svc.Export(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, out.ContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+out.FileName+`"`)
		return c.Send(out.Data)
	}
}

// GetLease godoc
// @Summary Get a persisted lease
// @Tags leases
// @Produce json
// @Param id path string true "Lease id"
// @Success 200 {object} leaseResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/leases/{id} [get]
func GetLease(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c)
		if !ok {
			return writeInvalidID(c)
		}
		d, err := svc.GetLease(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(leaseResponse{Success: true, Data: d})
	}
}

// GetStats godoc
// @Summary Dashboard totals
// @Tags stats
// @Produce json
// @Success 200 {object} statsResponse
// @Failure 500 {object} errorPayload
// @Router /api/stats [get]
func GetStats(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := svc.Stats(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(statsResponse{Success: true, Data: s})
	}
}
