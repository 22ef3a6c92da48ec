package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"leaseintake/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parse, call the service, translate errors.
func RegisterRoutes(app *fiber.App, db *sql.DB, intakeSvc service.IntakeService, projectSvc service.ProjectService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")

	api.Post("/upload", UploadFile(intakeSvc))
	api.Post("/process-document", ProcessDocument(intakeSvc))
	api.Post("/save-lease-data", SaveLeaseData(intakeSvc))
	api.Post("/intake", RunIntake(intakeSvc))

	api.Get("/projects", ListProjects(projectSvc))
	api.Post("/projects", CreateProject(projectSvc))
	api.Get("/projects/:id", GetProject(projectSvc))
	api.Delete("/projects/:id", DeleteProject(projectSvc))
	api.Get("/projects/:id/leases", ListProjectLeases(projectSvc))
	api.Get("/projects/:id/export", ExportProject(projectSvc))

	api.Get("/leases/:id", GetLease(projectSvc))
	api.Get("/stats", GetStats(projectSvc))
}
