package routes

import (
	"Backend-Formforge/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func submissionRoutes(admin fiber.Router, public fiber.Router) {
	// Public submit endpoint.
	public.Post("/submissions", controllers.CreateSubmission)

	subs := admin.Group("/submissions")
	subs.Get("/", controllers.GetSubmissions)
	subs.Post("/export", controllers.ExportSubmissions)
	subs.Get("/:id", controllers.GetSubmission)
	subs.Patch("/:id/status", controllers.UpdateSubmissionStatus)
	subs.Patch("/:id/notes", controllers.UpdateSubmissionNotes)
	subs.Patch("/:id/fields", controllers.UpdateSubmissionField)
	subs.Get("/:id/history", controllers.GetSubmissionHistory)
}
