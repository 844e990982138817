package http

import (
	"github.com/gofiber/fiber/v2"
)

// Register wires all HTTP routes onto the app. auth guards everything
// except the health probe.
func Register(app *fiber.App, h *Handler, auth fiber.Handler) {
	v1 := app.Group("/api").Group("/v1")
	v1.Get("/health", h.Health)

	p := v1.Group("", auth)

	p.Get("/user/onboarding", h.OnboardingStatus)
	p.Put("/user/onboarding", h.Onboard)

	p.Get("/resume", h.GetResume)
	p.Put("/resume", h.SaveResume)
	p.Post("/resume/export", h.ExportResume)

	p.Get("/session", h.OpenSession)
	p.Delete("/session", h.CloseSession)
	p.Put("/session/draft", h.UpdateDraft)
	p.Put("/session/document", h.EditDocument)
	p.Post("/session/mode", h.ToggleMode)
	p.Post("/session/tab", h.FocusTab)
	p.Post("/session/improve", h.Improve)

	p.Post("/cover-letters", h.CreateCoverLetter)
	p.Get("/cover-letters", h.ListCoverLetters)
	p.Get("/cover-letters/:id", h.GetCoverLetter)
	p.Get("/cover-letters/:id/pdf", h.CoverLetterPDF)
	p.Delete("/cover-letters/:id", h.DeleteCoverLetter)
}
