package http

import (
	"strconv"

	"github.com/IdiotCoffee/jobforge/internal/model"
	"github.com/IdiotCoffee/jobforge/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handler struct {
	svc *usecase.Service
}

func NewHandler(svc *usecase.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) Onboard(c *fiber.Ctx) error {
	var req model.Onboarding
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid payload")
	}
	u, err := h.svc.Onboard(c.UserContext(), identity(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(u)
}

func (h *Handler) OnboardingStatus(c *fiber.Ctx) error {
	done, err := h.svc.OnboardingStatus(c.UserContext(), identity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"isOnboarded": done})
}

func (h *Handler) GetResume(c *fiber.Ctx) error {
	r, err := h.svc.LoadResume(c.UserContext(), identity(c))
	if err != nil {
		return writeError(c, err)
	}
	if r == nil {
		return errorJSON(c, fiber.StatusNotFound, "no stored resume")
	}
	return c.JSON(r)
}

type saveReq struct {
	Content string `json:"content"`
}

// SaveResume stores the request content, or the open session's document
// when content is empty.
func (h *Handler) SaveResume(c *fiber.Ctx) error {
	var req saveReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "invalid payload")
		}
	}
	r, err := h.svc.SaveResume(c.UserContext(), identity(c), req.Content)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(r)
}

func (h *Handler) OpenSession(c *fiber.Ctx) error {
	v, err := h.svc.OpenSession(c.UserContext(), identity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(v)
}

func (h *Handler) CloseSession(c *fiber.Ctx) error {
	h.svc.CloseSession(identity(c))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) UpdateDraft(c *fiber.Ctx) error {
	var d model.ResumeDraft
	if err := c.BodyParser(&d); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid payload")
	}
	v, err := h.svc.UpdateDraft(identity(c), d)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(v)
}

type documentReq struct {
	Text string `json:"text"`
}

func (h *Handler) EditDocument(c *fiber.Ctx) error {
	var req documentReq
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid payload")
	}
	v, err := h.svc.ManualEdit(identity(c), req.Text)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(v)
}

type modeReq struct {
	Confirm bool `json:"confirm"`
}

func (h *Handler) ToggleMode(c *fiber.Ctx) error {
	var req modeReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "invalid payload")
		}
	}
	v, err := h.svc.ToggleMode(identity(c), req.Confirm)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(v)
}

type tabReq struct {
	Tab string `json:"tab"`
}

func (h *Handler) FocusTab(c *fiber.Ctx) error {
	var req tabReq
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid payload")
	}
	v, err := h.svc.FocusTab(identity(c), req.Tab)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(v)
}

type improveReq struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
}

func (h *Handler) Improve(c *fiber.Ctx) error {
	var req improveReq
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid payload")
	}
	kind, err := usecase.ParseFieldKind(req.Type)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	v, err := h.svc.Improve(c.UserContext(), identity(c), usecase.FieldRef{Kind: kind, Index: req.Index})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(v)
}

func (h *Handler) ExportResume(c *fiber.Ctx) error {
	exp, err := h.svc.ExportResume(c.UserContext(), identity(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, exp.ContentType)
	c.Set("X-Page-Count", strconv.Itoa(exp.Pages))
	c.Attachment(exp.FileName)
	return c.Send(exp.Data)
}

func (h *Handler) CreateCoverLetter(c *fiber.Ctx) error {
	var req model.CoverLetterInput
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid payload")
	}
	cl, err := h.svc.GenerateCoverLetter(c.UserContext(), identity(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cl)
}

func (h *Handler) ListCoverLetters(c *fiber.Ctx) error {
	list, err := h.svc.ListCoverLetters(c.UserContext(), identity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

func letterID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

func (h *Handler) GetCoverLetter(c *fiber.Ctx) error {
	id, err := letterID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid id")
	}
	cl, err := h.svc.CoverLetter(c.UserContext(), identity(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(cl)
}

func (h *Handler) CoverLetterPDF(c *fiber.Ctx) error {
	id, err := letterID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid id")
	}
	pdf, err := h.svc.CoverLetterPDF(c.UserContext(), identity(c), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment("cover-letter-" + id.String() + ".pdf")
	return c.Send(pdf)
}

func (h *Handler) DeleteCoverLetter(c *fiber.Ctx) error {
	id, err := letterID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteCoverLetter(c.UserContext(), identity(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
