package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

type SupportHandler struct {
	Support SupportService
}

func NewSupportHandler(support SupportService) *SupportHandler {
	return &SupportHandler{Support: support}
}

type supportReq struct {
	Name    string `json:"nombre"`
	Email   string `json:"email"`
	Message string `json:"mensaje"`
}

// Send handles POST /api/soporte.
func (h *SupportHandler) Send(c echo.Context) error {
	var req supportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidBody})
	}

	// SMTP can be slow; allow more than the default request timeout.
	ctx, cancel := context.WithTimeout(c.Request().Context(), 4*requestTimeout)
	defer cancel()

	if err := h.Support.Send(ctx, req.Name, req.Email, req.Message); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Tu mensaje ha sido enviado con éxito. Nos pondremos en contacto contigo pronto.",
	})
}
