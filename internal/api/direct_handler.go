package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ali506108/Chat-Service/internal/apperr"
)

type createDirectRequest struct {
	SenderUserID   string `json:"senderUserId"`
	ReceiverUserID string `json:"receiverUserId"`
}

func (s *Server) createDirect(c *fiber.Ctx) error {
	var req createDirectRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperr.Invalid("malformed direct chat body: %v", err))
	}
	d, err := s.directs.Create(c.Context(), req.SenderUserID, req.ReceiverUserID)
	if err != nil {
		return fail(c, err)
	}
	return created(c, d)
}

func (s *Server) getDirect(c *fiber.Ctx) error {
	d, err := s.directs.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, d)
}
