package api

import (
	"github.com/gofiber/fiber/v2"
)

func (s *Server) getMessage(c *fiber.Ctx) error {
	m, err := s.messages.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, m)
}

func (s *Server) listChatMessages(c *fiber.Ctx) error {
	msgs, err := s.messages.ListByChat(c.Context(), c.Params("chat_id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, msgs)
}

func (s *Server) recentChatMessages(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	msgs, err := s.messages.Recent(c.Context(), c.Params("chat_id"), limit)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, msgs)
}
