package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ali506108/Chat-Service/internal/apperr"
	"github.com/Ali506108/Chat-Service/internal/models"
)

func (s *Server) createGroup(c *fiber.Ctx) error {
	var dto models.CreateGroupDto
	if err := c.BodyParser(&dto); err != nil {
		return fail(c, apperr.Invalid("malformed group body: %v", err))
	}
	g, err := s.groups.Create(c.Context(), &dto)
	if err != nil {
		return fail(c, err)
	}
	return created(c, g)
}

func (s *Server) getGroup(c *fiber.Ctx) error {
	g, err := s.groups.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, g)
}

func (s *Server) listGroups(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 10)
	groups, err := s.groups.List(c.Context(), page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, groups)
}

func (s *Server) updateGroup(c *fiber.Ctx) error {
	var dto models.CreateGroupDto
	if err := c.BodyParser(&dto); err != nil {
		return fail(c, apperr.Invalid("malformed group body: %v", err))
	}
	g, err := s.groups.Update(c.Context(), c.Params("id"), &dto)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, g)
}
