package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/Ali506108/Chat-Service/internal/models"
	"github.com/Ali506108/Chat-Service/internal/ws"
)

// GroupService is the group management surface the handlers consume.
type GroupService interface {
	Create(ctx context.Context, dto *models.CreateGroupDto) (*models.Group, error)
	GetByID(ctx context.Context, groupID string) (*models.Group, error)
	Update(ctx context.Context, groupID string, dto *models.CreateGroupDto) (*models.Group, error)
	List(ctx context.Context, page, size int) ([]*models.Group, error)
}

// MessageQueries is the read side of the message service.
type MessageQueries interface {
	Get(ctx context.Context, id string) (*models.Message, error)
	ListByChat(ctx context.Context, chatID string) ([]*models.Message, error)
	Recent(ctx context.Context, chatID string, limit int) ([]*models.Message, error)
}

// DirectService registers and resolves direct chats.
type DirectService interface {
	Create(ctx context.Context, senderID, receiverID string) (*models.Direct, error)
	GetByID(ctx context.Context, chatID string) (*models.Direct, error)
}

type Server struct {
	groups   GroupService
	messages MessageQueries
	directs  DirectService
	hub      *ws.Hub
	sender   ws.MessageSender
	wsOpts   ws.Options
	log      *zap.SugaredLogger
}

// NewServer builds the fiber app with all routes mounted.
func NewServer(groups GroupService, messages MessageQueries, directs DirectService,
	hub *ws.Hub, sender ws.MessageSender, wsOpts ws.Options, log *zap.SugaredLogger) *fiber.App {

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		groups:   groups,
		messages: messages,
		directs:  directs,
		hub:      hub,
		sender:   sender,
		wsOpts:   wsOpts,
		log:      log,
	}

	v1 := app.Group("/v1")
	v1.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1.Get("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	v1.Get("/ws", websocket.New(s.handleWS))

	api := app.Group("/api/v1")

	groupsR := api.Group("/groups")
	groupsR.Post("/", s.createGroup)
	groupsR.Get("/", s.listGroups)
	groupsR.Get("/:id", s.getGroup)
	groupsR.Put("/:id", s.updateGroup)

	api.Get("/messages/:id", s.getMessage)
	api.Get("/chats/:chat_id/messages", s.listChatMessages)
	api.Get("/chats/:chat_id/messages/recent", s.recentChatMessages)

	directsR := api.Group("/directs")
	directsR.Post("/", s.createDirect)
	directsR.Get("/:id", s.getDirect)

	return app
}

func (s *Server) handleWS(conn *websocket.Conn) {
	sess := ws.NewSession(conn, s.hub, s.sender, s.log, s.wsOpts)
	sess.Run()
}
