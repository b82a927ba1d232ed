package handler

import (
	"cmms-dashboard-be/internal/pkg/apperror"
	"cmms-dashboard-be/internal/pkg/logger"
	"cmms-dashboard-be/internal/pkg/serverutils"
	internalWS "cmms-dashboard-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// MessageTypeAnnouncement is the frame type of admin broadcasts.
const MessageTypeAnnouncement = "announcement"

// FeedbackHandler serves the websocket feed that carries builder toasts and feature events.
type FeedbackHandler struct {
	hub       *internalWS.Hub
	jwtSecret string
	logger    logger.ILogger
}

func NewFeedbackHandler(hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *FeedbackHandler {
	return &FeedbackHandler{
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

// ServeWs authenticates the handshake and hands the connection to the hub.
func (h *FeedbackHandler) ServeWs(c *fiber.Ctx) error {
	// Browsers cannot set headers on websocket handshakes, so the query wins
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return apperror.Unauthorized(apperror.CodeTokenInvalid, "Missing token (Query 'token' or Header 'Authorization')")
	}

	claims, err := serverutils.ParseToken(h.jwtSecret, tokenStr)
	if err != nil {
		h.logger.Warn("FeedbackHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err.Error()})
		return err
	}

	userID, ok := serverutils.UserIDFromClaims(claims)
	if !ok {
		return apperror.Unauthorized(apperror.CodeTokenInvalid, "Token missing user_id")
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(c *websocket.Conn) {
			h.logger.Info("FeedbackHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID.String()})
			internalWS.ServeWs(h.hub, c, userID)
			h.logger.Info("FeedbackHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID.String()})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// Broadcast pushes an admin announcement to every connected dashboard.
func (h *FeedbackHandler) Broadcast(c *fiber.Ctx) error {
	var req struct {
		Title   string `json:"title" validate:"required"`
		Message string `json:"message" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest(apperror.CodeInvalidRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	h.hub.Broadcast(internalWS.Message{
		Type: MessageTypeAnnouncement,
		Data: map[string]string{"title": req.Title, "message": req.Message},
	})
	return c.JSON(serverutils.SuccessResponse[any]("Broadcast queued", nil))
}

// Status reports how many dashboard sessions are connected to this instance.
func (h *FeedbackHandler) Status(c *fiber.Ctx) error {
	return c.JSON(serverutils.SuccessResponse("Feed status", fiber.Map{"clients": h.hub.ClientCount()}))
}

func (h *FeedbackHandler) RegisterRoutes(router fiber.Router) {
	feed := router.Group("/feed", serverutils.NewJwtMiddleware(h.jwtSecret), serverutils.AdminOnly)
	feed.Get("/status", h.Status)
	feed.Post("/broadcast", h.Broadcast)

	router.Get("/ws", h.ServeWs)
}
