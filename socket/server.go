package socket

import (
	"context"
	"log"

	"stacks_server/models"
	"stacks_server/services"

	socketio "github.com/googollee/go-socket.io"
)

// Server streams conversation updates to connected clients. Clients join a
// room named after the conversation ID; every successful append pushes the
// full conversation snapshot to that room.
type Server struct {
	IO   *socketio.Server
	Chat *services.ChatService
}

// NewServer initializes the Socket.IO server and its event handlers
func NewServer(chatService *services.ChatService) *Server {
	s := &Server{
		IO:   socketio.NewServer(nil),
		Chat: chatService,
	}

	s.IO.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	// Clients join per-conversation rooms; leaving the room on screen
	// unmount is the unsubscribe.
	s.IO.OnEvent("/", "join", func(c socketio.Conn, data map[string]string) {
		conversationID := data["conversationId"]
		if conversationID == "" {
			log.Println("❌ Invalid conversationId in join request")
			return
		}
		log.Printf("👥 Socket %s joined conversation %s", c.ID(), conversationID)
		c.Join(conversationID)
	})

	s.IO.OnEvent("/", "leave", func(c socketio.Conn, data map[string]string) {
		if conversationID := data["conversationId"]; conversationID != "" {
			c.Leave(conversationID)
		}
	})

	// Message sends over the socket go through the same service path as
	// HTTP sends; the append itself triggers the room broadcast.
	s.IO.OnEvent("/", "sendMessage", func(c socketio.Conn, data map[string]string) {
		_, err := s.Chat.SendMessage(context.Background(), data["conversationId"], data["senderId"], data["senderName"], data["message"])
		if err != nil {
			log.Printf("❌ Socket send failed: %v", err)
			c.Emit("sendError", map[string]string{"error": err.Error()})
		}
	})

	s.IO.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", c.ID(), reason)
	})

	return s
}

// ConversationUpdated implements services.ChatEvents: retransmit the full
// snapshot to everyone in the conversation's room.
func (s *Server) ConversationUpdated(conversation models.Conversation) {
	s.IO.BroadcastToRoom("/", conversation.ConversationID, "conversationUpdated", conversation)
}
