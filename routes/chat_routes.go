package routes

import (
	"stacks_server/controllers"
	"stacks_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for chat operations under /api/chat
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService) {
	controller := controllers.NewChatController(chatService)

	chatRouter := r.PathPrefix("/api/chat").Subrouter()
	chatRouter.HandleFunc("/message", controller.HandleSendMessage).Methods("POST")
	chatRouter.HandleFunc("/conversations", controller.HandleListConversations).Methods("GET")
	chatRouter.HandleFunc("/conversations", controller.HandleStartConversation).Methods("POST")
	chatRouter.HandleFunc("/conversations/{conversationId}", controller.HandleGetConversation).Methods("GET")
}
