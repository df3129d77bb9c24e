package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"stacks_server/services"

	"github.com/gorilla/mux"
)

// ChatController struct
type ChatController struct {
	ChatService *services.ChatService
}

// NewChatController initializes the chat controller
func NewChatController(service *services.ChatService) *ChatController {
	return &ChatController{ChatService: service}
}

// HandleSendMessage - append a message to a conversation
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ConversationID string `json:"conversationId"`
		SenderID       string `json:"senderId"`
		SenderName     string `json:"senderName"`
		Message        string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	log.Printf("📩 Message from %s in conversation %s", request.SenderID, request.ConversationID)

	message, err := c.ChatService.SendMessage(r.Context(), request.ConversationID, request.SenderID, request.SenderName, request.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, message)
}

// HandleGetConversation - fetch a full conversation document
func (c *ChatController) HandleGetConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := mux.Vars(r)["conversationId"]

	conversation, err := c.ChatService.GetConversation(r.Context(), conversationID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, conversation)
}

// HandleListConversations - list all conversations for a user
func (c *ChatController) HandleListConversations(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	conversations, err := c.ChatService.ListConversationsForUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, conversations)
}

// HandleStartConversation - find or create the direct conversation for a pair
func (c *ChatController) HandleStartConversation(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID      string `json:"userId"`
		UserName    string `json:"userName"`
		PartnerID   string `json:"partnerId"`
		PartnerName string `json:"partnerName"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	conversation, created, err := c.ChatService.FindOrCreateDirectConversation(r.Context(), request.UserID, request.PartnerID, request.UserName, request.PartnerName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, conversation)
}
