package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"stacks_server/services"
)

// SwipeController struct
type SwipeController struct {
	SwipeService *services.SwipeService
}

// NewSwipeController initializes the controller
func NewSwipeController(service *services.SwipeService) *SwipeController {
	return &SwipeController{SwipeService: service}
}

// HandleRecordSwipe - records a swipe and reports whether it completed a match
func (c *SwipeController) HandleRecordSwipe(w http.ResponseWriter, r *http.Request) {
	var request struct {
		SwiperID       string `json:"swiperId"`
		SwipedUserID   string `json:"swipedUserId"`
		Action         string `json:"action"`
		SwiperName     string `json:"swiperName"`
		SwipedUserName string `json:"swipedUserName"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	log.Printf("👆 %s swiped %s on %s", request.SwiperID, request.Action, request.SwipedUserID)

	result, err := c.SwipeService.RecordSwipe(r.Context(), request.SwiperID, request.SwipedUserID, request.Action, request.SwiperName, request.SwipedUserName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
