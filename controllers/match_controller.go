package controllers

import (
	"net/http"

	"stacks_server/services"

	"github.com/gorilla/mux"
)

// MatchController struct
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController initializes the controller
func NewMatchController(service *services.MatchService) *MatchController {
	return &MatchController{MatchService: service}
}

// HandleGetMatches - fetch all matches for a user
func (c *MatchController) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	matches, err := c.MatchService.GetMatchesForUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, matches)
}

// HandleGetMatchByPair - fetch the match for a specific pair of users
func (c *MatchController) HandleGetMatchByPair(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userA := vars["userA"]
	userB := vars["userB"]

	match, err := c.MatchService.GetMatchByPair(r.Context(), userA, userB)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, match)
}
