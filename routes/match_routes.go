package routes

import (
	"stacks_server/controllers"
	"stacks_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for match reads under /api/matches
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/api/matches").Subrouter()
	matchRouter.HandleFunc("", controller.HandleGetMatches).Methods("GET")
	matchRouter.HandleFunc("/pair/{userA}/{userB}", controller.HandleGetMatchByPair).Methods("GET")
}
