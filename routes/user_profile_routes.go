package routes

import (
	"stacks_server/controllers"
	"stacks_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up routes for profile operations under /api/profiles
func RegisterUserProfileRoutes(r *mux.Router, userProfileService *services.UserProfileService) {
	controller := controllers.NewUserProfileController(userProfileService)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()
	profileRouter.HandleFunc("", controller.HandleCreateProfile).Methods("POST")
	profileRouter.HandleFunc("/discovery", controller.HandleGetDiscovery).Methods("GET")
	profileRouter.HandleFunc("/{userId}", controller.HandleGetProfile).Methods("GET")
	profileRouter.HandleFunc("/{userId}", controller.HandleUpdateProfile).Methods("PATCH")
	profileRouter.HandleFunc("/{userId}", controller.HandleDeleteProfile).Methods("DELETE")
	profileRouter.HandleFunc("/{userId}/image", controller.HandleSetProfileImage).Methods("PUT")
}
