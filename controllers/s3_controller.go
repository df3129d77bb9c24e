package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"stacks_server/services"
)

// S3Controller struct
type S3Controller struct {
	S3Service *services.S3Service
}

// NewS3Controller initializes the controller
func NewS3Controller(service *services.S3Service) *S3Controller {
	return &S3Controller{S3Service: service}
}

// HandleGeneratePresignedURL generates a presigned URL for S3 uploads
func (c *S3Controller) HandleGeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		return
	}

	if payload.FileName == "" || payload.FileType == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
		return
	}

	url, key, err := c.S3Service.GenerateUploadURL(r.Context(), payload.FileName, payload.FileType)
	if err != nil {
		log.Printf("❌ Error generating pre-signed URL: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to generate pre-signed URL"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url, "fileName": key})
}

// HandleGetPresignedReadURL generates a presigned URL for reading S3 objects
func (c *S3Controller) HandleGetPresignedReadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Key == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		return
	}

	url, err := c.S3Service.GenerateReadURL(r.Context(), payload.Key)
	if err != nil {
		log.Printf("❌ Error generating read pre-signed URL: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to generate read pre-signed URL"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
