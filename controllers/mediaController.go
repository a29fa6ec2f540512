package controllers

import (
	"log"
	"net/http"

	"civiclens-be/services"

	"github.com/gin-gonic/gin"
)

// DeleteImage removes an uploaded file from the image CDN. Used when a draft
// upload is abandoned before it was ever attached to a post.
func DeleteImage(c *gin.Context) {
	var input struct {
		FileID string `json:"fileId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.FileID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fileId is required"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := services.DeleteFile(ctx, input.FileID); err != nil {
		log.Println("Error deleting image:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
