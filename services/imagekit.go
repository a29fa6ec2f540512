package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"
)

var imagekitClient = &http.Client{Timeout: 10 * time.Second}

// imagekitBaseURL is overridable so tests can point at a local server.
var imagekitBaseURL = "https://api.imagekit.io/v1"

// DeleteFile removes an uploaded file from the image CDN by its file id.
// The CDN authenticates with the private key as a basic-auth username.
func DeleteFile(ctx context.Context, fileID string) error {
	privateKey := os.Getenv("IMAGEKIT_PRIVATE_KEY")
	if privateKey == "" {
		return fmt.Errorf("IMAGEKIT_PRIVATE_KEY environment variable is not set")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, imagekitBaseURL+"/files/"+fileID, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(privateKey, "")

	resp, err := imagekitClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("imagekit returned status %d", resp.StatusCode)
	}
	return nil
}
