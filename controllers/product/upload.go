package productControllers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const productPublicPath = "/uploads/products"

// saveUploadedImages stores every "images" multipart file under the
// uploads dir and returns the public URLs. A request without multipart
// content yields an empty slice and no error.
func saveUploadedImages(c *gin.Context, uploadDir string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}

	saveDir := filepath.Join(uploadDir, "products")
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create upload folder: %w", err)
	}

	var urls []string
	for _, file := range files {
		ext := filepath.Ext(file.Filename)
		base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
		base = strings.ReplaceAll(base, " ", "_")

		filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)
		if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
			return nil, fmt.Errorf("failed to save image: %w", err)
		}
		urls = append(urls, fmt.Sprintf("%s/%s", productPublicPath, filename))
	}
	return urls, nil
}
