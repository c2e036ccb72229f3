package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wakeup-cafe/config"

	"github.com/gin-gonic/gin"
)

var allowedImageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// SaveUploadedImage stages an uploaded image under the configured upload
// dir and returns its local path, for handing off to Cloudinary.
func SaveUploadedImage(c *gin.Context, file *multipart.FileHeader, subDir string) (string, error) {
	if file.Size > 5*1024*1024 {
		return "", errors.New("file too large (max 5MB)")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range allowedImageExts {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", errors.New("invalid file type")
	}

	uploadDir := filepath.Join(config.AppConfig.UploadDir, subDir)
	if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d_%s", time.Now().Unix(), strings.ReplaceAll(file.Filename, " ", "_"))
	fullPath := filepath.Join(uploadDir, filename)

	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}

func DeleteFile(path string) {
	if path != "" {
		os.Remove(path)
	}
}
