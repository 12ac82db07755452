package upload

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/IgnacioMeyer12/concesionaria-server/cmd/utils"
	"github.com/gorilla/mux"
)

type UploadHandler struct{}

func NewUploadHandler() *UploadHandler {
	return &UploadHandler{}
}

func (h *UploadHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/upload", h.HandleUpload).Methods("POST")
}

// RegisterStaticRoutes serves stored images from the root router, outside
// the /api prefix, so the URLs returned by HandleUpload resolve directly.
func (h *UploadHandler) RegisterStaticRoutes(router *mux.Router) {
	router.HandleFunc("/images/{filename}", h.ServeImage).Methods("GET")
}

// HandleUpload accepts one or more images in the "images" multipart field
// and returns their public URLs.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Error parsing form")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		utils.WriteError(w, http.StatusBadRequest, "No images provided")
		return
	}

	urls := make([]string, 0, len(files))
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Error processing image")
			return
		}

		imageURL, err := utils.SaveImage(file, fileHeader)
		file.Close()
		if err != nil {
			// Roll back the files already written for this request.
			for _, saved := range urls {
				utils.DeleteImage(saved)
			}
			utils.WriteError(w, http.StatusBadRequest, fmt.Sprintf("Error saving image: %v", err))
			return
		}
		urls = append(urls, imageURL)
	}

	utils.WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"urls": urls,
	})
}

func (h *UploadHandler) ServeImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	filename := vars["filename"]

	if containsDotDot(filename) {
		utils.WriteError(w, http.StatusBadRequest, "Invalid path")
		return
	}

	imagePath := filepath.Join(utils.ImagePath, filepath.Clean(filename))

	if _, err := os.Stat(imagePath); os.IsNotExist(err) {
		utils.WriteError(w, http.StatusNotFound, "Image not found")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Content-Type", getContentType(imagePath))

	http.ServeFile(w, r, imagePath)
}

func containsDotDot(v string) bool {
	return strings.Contains(v, "..") || strings.ContainsAny(v, `/\`)
}

func getContentType(filename string) string {
	switch filepath.Ext(filename) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
