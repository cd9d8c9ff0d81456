package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

// UploadPhotoGCS streams a damage photo into the configured Cloud
// Storage bucket and returns its public URL.
func UploadPhotoGCS(w http.ResponseWriter, r *http.Request) {
	bucketName := os.Getenv("GCS_BUCKET")
	if bucketName == "" {
		http.Error(w, "GCS_BUCKET not configured", http.StatusInternalServerError)
		return
	}

	if err := r.ParseMultipartForm(20 << 20); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !photoExtensions[ext] {
		http.Error(w, "unsupported file type: "+ext, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	client, err := storage.NewClient(ctx)
	if err != nil {
		http.Error(w, "storage client: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer client.Close()

	objectName := fmt.Sprintf("damage-photos/%s-%s",
		time.Now().Format("20060102-150405"), filepath.Base(header.Filename))

	wc := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = header.Header.Get("Content-Type")
	if _, err := io.Copy(wc, file); err != nil {
		wc.Close()
		http.Error(w, "failed to upload file: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := wc.Close(); err != nil {
		http.Error(w, "failed to finalize upload: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"url":      fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectName),
		"filename": objectName,
	})
}
