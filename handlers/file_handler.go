package handlers

import (
	"net/http"
	"os"
)

// UploadPhoto routes a damage-photo upload to GCS in production and
// local disk in development. Cloud Run sets K_SERVICE; either that,
// credentials, or USE_GCS=true selects the bucket path.
func UploadPhoto(w http.ResponseWriter, r *http.Request) {
	useGCS := os.Getenv("USE_GCS") == "true" ||
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" ||
		os.Getenv("K_SERVICE") != ""

	if useGCS {
		UploadPhotoGCS(w, r)
	} else {
		UploadPhotoLocal(w, r)
	}
}
