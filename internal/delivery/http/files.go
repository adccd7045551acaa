package http

import (
	"encoding/base64"
	"net/http"
	"time"

	"storefront-service/internal/domain/errs"
)

type uploadBlobRequest struct {
	FileName   string `json:"fileName"`
	Base64Data string `json:"base64Data"`
}

type uploadFileRequest struct {
	Base64Data string `json:"base64Data"`
}

type uploadFileAutoRequest struct {
	DirectoryName string `json:"directoryName"`
	FileName      string `json:"fileName"`
	Base64Data    string `json:"base64Data"`
}

func (s *Server) uploadBlob(w http.ResponseWriter, r *http.Request) {
	var req uploadBlobRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.FileName == "" || req.Base64Data == "" {
		respondError(w, errs.Validation("FileName and Base64Data are required"))
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Base64Data)
	if err != nil {
		respondError(w, errs.Parse("Invalid base64 data format", err))
		return
	}

	ctx, cancel := s.opCtx(r)
	defer cancel()

	blobURL, err := s.blobs.Upload(ctx, req.FileName, data)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message":  "Blob uploaded successfully",
		"fileName": req.FileName,
		"blobUrl":  blobURL,
	})
}

func (s *Server) deleteBlob(w http.ResponseWriter, r *http.Request) {
	blobURI := r.URL.Query().Get("uri")
	if blobURI == "" {
		respondError(w, errs.Validation("Parameter 'uri' is required"))
		return
	}

	ctx, cancel := s.opCtx(r)
	defer cancel()

	if err := s.blobs.Delete(ctx, blobURI); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Blob deleted successfully"})
}

func (s *Server) uploadFile(w http.ResponseWriter, r *http.Request) {
	directoryName := r.PathValue("directoryName")
	fileName := r.PathValue("fileName")

	var req uploadFileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Base64Data == "" {
		respondError(w, errs.Validation("Base64Data is required"))
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Base64Data)
	if err != nil {
		respondError(w, errs.Parse("Invalid base64 data format", err))
		return
	}

	ctx, cancel := s.opCtx(r)
	defer cancel()

	if err := s.documents.Upload(ctx, directoryName, fileName, data); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":       "File uploaded successfully",
		"directoryName": directoryName,
		"fileName":      fileName,
		"fileSize":      len(data),
	})
}

// uploadFileAuto stores a file without an explicit directory in the path; the
// directory comes from the body and falls back to "uploads".
func (s *Server) uploadFileAuto(w http.ResponseWriter, r *http.Request) {
	var req uploadFileAutoRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.FileName == "" || req.Base64Data == "" {
		respondError(w, errs.Validation("FileName and Base64Data are required"))
		return
	}

	directoryName := req.DirectoryName
	if directoryName == "" {
		directoryName = "uploads"
	}

	data, err := base64.StdEncoding.DecodeString(req.Base64Data)
	if err != nil {
		respondError(w, errs.Parse("Invalid base64 data format", err))
		return
	}

	ctx, cancel := s.opCtx(r)
	defer cancel()

	if err := s.documents.Upload(ctx, directoryName, req.FileName, data); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":       "File uploaded successfully",
		"directoryName": directoryName,
		"fileName":      req.FileName,
		"fileSize":      len(data),
	})
}

func (s *Server) downloadFile(w http.ResponseWriter, r *http.Request) {
	directoryName := r.PathValue("directoryName")
	fileName := r.PathValue("fileName")

	ctx, cancel := s.opCtx(r)
	defer cancel()

	data, err := s.documents.Download(ctx, directoryName, fileName)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":       "File downloaded successfully",
		"directoryName": directoryName,
		"fileName":      fileName,
		"base64Data":    base64.StdEncoding.EncodeToString(data),
		"fileSize":      len(data),
	})
}

func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	directoryName := r.PathValue("directoryName")

	ctx, cancel := s.opCtx(r)
	defer cancel()

	files, err := s.documents.List(ctx, directoryName)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":       "Files listed successfully",
		"directoryName": directoryName,
		"files":         files,
		"count":         len(files),
	})
}

// fileInfo aggregates a directory listing into count, total size and the most
// recently modified file.
func (s *Server) fileInfo(w http.ResponseWriter, r *http.Request) {
	directoryName := r.PathValue("directoryName")

	ctx, cancel := s.opCtx(r)
	defer cancel()

	files, err := s.documents.List(ctx, directoryName)
	if err != nil {
		respondError(w, err)
		return
	}

	var totalSize int64
	var latestFile any
	var latest time.Time
	for _, f := range files {
		totalSize += f.Size
		if f.LastModified.After(latest) {
			latest = f.LastModified
			latestFile = f.Name
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":       "File information retrieved successfully",
		"directoryName": directoryName,
		"fileCount":     len(files),
		"totalSize":     totalSize,
		"latestFile":    latestFile,
		"files":         files,
	})
}

func (s *Server) deleteFile(w http.ResponseWriter, r *http.Request) {
	directoryName := r.PathValue("directoryName")
	fileName := r.PathValue("fileName")

	ctx, cancel := s.opCtx(r)
	defer cancel()

	if err := s.documents.Delete(ctx, directoryName, fileName); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "File deleted successfully"})
}
