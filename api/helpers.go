package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	
	"github.com/jplus/jstore-api/internal/storage"
	"github.com/rs/zerolog/log"
)

const (
	defaultPageSize = 24
	maxPageSize     = 100
)

type paginationQuery struct {
	Page     int64 `form:"page" binding:"omitempty,min=1"`
	PageSize int64 `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (q *paginationQuery) limitOffset() (limit int64, offset int64) {
	if q.Page < 1 {
		q.Page = 1
	}
	
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	
	return q.PageSize, (q.Page - 1) * q.PageSize
}

func totalPages(totalCount, pageSize int64) int64 {
	if totalCount == 0 || pageSize < 1 {
		return 1
	}
	
	return (totalCount + pageSize - 1) / pageSize
}

// proxiedImageURL routes a remote image through the image proxy.
func proxiedImageURL(imageURL *string) *string {
	if imageURL == nil || *imageURL == "" {
		return nil
	}
	
	proxied := "/v1/img?url=" + url.QueryEscape(*imageURL)
	return &proxied
}

func readFormFile(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	
	return data, nil
}

// uploadImage optimises an uploaded image and stores it under folder/filename.
// Images that cannot be decoded are stored as sent.
func (server *Server) uploadImage(file *multipart.FileHeader, filename string, folder string) (string, error) {
	data, err := readFormFile(file)
	if err != nil {
		return "", err
	}
	
	optimized, err := storage.OptimizeImage(data)
	if err != nil {
		log.Warn().Err(err).Str("file", file.Filename).Msg("image optimisation skipped")
		optimized = data
	}
	
	uploadedURL, err := server.fileStore.UploadFile(optimized, filename, folder)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	
	return uploadedURL, nil
}
