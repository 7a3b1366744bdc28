package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"
	
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog/log"
)

const (
	ProductFolder      = "products"
	CustomOrdersFolder = "custom-orders"
	
	cloudinaryHost = "res.cloudinary.com"
	requestTimeout = 30 * time.Second
)

type CloudinaryStore struct {
	*cloudinary.Cloudinary
}

func (cld *CloudinaryStore) UploadFile(file []byte, filename string, folder string) (string, error) {
	uploadParams := uploader.UploadParams{
		Folder:         folder,
		PublicID:       strings.TrimSuffix(filename, filepath.Ext(filename)),
		UniqueFilename: api.Bool(false),
		Overwrite:      api.Bool(true),
	}
	
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	
	result, err := cld.Upload.Upload(ctx, bytes.NewReader(file), uploadParams)
	if err != nil {
		return "", fmt.Errorf("failed to upload file to cloudinary: %w", err)
	}
	
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected upload: %s", result.Error.Message)
	}
	
	return result.SecureURL, nil
}

func (cld *CloudinaryStore) DeleteFile(publicID string, folder string) error {
	fullPublicID := publicID
	if folder != "" {
		fullPublicID = fmt.Sprintf("%s/%s", folder, publicID)
	}
	
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	
	result, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:   fullPublicID,
		Invalidate: api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from cloudinary: %w", err)
	}
	
	// "not found" means the asset is already gone.
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("cloudinary could not delete %s: %s", fullPublicID, result.Result)
	}
	
	return nil
}

// PublicIDFromURL recovers the public id of an asset uploaded into folder
// from its delivery url, e.g. https://res.cloudinary.com/x/image/upload/v1/products/a-b.jpg
// gives "a-b". Urls pointing anywhere else report false.
func PublicIDFromURL(rawURL, folder string) (string, bool) {
	if !strings.Contains(rawURL, cloudinaryHost) {
		return "", false
	}
	
	marker := "/" + folder + "/"
	i := strings.LastIndex(rawURL, marker)
	if i == -1 {
		return "", false
	}
	
	name := rawURL[i+len(marker):]
	name = strings.TrimSuffix(name, path.Ext(name))
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	
	return name, true
}

func NewCloudinaryStore(url string) FileStore {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create cloudinary store 😣")
	}
	
	cld.Config.URL.Secure = true
	
	return &CloudinaryStore{cld}
}
