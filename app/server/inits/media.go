package inits

import (
	"college-portal/app/server/config"
	"college-portal/app/server/constants"
	"college-portal/app/server/media"
	"context"
	"fmt"
)

func Media(ctx context.Context, cfg *config.Config) (media.Store, error) {
	switch cfg.Media.Provider {
	case constants.MediaProviderCloudinary:
		store, err := media.NewCloudinaryStore(
			cfg.Media.CloudinaryCloudName,
			cfg.Media.CloudinaryAPIKey,
			cfg.Media.CloudinaryAPISecret,
			cfg.Media.CloudinaryFolder,
		)
		if err != nil {
			return nil, fmt.Errorf("init cloudinary: %w", err)
		}
		return store, nil
	case constants.MediaProviderS3:
		store, err := media.NewS3Store(ctx, media.S3Options{
			Region:    cfg.Media.S3Region,
			AccessKey: cfg.Media.S3AccessKey,
			SecretKey: cfg.Media.S3SecretKey,
			Endpoint:  cfg.Media.S3Endpoint,
			Bucket:    cfg.Media.S3Bucket,
			PublicURL: cfg.Media.S3PublicURL,
			Folder:    constants.MediaDefaultFolder,
		})
		if err != nil {
			return nil, fmt.Errorf("init s3: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown media provider: %s", cfg.Media.Provider)
	}
}
