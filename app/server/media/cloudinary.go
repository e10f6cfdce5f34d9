package media

import (
	"college-portal/app/server/constants"
	"context"
	"fmt"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// 图床侧缩放到 1000x1000 以内（保持比例），并自动调整质量
var cloudinaryTransformation = fmt.Sprintf("c_limit,h_%d,w_%d/q_auto", constants.MediaMaxDimension, constants.MediaMaxDimension)

type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}

	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, upload *Upload) (*Object, error) {
	res, err := s.cld.Upload.Upload(ctx, upload.Body, uploader.UploadParams{
		PublicID:       uuid.NewString(),
		Folder:         s.folder,
		Transformation: cloudinaryTransformation,
		AllowedFormats: api.CldAPIArray(constants.MediaAllowedFormats),
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}

	if res.SecureURL == "" || res.PublicID == "" {
		return nil, ErrBadResult
	}

	return &Object{URL: res.SecureURL, Ref: res.PublicID}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, ref string) error {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: ref})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", res.Error.Message)
	}
	if res.Result != "ok" {
		return fmt.Errorf("cloudinary destroy: %s", res.Result)
	}

	return nil
}
