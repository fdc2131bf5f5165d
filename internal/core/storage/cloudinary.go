package storage

import (
	"context"
	"errors"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore raw 资源模式上传到 resumes/ 目录
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(url string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, err
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       "resumes",
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}
	if res.SecureURL == "" {
		return "", errors.New("upload failed with no result")
	}
	return res.SecureURL, nil
}
