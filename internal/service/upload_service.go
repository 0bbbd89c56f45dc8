package service

import (
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"nexfolio_backend/pkg/utils/storage"
	"nexfolio_backend/pkg/utils/validation"
)

type UploadedImage struct {
	URL      string
	Filename string
}

type UploadService struct {
	store storage.Storage
}

func NewUploadService(store storage.Storage) *UploadService {
	return &UploadService{store: store}
}

// UploadImage validates the declared type and size of file, stores it under a
// fresh unique name and returns where it can be fetched.
func (s *UploadService) UploadImage(ctx context.Context, userID uint, file *multipart.FileHeader) (*UploadedImage, error) {
	const failMsg = "Failed to upload image"

	if err := validation.ValidateImage(file); err != nil {
		if errors.Is(err, validation.ErrFileRequired) ||
			errors.Is(err, validation.ErrFileType) ||
			errors.Is(err, validation.ErrFileSize) {
			return nil, Validation(err.Error())
		}
		return nil, Internal(failMsg, err)
	}

	src, err := file.Open()
	if err != nil {
		return nil, Internal(failMsg, err)
	}
	defer src.Close()

	filename := uuid.NewString() + filepath.Ext(file.Filename)

	url, err := s.store.Put(ctx, storage.Object{
		Name:        filename,
		ContentType: file.Header.Get("Content-Type"),
		Owner:       "user-" + strconv.FormatUint(uint64(userID), 10),
		Body:        src,
	})
	if err != nil {
		return nil, Internal(failMsg, err)
	}

	return &UploadedImage{URL: url, Filename: filename}, nil
}
