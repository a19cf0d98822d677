package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
	"github.com/AryanshKukreja/court-status-service/internal/integrations/objectstorage"
)

// PhotoFormField имя поля multipart с фото
const PhotoFormField = "approval_photo"

var (
	// ErrPhotoTooLarge фото больше MaxApprovalPhotoBytes
	ErrPhotoTooLarge = errors.New("approval photo exceeds size limit")

	// ErrPhotoNotImage у файла не image/* тип
	ErrPhotoNotImage = errors.New("approval photo must be an image")
)

// PhotoUploader интерфейс загрузки фото в хранилище
type PhotoUploader interface {
	Put(ctx context.Context, prefix string, body []byte, contentType, originalName string) (*objectstorage.StoredObject, error)
}

// Photo файл из multipart формы
type Photo struct {
	Name        string
	ContentType string
	Body        []byte
}

// ParseMultipart разбирает multipart или обычную форму
func ParseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxApprovalPhotoBytes+1<<20)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		return r.ParseMultipartForm(domain.MaxApprovalPhotoBytes)
	}
	return r.ParseForm()
}

// ReadPhoto читает фото из уже разобранной формы, nil если файла нет
func ReadPhoto(r *http.Request) (*Photo, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	file, header, err := r.FormFile(PhotoFormField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read form file: %w", err)
	}
	defer file.Close()

	if header.Size > domain.MaxApprovalPhotoBytes {
		return nil, ErrPhotoTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrPhotoNotImage
	}

	body, err := io.ReadAll(io.LimitReader(file, domain.MaxApprovalPhotoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	if len(body) > domain.MaxApprovalPhotoBytes {
		return nil, ErrPhotoTooLarge
	}

	return &Photo{
		Name:        header.Filename,
		ContentType: contentType,
		Body:        body,
	}, nil
}

// UploadPhoto загружает фото под префиксом approval-photos/
func UploadPhoto(ctx context.Context, uploader PhotoUploader, photo *Photo) (*domain.Attachment, error) {
	if photo == nil {
		return nil, nil
	}

	stored, err := uploader.Put(ctx, domain.ApprovalPhotoPrefix, photo.Body, photo.ContentType, photo.Name)
	if err != nil {
		return nil, err
	}

	return &domain.Attachment{
		Key:          stored.Key,
		URL:          stored.URL,
		OriginalName: photo.Name,
	}, nil
}
