package middlewares

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Renal37/smm-storefront/internal/models"
)

// MaxUploadSize ограничивает размер формы с чеком.
const MaxUploadSize = 10 << 20

// MultipartMiddleware проверяет, что тело - multipart/form-data, и разбирает форму.
func MultipartMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			WriteError(w, http.StatusUnsupportedMediaType, "Content-Type is not multipart/form-data")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
		if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %s", err.Error()))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetReceiptFromForm читает файл из поля field. Отсутствие файла не ошибка: возвращается nil.
func GetReceiptFromForm(r *http.Request, field string) (*models.Receipt, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	return &models.Receipt{
		FileName:    header.Filename,
		ContentType: contentType(header),
		Data:        data,
	}, nil
}

func contentType(header *multipart.FileHeader) string {
	if ct := strings.TrimSpace(header.Header.Get("Content-Type")); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
