package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"videotube-server/internal/model"
	"videotube-server/internal/model/requestresponse"
	"videotube-server/internal/security"
	"videotube-server/internal/util"
)

const maxJSONBodyBytes = 16 << 10

var validate = validator.New()

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(requestresponse.NewAPIResponse(statusCode, data, message)); err != nil {
		zap.L().Warn("ошибка кодирования ответа", zap.Error(err))
	}
}

func sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	util.HandleError(w, message, statusCode)
}

// decodeJSON : читает и валидирует тело запроса, при ошибке сам пишет 400
func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			sendErrorResponse(w, http.StatusRequestEntityTooLarge, "request body is too large")
			return false
		}
		sendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return validateRequest(w, target)
}

func validateRequest(w http.ResponseWriter, target interface{}) bool {
	if err := validate.Struct(target); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

// validationMessage : первая ошибка валидатора в читаемом виде
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return "invalid request"
	}
	fieldErr := validationErrors[0]
	field := strings.ToLower(fieldErr.Field()[:1]) + fieldErr.Field()[1:]
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min", "max":
		return fmt.Sprintf("%s must satisfy %s=%s", field, fieldErr.Tag(), fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// currentUser : пользователь, положенный в контекст JWTMiddleware
func currentUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	user, err := security.GetUserFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "unauthorized request")
		return nil, false
	}
	return user, true
}

// uuidParam : параметр пути, который должен быть UUID
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	parsed, err := parseUUID(chi.URLParam(r, name))
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
		return "", false
	}
	return parsed, true
}

// pageParams : ?page=&limit=, некорректные значения превращаются в 0 и нормализуются сервисом
func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

// formUpload : файл из multipart формы, nil если поле не передано
func formUpload(r *http.Request, field string) (*model.Upload, io.Closer, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return uploadFromPart(file, header), file, nil
}

func uploadFromPart(file multipart.File, header *multipart.FileHeader) *model.Upload {
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = util.ContentTypeFor(header.Filename)
	}
	return &model.Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	}
}

func closeQuietly(closers ...io.Closer) {
	for _, c := range closers {
		if c != nil {
			c.Close()
		}
	}
}

// parseMultipartForm : тело ограничено maxBytes, превышение -> 413
func parseMultipartForm(w http.ResponseWriter, r *http.Request, maxBytes int64) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			sendErrorResponse(w, http.StatusRequestEntityTooLarge, "request body is too large")
			return false
		}
		sendErrorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return false
	}
	return true
}

func parseUUID(value string) (string, error) {
	parsed, err := uuid.Parse(value)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}
