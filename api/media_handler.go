package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/bsd-portfolio/database"
	"github.com/rpupo63/bsd-portfolio/errs"
	"github.com/rpupo63/bsd-portfolio/models"
	"github.com/rpupo63/bsd-portfolio/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// maxUploadBytes caps a single media upload
const maxUploadBytes = 20 << 20

// mediaStorage is the object store behind uploads
type mediaStorage interface {
	Put(ctx context.Context, filename, contentType string, body io.Reader, size int64) (services.StoredObject, error)
	Delete(ctx context.Context, key string) error
}

type mediaHandler struct {
	responder Responder
	logger    zerolog.Logger
	mediaRepo *database.MediaRepo
	storage   mediaStorage
}

func newMediaHandler(mediaRepo *database.MediaRepo, store *services.MediaStore) mediaHandler {
	logger := log.With().Str("handlerName", "mediaHandler").Logger()

	h := mediaHandler{
		responder: NewResponder(logger),
		logger:    logger,
		mediaRepo: mediaRepo,
	}
	if store != nil {
		h.storage = store
	}
	return h
}

func (h mediaHandler) requireStorage() error {
	if h.storage == nil {
		return errs.NewServiceUnreachableError("object storage", errors.New("S3_BUCKET is not configured"))
	}
	return nil
}

// uploadMedia stores a multipart file in object storage and records it
// @Summary Upload media
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param alt_text formData string false "Alt text"
// @Param caption formData string false "Caption"
// @Param tags formData string false "Comma separated tags"
// @Success 201 {object} models.Media
// @Failure 503 {object} ErrorResponse "Object storage not configured"
// @Router /media/upload [post]
func (h mediaHandler) uploadMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.requireStorage(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxErr.Limit))
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		stored, err := h.storage.Put(r.Context(), header.Filename, contentType, file, header.Size)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		media := models.Media{
			ObjectKey:   stored.Key,
			URL:         stored.URL,
			ContentType: contentType,
			Size:        header.Size,
			AltText:     strings.TrimSpace(r.FormValue("alt_text")),
			Caption:     strings.TrimSpace(r.FormValue("caption")),
			Tags:        parseTags(r.MultipartForm.Value["tags"]),
		}
		if err := h.mediaRepo.Add(&media); err != nil {
			// the object is orphaned without its row
			if delErr := h.storage.Delete(r.Context(), stored.Key); delErr != nil {
				h.logger.Warn().Err(delErr).Str("key", stored.Key).Msg("failed to remove orphaned object")
			}
			h.responder.WriteError(w, wrapDatabaseError("create media", "media", err))
			return
		}

		h.logger.Info().Str("key", media.ObjectKey).Int64("size", media.Size).Msg("media uploaded")
		h.responder.WriteStatus(w, http.StatusCreated, media)
	}
}

// getAllMedia lists uploaded media, newest first
// @Summary Get all media
// @Tags Media
// @Produce json
// @Success 200 {array} models.Media
// @Router /media [get]
func (h mediaHandler) getAllMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		media, err := h.mediaRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find media", "media", err))
			return
		}
		h.responder.WriteJSON(w, media)
	}
}

// deleteMedia removes the object and its record
// @Summary Delete media
// @Tags Media
// @Produce json
// @Param mediaID path string true "Media ID" format(uuid)
// @Success 200 {object} Envelope
// @Router /media/{mediaID} [delete]
func (h mediaHandler) deleteMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaID, err := uuid.Parse(chi.URLParam(r, "mediaID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid mediaID"))
			return
		}
		if err := h.requireStorage(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		media, err := h.mediaRepo.FindByID(mediaID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find media", "media", err))
			return
		}

		if err := h.storage.Delete(r.Context(), media.ObjectKey); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.mediaRepo.Delete(mediaID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete media", "media", err))
			return
		}

		h.responder.WriteMessage(w, "media deleted successfully")
	}
}

// parseTags accepts repeated tags fields as well as comma separated lists
func parseTags(values []string) []string {
	tags := []string{}
	seen := map[string]bool{}
	for _, value := range values {
		for _, tag := range strings.Split(value, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}
