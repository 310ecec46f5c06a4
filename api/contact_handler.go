package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/bsd-portfolio/database"
	"github.com/rpupo63/bsd-portfolio/errs"
	"github.com/rpupo63/bsd-portfolio/models"
	"github.com/rpupo63/bsd-portfolio/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const notifyTimeout = 30 * time.Second

// notifier delivers contact notifications
type notifier interface {
	Send(ctx context.Context, email services.ResendEmailRequest) error
}

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	contactRepo *database.ContactRepo
	notifier    notifier
	recipients  []string
	// sent, when set, receives the outcome of each background notification
	sent func(error)
}

func newContactHandler(contactRepo *database.ContactRepo, mailer *services.Mailer, recipients []string) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	h := contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		contactRepo: contactRepo,
		recipients:  recipients,
	}
	if mailer != nil {
		h.notifier = mailer
	}
	return h
}

// ContactPayload is the body of a public contact form submission
type ContactPayload struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject,omitempty" validate:"max=300"`
	Message string `json:"message" validate:"required,max=10000"`
}

// ContactUpdatePayload marks a submission read or unread
type ContactUpdatePayload struct {
	Read *bool `json:"read" validate:"required"`
}

// submitContact stores a contact form submission and notifies the site owner in the background
// @Summary Submit contact form
// @Tags Contact
// @Accept json
// @Produce json
// @Param contact body ContactPayload true "Contact message"
// @Success 201 {object} models.ContactSubmission
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid submission"
// @Router /contact [post]
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload ContactPayload
		if err := readJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		payload.Name = strings.TrimSpace(payload.Name)
		payload.Email = strings.TrimSpace(payload.Email)
		payload.Message = strings.TrimSpace(payload.Message)
		if err := validateStruct(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		submission := models.ContactSubmission{
			Name:    payload.Name,
			Email:   payload.Email,
			Subject: strings.TrimSpace(payload.Subject),
			Message: payload.Message,
		}
		if err := h.contactRepo.Add(&submission); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create contact", "contact submission", err))
			return
		}

		go h.notify(submission)

		h.responder.WriteStatus(w, http.StatusCreated, submission)
	}
}

// notify emails every configured recipient separately; failures are only logged
func (h contactHandler) notify(submission models.ContactSubmission) {
	if h.notifier == nil || len(h.recipients) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, recipient := range h.recipients {
		g.Go(func() error {
			return h.notifier.Send(ctx, services.ContactNotification(submission, []string{recipient}))
		})
	}

	var err error
	if sendErr := g.Wait(); sendErr != nil {
		apiErr := errs.NewNotificationError("email", sendErr)
		h.logger.Error().Str("error", apiErr.GetFullError()).Uint("contactID", submission.ID).Msg("contact notification failed")
		err = apiErr
	}
	if h.sent != nil {
		h.sent(err)
	}
}

// getAllContacts lists contact submissions; ?unread=true limits to unread ones
// @Summary Get contact submissions
// @Tags Contact
// @Produce json
// @Param unread query bool false "Only unread submissions"
// @Success 200 {array} models.ContactSubmission
// @Router /contacts [get]
func (h contactHandler) getAllContacts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		unreadOnly := strings.EqualFold(r.URL.Query().Get("unread"), "true")

		submissions, err := h.contactRepo.FindAll(unreadOnly)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find contacts", "contact submissions", err))
			return
		}
		h.responder.WriteJSON(w, submissions)
	}
}

// updateContact flags a submission read or unread
// @Summary Update contact submission
// @Tags Contact
// @Accept json
// @Produce json
// @Param contactID path int true "Contact ID"
// @Param update body ContactUpdatePayload true "Read flag"
// @Success 200 {object} models.ContactSubmission
// @Router /contacts/{contactID} [patch]
func (h contactHandler) updateContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contactID, err := uintParam(r, "contactID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload ContactUpdatePayload
		if err := readJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateStruct(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.contactRepo.FindByID(contactID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find contact", "contact submission", err))
			return
		}
		if err := h.contactRepo.SetRead(contactID, *payload.Read); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update contact", "contact submission", err))
			return
		}

		submission, err := h.contactRepo.FindByID(contactID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find contact", "contact submission", err))
			return
		}
		h.responder.WriteJSON(w, submission)
	}
}

// deleteContact removes a submission
// @Summary Delete contact submission
// @Tags Contact
// @Produce json
// @Param contactID path int true "Contact ID"
// @Success 200 {object} Envelope
// @Router /contacts/{contactID} [delete]
func (h contactHandler) deleteContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contactID, err := uintParam(r, "contactID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.contactRepo.FindByID(contactID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find contact", "contact submission", err))
			return
		}
		if err := h.contactRepo.Delete(contactID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete contact", "contact submission", err))
			return
		}
		h.responder.WriteMessage(w, "contact submission deleted successfully")
	}
}
