package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/bsd-portfolio/config"
	"github.com/rpupo63/bsd-portfolio/models"
	"github.com/rs/zerolog/log"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// Mailer sends transactional email through Resend
type Mailer struct {
	apiKey     string
	from       string
	endpoint   string
	httpClient *http.Client
}

// NewMailer reads RESEND_API_KEY and RESEND_FROM_EMAIL. It returns nil when email is not configured,
// in which case callers skip notifications.
func NewMailer(cfg map[string]string) *Mailer {
	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	from := config.GetString(cfg, "RESEND_FROM_EMAIL", "")
	if apiKey == "" || from == "" {
		log.Warn().Msg("RESEND_API_KEY or RESEND_FROM_EMAIL not set, email notifications disabled")
		return nil
	}
	return &Mailer{
		apiKey:     apiKey,
		from:       from,
		endpoint:   resendEndpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Send delivers one HTML email to recipients
func (m *Mailer) Send(ctx context.Context, email ResendEmailRequest) error {
	if len(email.To) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	email.From = m.from

	jsonPayload, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}
	return nil
}

// ContactNotification builds the email sent to the site owner for a new contact submission
func ContactNotification(submission models.ContactSubmission, recipients []string) ResendEmailRequest {
	subject := strings.TrimSpace(submission.Subject)
	if subject == "" {
		subject = "New message"
	}

	var body strings.Builder
	body.WriteString("<h2>New case file from the contact form</h2>")
	fmt.Fprintf(&body, "<p><strong>From:</strong> %s &lt;%s&gt;</p>", html.EscapeString(submission.Name), html.EscapeString(submission.Email))
	fmt.Fprintf(&body, "<p><strong>Subject:</strong> %s</p>", html.EscapeString(subject))
	fmt.Fprintf(&body, "<p>%s</p>", strings.ReplaceAll(html.EscapeString(submission.Message), "\n", "<br>"))

	return ResendEmailRequest{
		To:      recipients,
		Subject: "[Portfolio] " + subject,
		Html:    body.String(),
		ReplyTo: submission.Email,
	}
}
