package service

import (
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/nikhilarora068/pharmacare-backend/internal/models"
)

// ContactService takes contact-form submissions and surfaces them on the
// notification feed. Messages are sanitized before they are stored anywhere.
type ContactService struct {
	feed      NotificationService
	sanitizer *bluemonday.Policy
}

func NewContactService(feed NotificationService) *ContactService {
	return &ContactService{
		feed:      feed,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *ContactService) Submit(ctx context.Context, req *models.ContactRequest) (*models.Notification, error) {

	message := s.sanitizer.Sanitize(req.Message)

	event := &models.NotificationEvent{
		Title:   "Contact Message",
		Message: fmt.Sprintf("%s <%s>: %s", s.sanitizer.Sanitize(req.Name), req.Email, message),
		Kind:    models.NotificationKindInfo,
	}

	return s.feed.Publish(ctx, event)
}
