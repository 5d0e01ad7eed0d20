package service

import (
	"context"
	"errors"
	"strings"

	"github.com/folio/folio-go/internal/model"
)

var ErrContactFieldsRequired = errors.New("name, email and message are required")

// ContactStore persists contact submissions.
type ContactStore interface {
	Create(ctx context.Context, c *model.Contact) error
}

// ContactService handles contact-form submissions.
type ContactService struct {
	repo ContactStore
}

// NewContactService creates a new ContactService.
func NewContactService(repo ContactStore) *ContactService {
	return &ContactService{repo: repo}
}

// Submit validates and stores a submission.
func (s *ContactService) Submit(ctx context.Context, req model.ContactRequest) (model.Contact, error) {
	c := model.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Message: strings.TrimSpace(req.Message),
	}
	if c.Name == "" || c.Email == "" || c.Message == "" {
		return model.Contact{}, ErrContactFieldsRequired
	}
	if !ValidEmail(c.Email) {
		return model.Contact{}, ErrInvalidEmail
	}

	if err := s.repo.Create(ctx, &c); err != nil {
		return model.Contact{}, err
	}
	return c, nil
}
