package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrTemplateNotFound = errors.New("template not found")

// BaseTemplateVariables are the substitution names every template can rely on;
// they are resolved from the contact at render time. A variable declared beyond
// this set renders literally unless the projection learns about it.
var BaseTemplateVariables = []string{"first_name", "full_name", "email", "company", "phone"}

type Template struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Variables []string  `json:"variables"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewTemplate(name, subject, body string, variables []string) (*Template, error) {
	t := &Template{
		ID:        uuid.New().String(),
		Name:      name,
		Subject:   subject,
		Body:      body,
		Variables: variables,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if t.Variables == nil {
		t.Variables = append([]string{}, BaseTemplateVariables...)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Template) Validate() error {
	if t.Name == "" {
		return errors.New("name is required")
	}
	if t.Subject == "" {
		return errors.New("subject is required")
	}
	if t.Body == "" {
		return errors.New("body is required")
	}
	return nil
}

type TemplateRepositoryInterface interface {
	Create(ctx context.Context, t *Template) error
	FindByID(ctx context.Context, id string) (*Template, error)
	List(ctx context.Context) ([]*Template, error)
	Update(ctx context.Context, t *Template) error
	Delete(ctx context.Context, id string) error
}
