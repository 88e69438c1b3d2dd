package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakline-studio/crm-backend/internal/entity"
)

func TestInterpolate(t *testing.T) {
	out := Interpolate("Hi {{first_name}}, from {{company}}", map[string]string{
		"first_name": "Ama",
		"company":    "Brownstone",
	})
	assert.Equal(t, "Hi Ama, from Brownstone", out)
}

func TestInterpolateUnknownPlaceholderLeftVerbatim(t *testing.T) {
	out := Interpolate("Hello {{unknown}} and {{first_name}}", map[string]string{
		"first_name": "Ama",
	})
	assert.Equal(t, "Hello {{unknown}} and Ama", out)
}

func TestInterpolateEmptyValue(t *testing.T) {
	out := Interpolate("Hi {{first_name}},", map[string]string{"first_name": ""})
	assert.Equal(t, "Hi ,", out)
}

func TestInterpolateNoPlaceholders(t *testing.T) {
	assert.Equal(t, "plain text", Interpolate("plain text", map[string]string{"a": "b"}))
}

func TestInterpolateRepeatedPlaceholder(t *testing.T) {
	out := Interpolate("{{name}} {{name}}", map[string]string{"name": "x"})
	assert.Equal(t, "x x", out)
}

func TestContactVars(t *testing.T) {
	contact := &entity.Contact{
		Email:   "ama@brownstone.example",
		Name:    "Ama Mensah",
		Company: "Brownstone",
		Phone:   "+233200000000",
	}

	vars := ContactVars(contact)
	assert.Equal(t, "Ama", vars["first_name"])
	assert.Equal(t, "Ama Mensah", vars["full_name"])
	assert.Equal(t, "ama@brownstone.example", vars["email"])
	assert.Equal(t, "Brownstone", vars["company"])
	assert.Equal(t, "+233200000000", vars["phone"])
}

func TestContactVarsNoName(t *testing.T) {
	vars := ContactVars(&entity.Contact{Email: "a@b.example"})
	assert.Equal(t, "", vars["first_name"])
	assert.Equal(t, "", vars["full_name"])
}
