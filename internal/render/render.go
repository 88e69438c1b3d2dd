package render

import (
	"regexp"

	"github.com/oakline-studio/crm-backend/internal/entity"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// Interpolate replaces every {{name}} placeholder whose name exists in vars.
// Unknown placeholders are left verbatim and values are substituted as-is, so
// callers must only feed plain-text values, never contact-controlled HTML.
// It never fails.
func Interpolate(text string, vars map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if value, ok := vars[name]; ok {
			return value
		}
		return match
	})
}

// ContactVars is the fixed projection of a contact into template variables.
// A variable a template declares beyond this set renders literally until the
// projection learns about it.
func ContactVars(c *entity.Contact) map[string]string {
	return map[string]string{
		"first_name": c.FirstName(),
		"full_name":  c.Name,
		"email":      c.Email,
		"company":    c.Company,
		"phone":      c.Phone,
	}
}
