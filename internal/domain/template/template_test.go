//go:build unit

package template_test

import (
	"testing"

	"github.com/coastalprograms/swms-engine/internal/domain/template"
	"github.com/coastalprograms/swms-engine/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeTemplate() template.EmailTemplate {
	return template.EmailTemplate{
		CampaignType: "reminder_14",
		Name:         "SWMS 14 day reminder",
		Subject:      "SWMS due for {{.JobName}}",
		HTMLBody:     `<p>Hi {{.ContractorName}},</p><p><a href="{{.PortalURL}}">Submit your SWMS</a> before {{.DueDate}}.</p>`,
		TextBody:     "Hi {{.ContractorName}}, submit your SWMS at {{.PortalURL}} before {{.DueDate}}.",
		IsActive:     true,
	}
}

func vars() template.Variables {
	return template.StandardVariables(
		"Dana Smith", "Tower Crane Install", "14 Mount St",
		"21 Mar 2025", "https://portal.example.com/portal/abc", "08 9000 0000", "admin@example.com",
	)
}

func TestRender(t *testing.T) {
	t.Run("substitutes all variables", func(t *testing.T) {
		out, err := template.Render(activeTemplate(), vars())
		require.NoError(t, err)

		assert.Equal(t, "SWMS due for Tower Crane Install", out.Subject)
		assert.Contains(t, out.HTML, "Hi Dana Smith,")
		assert.Contains(t, out.HTML, `href="https://portal.example.com/portal/abc"`)
		assert.Contains(t, out.Text, "before 21 Mar 2025")
	})

	t.Run("inactive template is a template error", func(t *testing.T) {
		tpl := activeTemplate()
		tpl.IsActive = false

		_, err := template.Render(tpl, vars())
		assert.ErrorIs(t, err, template.ErrInactive)
		assert.ErrorIs(t, err, errs.ErrTemplate)
	})

	t.Run("missing variable is a template error", func(t *testing.T) {
		tpl := activeTemplate()
		tpl.TextBody = "Site contact: {{.SiteSupervisor}}"

		_, err := template.Render(tpl, vars())
		assert.ErrorIs(t, err, errs.ErrTemplate)
	})

	t.Run("malformed template is a template error", func(t *testing.T) {
		tpl := activeTemplate()
		tpl.Subject = "SWMS due for {{.JobName"

		_, err := template.Render(tpl, vars())
		assert.ErrorIs(t, err, errs.ErrTemplate)
	})

	t.Run("html body escapes contractor supplied values", func(t *testing.T) {
		v := vars()
		v["ContractorName"] = `<script>alert("x")</script>`

		out, err := template.Render(activeTemplate(), v)
		require.NoError(t, err)
		assert.NotContains(t, out.HTML, "<script>")
	})
}
