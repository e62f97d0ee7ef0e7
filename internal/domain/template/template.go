// Package template renders campaign email templates. Rendering is a pure
// substitution with no side effects; any fault here is a configuration
// problem of the template, never a delivery problem.
package template

import (
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/coastalprograms/swms-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInactive = errs.Mark(errs.New("email template is inactive"), errs.ErrTemplate)
	ErrNotFound = errs.Mark(errs.New("email template not found"), errs.ErrTemplate)
)

// EmailTemplate is authored by administrators and stored per campaign type.
type EmailTemplate struct {
	ID           uuid.UUID
	CampaignType string
	Name         string
	Subject      string
	HTMLBody     string
	TextBody     string
	IsActive     bool
	UpdatedAt    time.Time
}

// Variables carries every placeholder a template may reference. Rendering is
// strict: a template referencing a key absent from the map fails with
// ErrTemplate rather than emitting an empty string into a compliance notice.
type Variables map[string]string

// StandardVariables builds the variable set the stock templates reference.
func StandardVariables(contractorName, jobName, jobSite, dueDate, portalURL, contactPhone, contactEmail string) Variables {
	return Variables{
		"ContractorName": contractorName,
		"JobName":        jobName,
		"JobSite":        jobSite,
		"DueDate":        dueDate,
		"PortalURL":      portalURL,
		"ContactPhone":   contactPhone,
		"ContactEmail":   contactEmail,
	}
}

type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

// Render fills tpl with vars and returns the subject and both bodies. Every
// failure is marked errs.ErrTemplate so the pipeline can keep template faults
// out of the delivery retry budget.
func Render(tpl EmailTemplate, vars Variables) (Rendered, error) {
	if !tpl.IsActive {
		return Rendered{}, ErrInactive
	}

	subject, err := renderText("subject", tpl.Subject, vars)
	if err != nil {
		return Rendered{}, err
	}
	text, err := renderText("text", tpl.TextBody, vars)
	if err != nil {
		return Rendered{}, err
	}
	html, err := renderHTML("html", tpl.HTMLBody, vars)
	if err != nil {
		return Rendered{}, err
	}

	return Rendered{Subject: subject, HTML: html, Text: text}, nil
}

func renderText(name, body string, vars Variables) (string, error) {
	t, err := texttemplate.New(name).Option("missingkey=error").Parse(body)
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "failed to parse "+name+" template"), errs.ErrTemplate)
	}
	var out strings.Builder
	if err := t.Execute(&out, vars); err != nil {
		return "", errs.Mark(errs.Wrap(err, "failed to render "+name+" template"), errs.ErrTemplate)
	}
	return out.String(), nil
}

func renderHTML(name, body string, vars Variables) (string, error) {
	t, err := htmltemplate.New(name).Option("missingkey=error").Parse(body)
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "failed to parse "+name+" template"), errs.ErrTemplate)
	}
	var out strings.Builder
	if err := t.Execute(&out, vars); err != nil {
		return "", errs.Mark(errs.Wrap(err, "failed to render "+name+" template"), errs.ErrTemplate)
	}
	return out.String(), nil
}
