package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-applicant-desk/internal/app"
	"github.com/MKhiriev/go-applicant-desk/internal/service"
	"github.com/MKhiriev/go-applicant-desk/internal/validators"
	"github.com/MKhiriev/go-applicant-desk/models"
)

const msgInvalidAcademics = "Invalid academics data format."

// ApplicantFormModel creates a new applicant or edits an existing one.
// Academics are entered as a JSON array, the document as a path to a PDF.
// On edit an empty document path keeps the stored file.
type ApplicantFormModel struct {
	ctx        context.Context
	applicants service.ApplicantService

	form       form
	editID     string
	submitting bool
	errMsg     string
}

func NewApplicantFormModel(ctx context.Context, applicants service.ApplicantService) *ApplicantFormModel {
	academics := newField("academics", "Academics", `[{"degree_level":"Bachelors",...}]`)
	academics.input.CharLimit = 0
	academics.input.Width = 60

	document := newField("document", "Document", "/path/to/file.pdf")
	document.input.CharLimit = 1024
	document.input.Width = 60

	return &ApplicantFormModel{
		ctx:        ctx,
		applicants: applicants,
		form: newForm(
			newField("full_name", "Full name", ""),
			newField("email", "Email", ""),
			newField("phone_number", "Phone", ""),
			newField("interested_course", "Course", "Bachelors, Masters or Phd"),
			newField("country", "Country", ""),
			newField("city", "City", ""),
			newField("state", "State", ""),
			newField("zipcode", "Zipcode", ""),
			newField("street", "Street", ""),
			newField("test_type", "Test", "IELTS, PTE or TOEFL"),
			newField("overall_score", "Overall", ""),
			newField("reading_score", "Reading", ""),
			newField("listening_score", "Listening", ""),
			newField("writing_score", "Writing", ""),
			newField("speaking_score", "Speaking", ""),
			newField("attended_date", "Test date", "YYYY-MM-DD"),
			academics,
			document,
		),
	}
}

func (m *ApplicantFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// fill resets the form and copies a into it. A nil a prepares a new record.
func (m *ApplicantFormModel) fill(a *models.Applicant) {
	m.form.reset()
	m.errMsg = ""
	m.submitting = false
	m.editID = ""
	if a == nil {
		return
	}

	m.editID = a.ID.String()
	values := map[string]string{
		"full_name":         a.FullName,
		"email":             a.Email,
		"phone_number":      a.PhoneNumber,
		"interested_course": string(a.InterestedCourse),
		"country":           a.Country,
		"city":              a.City,
		"state":             a.State,
		"zipcode":           a.Zipcode,
		"street":            a.Street,
		"test_type":         string(a.TestType),
		"overall_score":     a.OverallScore.String(),
		"reading_score":     a.ReadingScore.String(),
		"listening_score":   a.ListeningScore.String(),
		"writing_score":     a.WritingScore.String(),
		"speaking_score":    a.SpeakingScore.String(),
		"attended_date":     a.AttendedDate,
	}
	for k, v := range values {
		m.form.setValue(k, v)
	}

	academics := make([]models.Academic, len(a.Academics))
	for i, ac := range a.Academics {
		ac.ID, ac.CreatedAt = "", nil
		academics[i] = ac
	}
	if raw, err := json.Marshal(academics); err == nil {
		m.form.setValue("academics", string(raw))
	}
}

func (m *ApplicantFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EditApplicant:
		m.fill(msg.Applicant)
		return m, nil
	case applicantSavedMsg:
		return m, m.saved(msg)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			return m, m.leave()
		case key.Matches(msg, keys.tab):
			m.form.next()
			return m, nil
		case key.Matches(msg, keys.backtab):
			m.form.prev()
			return m, nil
		case key.Matches(msg, keys.save):
			return m, m.submit()
		}
	}

	return m, m.form.update(msg)
}

func (m *ApplicantFormModel) leave() tea.Cmd {
	id := m.editID
	m.errMsg = ""
	if id != "" {
		return navigate(pageDetail, OpenApplicant{ID: id})
	}
	return navigate(pageApplicants, nil)
}

func (m *ApplicantFormModel) saved(msg applicantSavedMsg) tea.Cmd {
	m.submitting = false
	if msg.err != nil {
		m.errMsg = humanizeError(msg.err)
		m.form.setErrors(msg.err)
		if msg.docErr && len(m.form.fieldErrs) == 0 {
			m.form.fieldErrs = map[string][]string{"document": {documentMessage(msg.err)}}
			m.errMsg = msgFixFields
		}
		return nil
	}

	notice := app.MsgApplicantUpdated
	if msg.created {
		notice = app.MsgApplicantCreated
	}
	m.form.reset()
	m.editID = ""
	return navigate(pageDetail, OpenApplicant{ID: msg.applicant.ID.String(), Notice: notice})
}

// input builds the request from the form. It reports academics that are
// not valid JSON as a field error.
func (m *ApplicantFormModel) input() (models.ApplicantInput, bool) {
	in := models.ApplicantInput{
		PersonalInfo: models.PersonalInfo{
			FullName:         m.form.trimmed("full_name"),
			Email:            m.form.trimmed("email"),
			PhoneNumber:      m.form.trimmed("phone_number"),
			InterestedCourse: models.Course(m.form.trimmed("interested_course")),
		},
		Address: models.Address{
			Country: m.form.trimmed("country"),
			City:    m.form.trimmed("city"),
			State:   m.form.trimmed("state"),
			Zipcode: m.form.trimmed("zipcode"),
			Street:  m.form.trimmed("street"),
		},
		TestScore: models.TestScore{
			TestType:       models.TestType(m.form.trimmed("test_type")),
			OverallScore:   models.FlexString(m.form.trimmed("overall_score")),
			ReadingScore:   models.FlexString(m.form.trimmed("reading_score")),
			ListeningScore: models.FlexString(m.form.trimmed("listening_score")),
			WritingScore:   models.FlexString(m.form.trimmed("writing_score")),
			SpeakingScore:  models.FlexString(m.form.trimmed("speaking_score")),
			AttendedDate:   m.form.trimmed("attended_date"),
		},
	}

	if raw := m.form.trimmed("academics"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Academics); err != nil {
			m.form.fieldErrs = map[string][]string{"academics": {msgInvalidAcademics}}
			return in, false
		}
	}
	return in, true
}

func (m *ApplicantFormModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	in, ok := m.input()
	if !ok {
		m.errMsg = msgFixFields
		return nil
	}

	m.errMsg = ""
	m.form.fieldErrs = nil
	m.submitting = true

	ctx, svc, id := m.ctx, m.applicants, m.editID
	path := m.form.trimmed("document")

	return func() tea.Msg {
		if path != "" {
			doc, err := svc.LoadDocument(path)
			if err != nil {
				return applicantSavedMsg{err: err, docErr: true}
			}
			in.Document = doc
		}

		if id == "" {
			a, err := svc.Create(ctx, in)
			return applicantSavedMsg{applicant: a, created: true, err: err}
		}
		a, err := svc.Update(ctx, id, in)
		return applicantSavedMsg{applicant: a, err: err}
	}
}

func (m *ApplicantFormModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\n[Saving...]\n")
	} else {
		b.WriteString("\n[Save]\n")
	}
	writeStatus(&b, "", m.errMsg)

	title := "NEW APPLICANT"
	if m.editID != "" {
		title = "EDIT APPLICANT " + m.editID
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"), "esc: cancel │ tab: next field │ ctrl+s: save")
}

func documentMessage(err error) string {
	switch {
	case errors.Is(err, validators.ErrDocumentTooLarge):
		return app.MsgDocumentTooLarge
	case errors.Is(err, service.ErrDocumentUnreadable):
		return "Cannot read the file."
	}
	return app.MsgOnlyPDFAllowed
}
