package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-applicant-desk/internal/app"
	"github.com/MKhiriev/go-applicant-desk/internal/fakeapi"
	"github.com/MKhiriev/go-applicant-desk/internal/utils"
	"github.com/MKhiriev/go-applicant-desk/internal/validators"
	"github.com/MKhiriev/go-applicant-desk/models"
)

// maxFormMemory bounds the in-memory part of a parsed multipart body.
const maxFormMemory = 12 << 20

var documentRoute = fakeapi.DocumentDir + "/{name}"

func (h *Handler) listApplicants(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.ApplicantFilter{
		InterestedCourse: models.Course(query.Get("interested_course")),
		Search:           query.Get("search"),
	}

	list, err := h.services.ApplicantRegistry.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	for i := range list.Results {
		withDocumentURL(r, &list.Results[i])
	}

	utils.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) createApplicant(w http.ResponseWriter, r *http.Request) {
	in, err := parseApplicantForm(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	owner, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	applicant, err := h.services.ApplicantRegistry.Create(r.Context(), owner, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	withDocumentURL(r, &applicant)

	utils.WriteJSON(w, map[string]any{
		"message": app.MsgApplicantCreated,
		"data":    applicant,
	}, http.StatusCreated)
}

func (h *Handler) analytics(w http.ResponseWriter, r *http.Request) {
	out, err := h.services.ApplicantRegistry.Analytics(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, out, http.StatusOK)
}

func (h *Handler) getApplicant(w http.ResponseWriter, r *http.Request) {
	applicant, err := h.services.ApplicantRegistry.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	withDocumentURL(r, &applicant)

	utils.WriteJSON(w, applicant, http.StatusOK)
}

func (h *Handler) updateApplicant(w http.ResponseWriter, r *http.Request) {
	in, err := parseApplicantForm(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	applicant, err := h.services.ApplicantRegistry.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	withDocumentURL(r, &applicant)

	utils.WriteJSON(w, map[string]any{
		"message": app.MsgApplicantUpdated,
		"data":    applicant,
	}, http.StatusOK)
}

func (h *Handler) deleteApplicant(w http.ResponseWriter, r *http.Request) {
	if err := h.services.ApplicantRegistry.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgApplicantDeleted}, http.StatusOK)
}

func (h *Handler) document(w http.ResponseWriter, r *http.Request) {
	doc, err := h.services.ApplicantRegistry.Document(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		notFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.Name))
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Content)
}

// parseApplicantForm reads the multipart applicant form. Academics arrive as
// a JSON array string; a missing field leaves Academics nil so that update
// keeps the stored records.
func parseApplicantForm(r *http.Request) (models.ApplicantInput, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return models.ApplicantInput{}, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	form := r.MultipartForm.Value
	value := func(key string) string {
		if v := form[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	in := models.ApplicantInput{
		PersonalInfo: models.PersonalInfo{
			FullName:         value("full_name"),
			Email:            value("email"),
			PhoneNumber:      value("phone_number"),
			InterestedCourse: models.Course(value("interested_course")),
		},
		Address: models.Address{
			Country: value("country"),
			City:    value("city"),
			State:   value("state"),
			Zipcode: value("zipcode"),
			Street:  value("street"),
		},
		TestScore: models.TestScore{
			TestType:       models.TestType(value("test_type")),
			OverallScore:   models.FlexString(value("overall_score")),
			ReadingScore:   models.FlexString(value("reading_score")),
			ListeningScore: models.FlexString(value("listening_score")),
			WritingScore:   models.FlexString(value("writing_score")),
			SpeakingScore:  models.FlexString(value("speaking_score")),
			AttendedDate:   value("attended_date"),
		},
	}

	if raw := value("academics"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Academics); err != nil {
			return models.ApplicantInput{}, validators.FieldErrors{
				"academics": {"Invalid academics data format."},
			}
		}
	}

	files := r.MultipartForm.File["document"]
	if len(files) == 0 {
		return in, nil
	}

	header := files[0]
	if header.Size > validators.MaxDocumentSize {
		return models.ApplicantInput{}, validators.FieldErrors{"document": {app.MsgDocumentTooLarge}}
	}
	f, err := header.Open()
	if err != nil {
		return models.ApplicantInput{}, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return models.ApplicantInput{}, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}
	in.Document = &models.Document{Name: header.Filename, Content: content}

	return in, nil
}

// withDocumentURL fills the absolute document link the way the backend
// serializer does.
func withDocumentURL(r *http.Request, a *models.Applicant) {
	if a.Document == "" {
		return
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	a.DocumentURL = fmt.Sprintf("%s://%s/media/%s", scheme, r.Host, a.Document)
}

func requiredField(name string) error {
	return validators.FieldErrors{name: {app.MsgFieldRequired}}
}
