package fakeapi

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-applicant-desk/internal/app"
	"github.com/MKhiriev/go-applicant-desk/internal/logger"
	"github.com/MKhiriev/go-applicant-desk/internal/validators"
	"github.com/MKhiriev/go-applicant-desk/models"
)

// DocumentDir is the path prefix of stored documents.
const DocumentDir = "applicant_documents"

// applicantForm mirrors the scalar multipart fields for validation.
type applicantForm struct {
	FullName         string `json:"full_name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	PhoneNumber      string `json:"phone_number" validate:"required,max=20"`
	InterestedCourse string `json:"interested_course" validate:"required,oneof=Bachelors Masters Phd"`
	Country          string `json:"country" validate:"required"`
	City             string `json:"city" validate:"required"`
	State            string `json:"state" validate:"required"`
	Zipcode          string `json:"zipcode" validate:"required,max=20"`
	Street           string `json:"street" validate:"required"`
	TestType         string `json:"test_type" validate:"required,oneof=IELTS PTE TOEFL"`
	OverallScore     string `json:"overall_score" validate:"required,numeric"`
	ReadingScore     string `json:"reading_score" validate:"required,numeric"`
	ListeningScore   string `json:"listening_score" validate:"required,numeric"`
	WritingScore     string `json:"writing_score" validate:"required,numeric"`
	SpeakingScore    string `json:"speaking_score" validate:"required,numeric"`
	AttendedDate     string `json:"attended_date" validate:"required,datetime=2006-01-02"`
}

type academicForm struct {
	DegreeLevel     string `json:"degree_level" validate:"required,oneof=Intermediate Bachelors Masters"`
	DegreeTitle     string `json:"degree_title" validate:"required"`
	Institution     string `json:"institution" validate:"required"`
	PassedYear      string `json:"passed_year" validate:"required,len=4,numeric"`
	CourseStartDate string `json:"course_start_date" validate:"required,datetime=2006-01-02"`
	CourseEndDate   string `json:"course_end_date" validate:"required,datetime=2006-01-02"`
	ObtainedMark    string `json:"obtained_mark" validate:"required,numeric"`
}

type storedApplicant struct {
	applicant models.Applicant
	document  models.Document
}

type applicantRegistry struct {
	validator validators.Validator
	logger    *logger.Logger

	mu         sync.RWMutex
	nextID     int64
	nextAcadID int64
	byID       map[string]*storedApplicant
	documents  map[string]models.Document
}

// NewApplicantRegistry returns an empty in-memory ApplicantRegistry.
func NewApplicantRegistry(validator validators.Validator, logger *logger.Logger) ApplicantRegistry {
	return &applicantRegistry{
		validator: validator,
		logger:    logger,
		byID:      make(map[string]*storedApplicant),
		documents: make(map[string]models.Document),
	}
}

func (r *applicantRegistry) Create(ctx context.Context, owner models.User, in models.ApplicantInput) (models.Applicant, error) {
	fieldErrs := r.validate(ctx, in, true)

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(fieldErrs) == 0 && r.emailTaken(in.Email, "") {
		fieldErrs["non_field_errors"] = []string{"An applicant with this email already exists."}
	}
	if len(fieldErrs) > 0 {
		return models.Applicant{}, fieldErrs
	}

	r.nextID++
	now := time.Now().UTC()
	a := models.Applicant{
		ID:             models.FlexString(strconv.FormatInt(r.nextID, 10)),
		CreatedBy:      owner.ID,
		CreatedByEmail: owner.Email,
		CreatedByName:  owner.FullName,
		PersonalInfo:   in.PersonalInfo,
		Address:        in.Address,
		TestScore:      in.TestScore,
		Academics:      r.stampAcademics(in.Academics, now),
		CreatedAt:      &now,
		UpdatedAt:      &now,
	}

	stored := &storedApplicant{applicant: a}
	r.attachDocument(stored, in.Document)
	r.byID[a.ID.String()] = stored

	r.logger.Debug().Str("func", "applicantRegistry.Create").Str("id", a.ID.String()).Msg("applicant created")
	return stored.applicant, nil
}

func (r *applicantRegistry) List(_ context.Context, filter models.ApplicantFilter) (models.ApplicantList, error) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	r.mu.RLock()
	results := make([]models.Applicant, 0, len(r.byID))
	for _, stored := range r.byID {
		a := stored.applicant
		if filter.InterestedCourse != "" && a.InterestedCourse != filter.InterestedCourse {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(a.FullName), search) &&
			!strings.Contains(strings.ToLower(a.Email), search) {
			continue
		}
		results = append(results, a)
	}
	r.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool {
		return idLess(results[j].ID, results[i].ID)
	})

	return models.ApplicantList{Count: len(results), Results: results}, nil
}

func (r *applicantRegistry) Get(_ context.Context, id string) (models.Applicant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[id]
	if !ok {
		return models.Applicant{}, ErrApplicantNotFound
	}
	return stored.applicant, nil
}

func (r *applicantRegistry) Update(ctx context.Context, id string, in models.ApplicantInput) (models.Applicant, error) {
	r.mu.RLock()
	_, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return models.Applicant{}, ErrApplicantNotFound
	}

	fieldErrs := r.validate(ctx, in, false)

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return models.Applicant{}, ErrApplicantNotFound
	}
	if len(fieldErrs) == 0 && r.emailTaken(in.Email, id) {
		fieldErrs["email"] = []string{"applicant with this email already exists."}
	}
	if len(fieldErrs) > 0 {
		return models.Applicant{}, fieldErrs
	}

	now := time.Now().UTC()
	a := &stored.applicant
	a.PersonalInfo = in.PersonalInfo
	a.Address = in.Address
	a.TestScore = in.TestScore
	if in.Academics != nil {
		a.Academics = r.stampAcademics(in.Academics, now)
	}
	a.UpdatedAt = &now
	r.attachDocument(stored, in.Document)

	return stored.applicant, nil
}

func (r *applicantRegistry) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return ErrApplicantNotFound
	}
	if stored.applicant.Document != "" {
		delete(r.documents, path.Base(stored.applicant.Document))
	}
	delete(r.byID, id)
	return nil
}

// Analytics implements ApplicantRegistry. An application counts as
// completed once a document is attached.
func (r *applicantRegistry) Analytics(_ context.Context) (models.Analytics, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out models.Analytics
	for _, stored := range r.byID {
		out.TotalApplicants++
		if stored.applicant.CreatedAt != nil && !stored.applicant.CreatedAt.Before(monthStart) {
			out.ThisMonth++
		}
		if stored.applicant.Document != "" {
			out.CompletedApplications++
		}
	}
	out.PendingApplications = out.TotalApplicants - out.CompletedApplications
	return out, nil
}

func (r *applicantRegistry) Document(_ context.Context, name string) (models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.documents[path.Base(name)]
	if !ok {
		return models.Document{}, ErrApplicantNotFound
	}
	return doc, nil
}

// validate returns DRF-style field errors. On create the document and at
// least one academic record are required.
func (r *applicantRegistry) validate(ctx context.Context, in models.ApplicantInput, create bool) validators.FieldErrors {
	fieldErrs := validators.FieldErrors{}

	form := applicantForm{
		FullName:         in.FullName,
		Email:            in.Email,
		PhoneNumber:      in.PhoneNumber,
		InterestedCourse: string(in.InterestedCourse),
		Country:          in.Country,
		City:             in.City,
		State:            in.State,
		Zipcode:          in.Zipcode,
		Street:           in.Street,
		TestType:         string(in.TestType),
		OverallScore:     in.OverallScore.String(),
		ReadingScore:     in.ReadingScore.String(),
		ListeningScore:   in.ListeningScore.String(),
		WritingScore:     in.WritingScore.String(),
		SpeakingScore:    in.SpeakingScore.String(),
		AttendedDate:     in.AttendedDate,
	}
	if err := r.validator.Validate(ctx, form); err != nil {
		if !asFieldErrors(err, fieldErrs) {
			fieldErrs["non_field_errors"] = []string{err.Error()}
		}
	}

	switch {
	case in.Document != nil:
		if err := r.validator.Validate(ctx, in.Document); err != nil {
			fieldErrs["document"] = []string{documentMessage(err)}
		}
	case create:
		fieldErrs["document"] = []string{"No file was submitted."}
	}

	if create && len(in.Academics) == 0 {
		fieldErrs["academics"] = []string{"At least one academic record is required"}
	}
	for i, academic := range in.Academics {
		form := academicForm{
			DegreeLevel:     string(academic.DegreeLevel),
			DegreeTitle:     academic.DegreeTitle,
			Institution:     academic.Institution,
			PassedYear:      academic.PassedYear,
			CourseStartDate: academic.CourseStartDate,
			CourseEndDate:   academic.CourseEndDate,
			ObtainedMark:    academic.ObtainedMark.String(),
		}
		err := r.validator.Validate(ctx, form)
		if err == nil {
			continue
		}
		nested := validators.FieldErrors{}
		if !asFieldErrors(err, nested) {
			continue
		}
		names := make([]string, 0, len(nested))
		for name := range nested {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fieldErrs["academics"] = append(fieldErrs["academics"],
				fmt.Sprintf("Academic record %d: %s is invalid", i+1, name))
		}
	}

	return fieldErrs
}

// emailTaken must be called with r.mu held.
func (r *applicantRegistry) emailTaken(email, exceptID string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for id, stored := range r.byID {
		if id != exceptID && strings.ToLower(stored.applicant.Email) == email {
			return true
		}
	}
	return false
}

// stampAcademics must be called with r.mu held.
func (r *applicantRegistry) stampAcademics(in []models.Academic, now time.Time) []models.Academic {
	out := make([]models.Academic, 0, len(in))
	for _, academic := range in {
		r.nextAcadID++
		academic.ID = models.FlexString(strconv.FormatInt(r.nextAcadID, 10))
		academic.CreatedAt = &now
		out = append(out, academic)
	}
	return out
}

// attachDocument must be called with r.mu held.
func (r *applicantRegistry) attachDocument(stored *storedApplicant, doc *models.Document) {
	if doc == nil {
		return
	}
	if stored.applicant.Document != "" {
		delete(r.documents, path.Base(stored.applicant.Document))
	}

	name := stored.applicant.ID.String() + "_" + path.Base(doc.Name)
	r.documents[name] = models.Document{Name: name, Content: append([]byte(nil), doc.Content...)}
	stored.applicant.Document = DocumentDir + "/" + name
}

func documentMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, validators.ErrDocumentNotPDF):
		return app.MsgOnlyPDFAllowed
	case errors.Is(err, validators.ErrDocumentTooLarge):
		return app.MsgDocumentTooLarge
	default:
		return "The submitted file is empty."
	}
}

func idLess(a, b models.FlexString) bool {
	ai, errA := strconv.ParseInt(a.String(), 10, 64)
	bi, errB := strconv.ParseInt(b.String(), 10, 64)
	if errA != nil || errB != nil {
		return a < b
	}
	return ai < bi
}
