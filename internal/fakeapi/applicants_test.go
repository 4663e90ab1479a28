package fakeapi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-applicant-desk/internal/app"
	"github.com/MKhiriev/go-applicant-desk/internal/logger"
	"github.com/MKhiriev/go-applicant-desk/internal/validators"
	"github.com/MKhiriev/go-applicant-desk/models"
)

var owner = models.User{ID: "7", Email: "owner@example.com", FullName: "Owner"}

func newTestRegistry() ApplicantRegistry {
	return NewApplicantRegistry(validators.NewRequestValidator(), logger.Nop())
}

func validInput(email string) models.ApplicantInput {
	return models.ApplicantInput{
		PersonalInfo: models.PersonalInfo{
			FullName:         "Ada Applicant",
			Email:            email,
			PhoneNumber:      "+977123",
			InterestedCourse: models.CourseMasters,
		},
		Address: models.Address{
			Country: "Nepal", City: "Kathmandu", State: "Bagmati", Zipcode: "44600", Street: "Main 1",
		},
		TestScore: models.TestScore{
			TestType:       models.TestIELTS,
			OverallScore:   "7.5",
			ReadingScore:   "8",
			ListeningScore: "7",
			WritingScore:   "6.5",
			SpeakingScore:  "7",
			AttendedDate:   "2024-03-01",
		},
		Academics: []models.Academic{{
			DegreeLevel:     models.DegreeBachelors,
			DegreeTitle:     "BSc",
			Institution:     "Uni",
			PassedYear:      "2021",
			CourseStartDate: "2017-09-01",
			CourseEndDate:   "2021-06-01",
			ObtainedMark:    "3.4",
		}},
		Document: &models.Document{Name: "cv.pdf", Content: []byte("%PDF")},
	}
}

func TestApplicantRegistry_Create(t *testing.T) {
	r := newTestRegistry()

	a, err := r.Create(t.Context(), owner, validInput("ada@example.com"))
	require.NoError(t, err)

	assert.Equal(t, models.FlexString("1"), a.ID)
	assert.Equal(t, owner.ID, a.CreatedBy)
	assert.Equal(t, owner.Email, a.CreatedByEmail)
	assert.Equal(t, owner.FullName, a.CreatedByName)
	assert.Equal(t, DocumentDir+"/1_cv.pdf", a.Document)
	require.Len(t, a.Academics, 1)
	assert.Equal(t, models.FlexString("1"), a.Academics[0].ID)
	assert.NotNil(t, a.CreatedAt)

	doc, err := r.Document(t.Context(), "1_cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), doc.Content)
}

func TestApplicantRegistry_CreateValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(in *models.ApplicantInput)
		wantField string
		wantMsg   string
	}{
		{
			name:      "no document",
			mutate:    func(in *models.ApplicantInput) { in.Document = nil },
			wantField: "document",
		},
		{
			name:      "not a pdf",
			mutate:    func(in *models.ApplicantInput) { in.Document.Name = "cv.png" },
			wantField: "document",
			wantMsg:   app.MsgOnlyPDFAllowed,
		},
		{
			name: "too large",
			mutate: func(in *models.ApplicantInput) {
				in.Document.Content = []byte(strings.Repeat("x", validators.MaxDocumentSize+1))
			},
			wantField: "document",
			wantMsg:   app.MsgDocumentTooLarge,
		},
		{
			name:      "no academics",
			mutate:    func(in *models.ApplicantInput) { in.Academics = nil },
			wantField: "academics",
		},
		{
			name:      "bad academic year",
			mutate:    func(in *models.ApplicantInput) { in.Academics[0].PassedYear = "21" },
			wantField: "academics",
			wantMsg:   "Academic record 1: passed_year is invalid",
		},
		{
			name:      "unknown test type",
			mutate:    func(in *models.ApplicantInput) { in.TestType = "GRE" },
			wantField: "test_type",
		},
		{
			name:      "score not numeric",
			mutate:    func(in *models.ApplicantInput) { in.OverallScore = "high" },
			wantField: "overall_score",
		},
		{
			name:      "attended date format",
			mutate:    func(in *models.ApplicantInput) { in.AttendedDate = "01/03/2024" },
			wantField: "attended_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRegistry()
			in := validInput("ada@example.com")
			tt.mutate(&in)

			_, err := r.Create(t.Context(), owner, in)

			var fieldErrs validators.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Contains(t, fieldErrs, tt.wantField)
			if tt.wantMsg != "" {
				assert.Contains(t, fieldErrs[tt.wantField], tt.wantMsg)
			}
		})
	}
}

func TestApplicantRegistry_EmailUnique(t *testing.T) {
	r := newTestRegistry()
	ctx := t.Context()

	first, err := r.Create(ctx, owner, validInput("ada@example.com"))
	require.NoError(t, err)
	second, err := r.Create(ctx, owner, validInput("bob@example.com"))
	require.NoError(t, err)

	_, err = r.Create(ctx, owner, validInput("ADA@example.com"))
	var fieldErrs validators.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "non_field_errors")

	_, err = r.Update(ctx, second.ID.String(), validInput("ada@example.com"))
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "email")

	// keeping its own email is fine
	_, err = r.Update(ctx, first.ID.String(), validInput("ada@example.com"))
	assert.NoError(t, err)
}

func TestApplicantRegistry_Update(t *testing.T) {
	r := newTestRegistry()
	ctx := t.Context()

	created, err := r.Create(ctx, owner, validInput("ada@example.com"))
	require.NoError(t, err)
	id := created.ID.String()

	in := validInput("ada@example.com")
	in.City = "Pokhara"
	in.Academics = nil
	in.Document = nil
	updated, err := r.Update(ctx, id, in)
	require.NoError(t, err)
	assert.Equal(t, "Pokhara", updated.City)
	assert.Len(t, updated.Academics, 1)
	assert.Equal(t, created.Document, updated.Document)

	in.Document = &models.Document{Name: "new.pdf", Content: []byte("%PDF-2")}
	updated, err = r.Update(ctx, id, in)
	require.NoError(t, err)
	assert.Equal(t, DocumentDir+"/1_new.pdf", updated.Document)

	_, err = r.Document(ctx, "1_cv.pdf")
	assert.ErrorIs(t, err, ErrApplicantNotFound)

	_, err = r.Update(ctx, "404", in)
	assert.ErrorIs(t, err, ErrApplicantNotFound)
}

func TestApplicantRegistry_ListFilters(t *testing.T) {
	r := newTestRegistry()
	ctx := t.Context()

	names := []string{"Alice", "Bob", "Carol"}
	for i, name := range names {
		in := validInput(strings.ToLower(name) + "@example.com")
		in.FullName = name
		if i == 1 {
			in.InterestedCourse = models.CoursePhD
		}
		_, err := r.Create(ctx, owner, in)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		filter models.ApplicantFilter
		want   []string
	}{
		{name: "all newest first", want: []string{"Carol", "Bob", "Alice"}},
		{name: "by course", filter: models.ApplicantFilter{InterestedCourse: models.CoursePhD}, want: []string{"Bob"}},
		{name: "search name", filter: models.ApplicantFilter{Search: " CAR "}, want: []string{"Carol"}},
		{name: "search email", filter: models.ApplicantFilter{Search: "alice@"}, want: []string{"Alice"}},
		{name: "course and search", filter: models.ApplicantFilter{InterestedCourse: models.CourseMasters, Search: "bob"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := r.List(ctx, tt.filter)
			require.NoError(t, err)

			got := make([]string, 0, len(list.Results))
			for _, a := range list.Results {
				got = append(got, a.FullName)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), list.Count)
		})
	}
}

func TestApplicantRegistry_DeleteAndAnalytics(t *testing.T) {
	r := newTestRegistry()
	ctx := t.Context()

	a, err := r.Create(ctx, owner, validInput("a@example.com"))
	require.NoError(t, err)
	_, err = r.Create(ctx, owner, validInput("b@example.com"))
	require.NoError(t, err)

	stats, err := r.Analytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Analytics{TotalApplicants: 2, ThisMonth: 2, CompletedApplications: 2}, stats)

	require.NoError(t, r.Delete(ctx, a.ID.String()))
	assert.ErrorIs(t, r.Delete(ctx, a.ID.String()), ErrApplicantNotFound)

	_, err = r.Get(ctx, a.ID.String())
	assert.ErrorIs(t, err, ErrApplicantNotFound)
	_, err = r.Document(ctx, "1_cv.pdf")
	assert.ErrorIs(t, err, ErrApplicantNotFound)

	stats, err = r.Analytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalApplicants)
}

func TestIDLess(t *testing.T) {
	assert.True(t, idLess("2", "10"))
	assert.False(t, idLess("10", "2"))
	assert.True(t, idLess("a", "b"))
}
