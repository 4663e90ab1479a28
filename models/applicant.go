package models

import "time"

// Course is the programme an applicant is interested in.
type Course string

const (
	CourseBachelors Course = "Bachelors"
	CourseMasters   Course = "Masters"
	CoursePhD       Course = "Phd"
)

// Courses lists the accepted courses in display order.
var Courses = []Course{CourseBachelors, CourseMasters, CoursePhD}

// DegreeLevel is the level of a completed academic record.
type DegreeLevel string

const (
	DegreeIntermediate DegreeLevel = "Intermediate"
	DegreeBachelors    DegreeLevel = "Bachelors"
	DegreeMasters      DegreeLevel = "Masters"
)

// TestType is the language test an applicant sat.
type TestType string

const (
	TestIELTS TestType = "IELTS"
	TestPTE   TestType = "PTE"
	TestTOEFL TestType = "TOEFL"
)

// PersonalInfo groups the applicant's identity fields.
type PersonalInfo struct {
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phone_number"`
	InterestedCourse Course `json:"interested_course"`
}

// Address is the applicant's postal address.
type Address struct {
	Country string `json:"country"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
	Street  string `json:"street"`
}

// TestScore holds the language test result. Scores are decimals that the
// backend serialises as strings.
type TestScore struct {
	TestType       TestType   `json:"test_type"`
	OverallScore   FlexString `json:"overall_score"`
	ReadingScore   FlexString `json:"reading_score"`
	ListeningScore FlexString `json:"listening_score"`
	WritingScore   FlexString `json:"writing_score"`
	SpeakingScore  FlexString `json:"speaking_score"`
	// AttendedDate is formatted as YYYY-MM-DD.
	AttendedDate string `json:"attended_date"`
}

// Academic is one entry of the applicant's academic history.
type Academic struct {
	ID              FlexString  `json:"id,omitempty"`
	DegreeLevel     DegreeLevel `json:"degree_level"`
	DegreeTitle     string      `json:"degree_title"`
	Institution     string      `json:"institution"`
	PassedYear      string      `json:"passed_year"`
	CourseStartDate string      `json:"course_start_date"`
	CourseEndDate   string      `json:"course_end_date"`
	ObtainedMark    FlexString  `json:"obtained_mark"`
	CreatedAt       *time.Time  `json:"created_at,omitempty"`
}

// Applicant is the remote applicant record. The client never holds an
// authoritative copy; values are read from and written to the backend.
type Applicant struct {
	ID             FlexString `json:"id"`
	CreatedBy      FlexString `json:"created_by,omitempty"`
	CreatedByEmail string     `json:"created_by_email,omitempty"`
	CreatedByName  string     `json:"created_by_name,omitempty"`

	PersonalInfo
	Address
	TestScore

	Document    string     `json:"document,omitempty"`
	DocumentURL string     `json:"document_url,omitempty"`
	Academics   []Academic `json:"academics"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Document is an in-memory file attached to an applicant form. Content is
// kept in memory so that a request can be replayed after a token refresh.
type Document struct {
	Name    string
	Content []byte
}

// ApplicantInput is the create/update form. Document is required on create
// and optional on update.
type ApplicantInput struct {
	PersonalInfo
	Address
	TestScore

	Academics []Academic
	Document  *Document
}

// ApplicantFilter holds the optional list query parameters.
type ApplicantFilter struct {
	InterestedCourse Course
	Search           string
}

// ApplicantList is the list endpoint response.
type ApplicantList struct {
	Count   int         `json:"count"`
	Results []Applicant `json:"results"`
}

// Analytics is the dashboard counters response.
type Analytics struct {
	TotalApplicants       int `json:"total_applicants"`
	ThisMonth             int `json:"this_month"`
	CompletedApplications int `json:"completed_applications"`
	PendingApplications   int `json:"pending_applications"`
}
