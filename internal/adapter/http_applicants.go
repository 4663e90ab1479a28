package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-applicant-desk/models"
)

// CreateApplicant implements [ServerAdapter]. POST /applicants/ as
// multipart/form-data.
func (h *httpServerAdapter) CreateApplicant(ctx context.Context, in models.ApplicantInput) (models.Applicant, error) {
	form, err := applicantForm(in)
	if err != nil {
		return models.Applicant{}, fmt.Errorf("create applicant: %w", err)
	}

	resp, err := h.authed(ctx, "create applicant", func(r *resty.Request) (*resty.Response, error) {
		return withApplicantForm(r, form, in.Document).Post("/applicants/")
	})
	if err != nil {
		return models.Applicant{}, err
	}

	return decodeApplicant("create applicant", resp.Body())
}

// ListApplicants implements [ServerAdapter]. GET /applicants/.
func (h *httpServerAdapter) ListApplicants(ctx context.Context, filter models.ApplicantFilter) (models.ApplicantList, error) {
	params := map[string]string{}
	if filter.InterestedCourse != "" {
		params["interested_course"] = string(filter.InterestedCourse)
	}
	if filter.Search != "" {
		params["search"] = filter.Search
	}

	resp, err := h.authed(ctx, "list applicants", func(r *resty.Request) (*resty.Response, error) {
		return r.SetQueryParams(params).Get("/applicants/")
	})
	if err != nil {
		return models.ApplicantList{}, err
	}

	var list models.ApplicantList
	if err := decodeBody("list applicants", resp, &list); err != nil {
		return models.ApplicantList{}, err
	}
	if list.Count == 0 {
		list.Count = len(list.Results)
	}
	return list, nil
}

// GetApplicant implements [ServerAdapter]. GET /applicants/{id}/.
func (h *httpServerAdapter) GetApplicant(ctx context.Context, id string) (models.Applicant, error) {
	resp, err := h.authed(ctx, "get applicant", func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("id", id).Get("/applicants/{id}/")
	})
	if err != nil {
		return models.Applicant{}, err
	}

	return decodeApplicant("get applicant", resp.Body())
}

// UpdateApplicant implements [ServerAdapter]. PUT /applicants/{id}/ as
// multipart/form-data.
func (h *httpServerAdapter) UpdateApplicant(ctx context.Context, id string, in models.ApplicantInput) (models.Applicant, error) {
	form, err := applicantForm(in)
	if err != nil {
		return models.Applicant{}, fmt.Errorf("update applicant: %w", err)
	}

	resp, err := h.authed(ctx, "update applicant", func(r *resty.Request) (*resty.Response, error) {
		return withApplicantForm(r.SetPathParam("id", id), form, in.Document).Put("/applicants/{id}/")
	})
	if err != nil {
		return models.Applicant{}, err
	}

	return decodeApplicant("update applicant", resp.Body())
}

// DeleteApplicant implements [ServerAdapter]. DELETE /applicants/{id}/.
func (h *httpServerAdapter) DeleteApplicant(ctx context.Context, id string) error {
	_, err := h.authed(ctx, "delete applicant", func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("id", id).Delete("/applicants/{id}/")
	})
	return err
}

// Analytics implements [ServerAdapter]. GET /applicants/analytics/.
func (h *httpServerAdapter) Analytics(ctx context.Context) (models.Analytics, error) {
	resp, err := h.authed(ctx, "analytics", func(r *resty.Request) (*resty.Response, error) {
		return r.Get("/applicants/analytics/")
	})
	if err != nil {
		return models.Analytics{}, err
	}

	var out models.Analytics
	if err := decodeBody("analytics", resp, &out); err != nil {
		return models.Analytics{}, err
	}
	return out, nil
}

// applicantForm renders the scalar multipart fields. Academics travel as a
// JSON array string.
func applicantForm(in models.ApplicantInput) (map[string]string, error) {
	academics := in.Academics
	if academics == nil {
		academics = []models.Academic{}
	}
	academicsJSON, err := json.Marshal(academics)
	if err != nil {
		return nil, fmt.Errorf("error encoding academics: %w", err)
	}

	return map[string]string{
		"full_name":         in.FullName,
		"email":             in.Email,
		"phone_number":      in.PhoneNumber,
		"interested_course": string(in.InterestedCourse),
		"country":           in.Country,
		"city":              in.City,
		"state":             in.State,
		"zipcode":           in.Zipcode,
		"street":            in.Street,
		"test_type":         string(in.TestType),
		"overall_score":     in.OverallScore.String(),
		"reading_score":     in.ReadingScore.String(),
		"listening_score":   in.ListeningScore.String(),
		"writing_score":     in.WritingScore.String(),
		"speaking_score":    in.SpeakingScore.String(),
		"attended_date":     in.AttendedDate,
		"academics":         string(academicsJSON),
	}, nil
}

// withApplicantForm attaches the form to r. The document reader is created
// per call so a replayed request carries the full file again.
func withApplicantForm(r *resty.Request, form map[string]string, doc *models.Document) *resty.Request {
	r.SetMultipartFormData(form)
	if doc != nil {
		r.SetFileReader("document", doc.Name, bytes.NewReader(doc.Content))
	}
	return r
}

// decodeApplicant accepts both the {"message", "data"} envelope returned by
// create/update and a bare applicant object.
func decodeApplicant(op string, body []byte) (models.Applicant, error) {
	var envelope models.DataEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return models.Applicant{}, fmt.Errorf("%s: %w: %w", op, ErrDecodingResponse, err)
	}

	payload := body
	if len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		payload = envelope.Data
	}

	var applicant models.Applicant
	if err := json.Unmarshal(payload, &applicant); err != nil {
		return models.Applicant{}, fmt.Errorf("%s: %w: %w", op, ErrDecodingResponse, err)
	}
	return applicant, nil
}
