package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-applicant-desk/internal/adapter"
	"github.com/MKhiriev/go-applicant-desk/internal/validators"
	"github.com/MKhiriev/go-applicant-desk/models"
)

type applicantService struct {
	adapter   adapter.ServerAdapter
	validator validators.Validator
}

// NewApplicantService returns an ApplicantService backed by serverAdapter.
func NewApplicantService(serverAdapter adapter.ServerAdapter, validator validators.Validator) ApplicantService {
	return &applicantService{adapter: serverAdapter, validator: validator}
}

func (s *applicantService) Create(ctx context.Context, in models.ApplicantInput) (models.Applicant, error) {
	if err := s.checkDocument(ctx, in.Document); err != nil {
		return models.Applicant{}, err
	}

	applicant, err := s.adapter.CreateApplicant(ctx, in)
	if err != nil {
		return models.Applicant{}, mapAdapterError(err)
	}
	return applicant, nil
}

func (s *applicantService) List(ctx context.Context, filter models.ApplicantFilter) (models.ApplicantList, error) {
	filter.Search = strings.TrimSpace(filter.Search)

	list, err := s.adapter.ListApplicants(ctx, filter)
	if err != nil {
		return models.ApplicantList{}, mapAdapterError(err)
	}
	return list, nil
}

func (s *applicantService) Get(ctx context.Context, id string) (models.Applicant, error) {
	if id == "" {
		return models.Applicant{}, ErrEmptyApplicantID
	}

	applicant, err := s.adapter.GetApplicant(ctx, id)
	if err != nil {
		return models.Applicant{}, mapAdapterError(err)
	}
	return applicant, nil
}

func (s *applicantService) Update(ctx context.Context, id string, in models.ApplicantInput) (models.Applicant, error) {
	if id == "" {
		return models.Applicant{}, ErrEmptyApplicantID
	}
	if err := s.checkDocument(ctx, in.Document); err != nil {
		return models.Applicant{}, err
	}

	applicant, err := s.adapter.UpdateApplicant(ctx, id, in)
	if err != nil {
		return models.Applicant{}, mapAdapterError(err)
	}
	return applicant, nil
}

func (s *applicantService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyApplicantID
	}

	if err := s.adapter.DeleteApplicant(ctx, id); err != nil {
		return mapAdapterError(err)
	}
	return nil
}

func (s *applicantService) Analytics(ctx context.Context) (models.Analytics, error) {
	analytics, err := s.adapter.Analytics(ctx)
	if err != nil {
		return models.Analytics{}, mapAdapterError(err)
	}
	return analytics, nil
}

func (s *applicantService) LoadDocument(path string) (*models.Document, error) {
	path = strings.TrimSpace(path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocumentUnreadable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrDocumentUnreadable, path)
	}
	if info.Size() > validators.MaxDocumentSize {
		return nil, fmt.Errorf("%w: %w", ErrValidation, validators.ErrDocumentTooLarge)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocumentUnreadable, err)
	}

	doc := &models.Document{Name: filepath.Base(path), Content: content}
	if err := s.validator.Validate(context.Background(), doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return doc, nil
}

func (s *applicantService) checkDocument(ctx context.Context, doc *models.Document) error {
	if doc == nil {
		return nil
	}
	if err := s.validator.Validate(ctx, doc); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
