package fakeapi

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-applicant-desk/internal/app"
	"github.com/MKhiriev/go-applicant-desk/internal/config"
	"github.com/MKhiriev/go-applicant-desk/internal/logger"
	"github.com/MKhiriev/go-applicant-desk/internal/utils"
	"github.com/MKhiriev/go-applicant-desk/internal/validators"
	"github.com/MKhiriev/go-applicant-desk/models"
)

const minPasswordLength = 8

type account struct {
	user         models.User
	passwordHash string
}

type accountService struct {
	signKey         string
	accessDuration  time.Duration
	refreshDuration time.Duration

	validator validators.Validator
	logger    *logger.Logger

	mu      sync.RWMutex
	nextID  int64
	byID    map[string]*account
	byEmail map[string]string
}

// NewAccountService returns an in-memory AccountService signing tokens with
// cfg.TokenSignKey.
func NewAccountService(cfg config.App, validator validators.Validator, logger *logger.Logger) AccountService {
	accessDuration := cfg.AccessTokenDuration
	if accessDuration <= 0 {
		accessDuration = config.DefaultAccessTokenDuration
	}
	refreshDuration := cfg.RefreshTokenDuration
	if refreshDuration <= 0 {
		refreshDuration = config.DefaultRefreshTokenDuration
	}

	return &accountService{
		signKey:         cfg.TokenSignKey,
		accessDuration:  accessDuration,
		refreshDuration: refreshDuration,
		validator:       validator,
		logger:          logger,
		byID:            make(map[string]*account),
		byEmail:         make(map[string]string),
	}
}

func (s *accountService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	req.Email = normalizeEmail(req.Email)

	fieldErrs := validators.FieldErrors{}
	if err := s.validator.Validate(ctx, req); err != nil {
		if !asFieldErrors(err, fieldErrs) {
			return models.User{}, err
		}
	}
	checkNewPassword(fieldErrs, "password", req.Password, req.ConfirmPassword)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[req.Email]; taken && req.Email != "" {
		fieldErrs["email"] = append(fieldErrs["email"], "user with this email already exists.")
	}
	if len(fieldErrs) > 0 {
		return models.User{}, fieldErrs
	}

	s.nextID++
	now := time.Now().UTC()
	acc := &account{
		user: models.User{
			ID:          models.FlexString(strconv.FormatInt(s.nextID, 10)),
			Email:       req.Email,
			FullName:    req.FullName,
			CompanyName: req.CompanyName,
			PhoneNo:     req.PhoneNo,
			CreatedAt:   &now,
		},
		passwordHash: s.hashPassword(req.Password),
	}
	s.byID[acc.user.ID.String()] = acc
	s.byEmail[req.Email] = acc.user.ID.String()

	uid, token := s.verificationLink(acc)
	s.logger.Info().
		Str("func", "accountService.Register").
		Str("email", req.Email).
		Str("verify_path", fmt.Sprintf("/api/user/verify-email/%s/%s/", uid, token)).
		Msg("account registered, verification link issued")

	return acc.user, nil
}

func (s *accountService) VerificationLink(_ context.Context, email string) (string, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accountByEmail(email)
	if !ok {
		return "", "", ErrUserNotFound
	}
	uid, token := s.verificationLink(acc)
	return uid, token, nil
}

func (s *accountService) VerifyEmail(_ context.Context, uid, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accountByUID(uid)
	if !ok {
		return ErrInvalidLink
	}
	if acc.user.IsVerified {
		return ErrEmailAlreadyVerified
	}
	if _, want := s.verificationLink(acc); want != token {
		return ErrInvalidLink
	}

	acc.user.IsVerified = true
	return nil
}

func (s *accountService) Login(ctx context.Context, creds models.Credentials) (models.User, models.Tokens, error) {
	if err := s.validator.Validate(ctx, creds); err != nil {
		return models.User{}, models.Tokens{}, err
	}

	s.mu.RLock()
	acc, ok := s.accountByEmail(creds.Email)
	var user models.User
	var matches bool
	if ok {
		user = acc.user
		matches = utils.EqualHash(acc.passwordHash, creds.Password, s.signKey)
	}
	s.mu.RUnlock()

	if !ok || !matches {
		return models.User{}, models.Tokens{}, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return models.User{}, models.Tokens{}, ErrEmailNotVerified
	}

	tokens, err := s.issueTokens(user.ID.String())
	if err != nil {
		return models.User{}, models.Tokens{}, err
	}
	return user, tokens, nil
}

func (s *accountService) Refresh(_ context.Context, refreshToken string) (models.RefreshResponse, error) {
	claims, err := utils.ValidateAndParseJWTToken(refreshToken, s.signKey, utils.TokenTypeRefresh)
	if err != nil {
		return models.RefreshResponse{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	userID, _ := claims.GetUserID()

	s.mu.RLock()
	_, ok := s.byID[userID]
	s.mu.RUnlock()
	if !ok {
		return models.RefreshResponse{}, ErrTokenInvalid
	}

	access, err := utils.GenerateJWTToken(userID, utils.TokenTypeAccess, s.accessDuration, s.signKey)
	if err != nil {
		return models.RefreshResponse{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	return models.RefreshResponse{Access: access}, nil
}

func (s *accountService) Authenticate(_ context.Context, accessToken string) (string, error) {
	claims, err := utils.ValidateAndParseJWTToken(accessToken, s.signKey, utils.TokenTypeAccess)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	userID, _ := claims.GetUserID()

	s.mu.RLock()
	_, ok := s.byID[userID]
	s.mu.RUnlock()
	if !ok {
		return "", ErrTokenInvalid
	}
	return userID, nil
}

func (s *accountService) User(_ context.Context, userID string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.byID[userID]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return acc.user, nil
}

func (s *accountService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (models.User, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.byID[userID]
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	if email := normalizeEmail(req.Email); email != "" && email != acc.user.Email {
		if _, taken := s.byEmail[email]; taken {
			return models.User{}, validators.FieldErrors{"email": {"user with this email already exists."}}
		}
		delete(s.byEmail, acc.user.Email)
		s.byEmail[email] = userID
		acc.user.Email = email
	}
	if req.FullName != "" {
		acc.user.FullName = req.FullName
	}
	if req.CompanyName != "" {
		acc.user.CompanyName = req.CompanyName
	}
	if req.PhoneNo != "" {
		acc.user.PhoneNo = req.PhoneNo
	}

	return acc.user, nil
}

func (s *accountService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	if err := s.validator.Validate(ctx, req); err != nil {
		return err
	}

	fieldErrs := validators.FieldErrors{}
	confirm := req.ConfirmPassword
	if confirm == "" {
		confirm = req.NewPassword
	}
	checkNewPassword(fieldErrs, "new_password", req.NewPassword, confirm)
	if len(fieldErrs) > 0 {
		return fieldErrs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.byID[userID]
	if !ok {
		return ErrUserNotFound
	}
	if !utils.EqualHash(acc.passwordHash, req.CurrentPassword, s.signKey) {
		return ErrWrongPassword
	}
	if req.CurrentPassword == req.NewPassword {
		return ErrSamePassword
	}

	acc.passwordHash = s.hashPassword(req.NewPassword)
	return nil
}

func (s *accountService) ResetLink(_ context.Context, email string) (string, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accountByEmail(email)
	if !ok {
		return "", "", ErrUserNotFound
	}
	uid, token := s.resetLink(acc)
	return uid, token, nil
}

func (s *accountService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if err := s.validator.Validate(ctx, req); err != nil {
		return err
	}

	fieldErrs := validators.FieldErrors{}
	checkNewPassword(fieldErrs, "password", req.Password, req.ConfirmPassword)
	if len(fieldErrs) > 0 {
		return fieldErrs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accountByUID(req.UID)
	if !ok {
		return ErrInvalidLink
	}
	// the token embeds the password hash, so it stops working once used
	if _, want := s.resetLink(acc); want != req.Token {
		return ErrInvalidLink
	}

	acc.passwordHash = s.hashPassword(req.Password)
	return nil
}

func (s *accountService) issueTokens(userID string) (models.Tokens, error) {
	access, err := utils.GenerateJWTToken(userID, utils.TokenTypeAccess, s.accessDuration, s.signKey)
	if err != nil {
		return models.Tokens{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	refresh, err := utils.GenerateJWTToken(userID, utils.TokenTypeRefresh, s.refreshDuration, s.signKey)
	if err != nil {
		return models.Tokens{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	return models.Tokens{Access: access, Refresh: refresh}, nil
}

func (s *accountService) hashPassword(password string) string {
	return utils.HashString(password, s.signKey)
}

func (s *accountService) verificationLink(acc *account) (string, string) {
	uid := encodeUID(acc.user.ID.String())
	return uid, utils.HashString("verify:"+uid+":"+acc.user.Email, s.signKey)[:32]
}

func (s *accountService) resetLink(acc *account) (string, string) {
	uid := encodeUID(acc.user.ID.String())
	return uid, utils.HashString("reset:"+uid+":"+acc.passwordHash, s.signKey)[:32]
}

// accountByEmail must be called with s.mu held.
func (s *accountService) accountByEmail(email string) (*account, bool) {
	id, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, false
	}
	acc, ok := s.byID[id]
	return acc, ok
}

// accountByUID must be called with s.mu held.
func (s *accountService) accountByUID(uid string) (*account, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(uid)
	if err != nil {
		return nil, false
	}
	acc, ok := s.byID[string(raw)]
	return acc, ok
}

func encodeUID(id string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkNewPassword(fieldErrs validators.FieldErrors, field, password, confirm string) {
	if password == "" {
		return
	}
	if len(password) < minPasswordLength {
		fieldErrs[field] = append(fieldErrs[field],
			fmt.Sprintf("This password is too short. It must contain at least %d characters.", minPasswordLength))
	}
	if confirm != "" && password != confirm {
		fieldErrs["non_field_errors"] = append(fieldErrs["non_field_errors"], app.MsgPasswordsDoNotMatch)
	}
}

func asFieldErrors(err error, into validators.FieldErrors) bool {
	var fe validators.FieldErrors
	if !errors.As(err, &fe) {
		return false
	}
	for k, v := range fe {
		into[k] = append(into[k], v...)
	}
	return true
}
