// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains message strings shared by the applicant-desk backend
// contract: the fake backend writes them into response bodies and the client
// matches or displays them.
//
// All Msg* constants are human-readable strings carried in the "message" or
// "error" key of a JSON response body. Keeping them in one place ensures the
// fake backend and the client agree on wording.
package app

const (
	// MsgRegistrationSuccessful acknowledges a new account that still needs
	// email verification.
	MsgRegistrationSuccessful = "Registration successful. Please check your email to verify your account."

	// MsgLoginSuccessful acknowledges a successful login.
	MsgLoginSuccessful = "Login successful"

	// MsgInvalidCredentials is returned with 401 when the email/password pair
	// does not match an account.
	MsgInvalidCredentials = "Invalid email or password"

	// MsgEmailNotVerified is returned with 403 when the account exists but
	// its email address has not been confirmed yet.
	MsgEmailNotVerified = "Please verify your email before logging in."

	// MsgEmailVerified acknowledges a consumed verification link.
	MsgEmailVerified = "Email verified successfully. You can now login."

	// MsgEmailAlreadyVerified is returned when a verification link is opened
	// for an already verified account.
	MsgEmailAlreadyVerified = "Email already verified. Please login."

	// MsgInvalidVerificationLink is returned with 400 for unknown or expired
	// verification links.
	MsgInvalidVerificationLink = "Invalid or expired verification link"

	// MsgPasswordResetSent is returned for every forgot-password request so
	// the response does not reveal whether the account exists.
	MsgPasswordResetSent = "If an account exists with this email, a password reset link has been sent."

	// MsgInvalidResetLink is returned with 400 for unknown or expired reset
	// links.
	MsgInvalidResetLink = "Invalid or expired password reset link"

	// MsgPasswordReset acknowledges a completed password reset.
	MsgPasswordReset = "Password has been reset successfully. You can now login with your new password."

	// MsgPasswordsDoNotMatch is returned when password and confirmation
	// differ.
	MsgPasswordsDoNotMatch = "Passwords do not match."

	// MsgCurrentPasswordIncorrect is returned with 400 by change-password.
	MsgCurrentPasswordIncorrect = "Current password is incorrect"

	// MsgSamePassword is returned with 400 when the new password equals the
	// current one.
	MsgSamePassword = "New password cannot be the same as the current password"

	// MsgPasswordChanged acknowledges a password change.
	MsgPasswordChanged = "Password changed successfully"

	// MsgProfileUpdated acknowledges a profile update.
	MsgProfileUpdated = "Profile updated successfully"

	// MsgTokenInvalid is the detail returned with 401 for a rejected bearer
	// or refresh token.
	MsgTokenInvalid = "Given token not valid for any token type"

	// MsgNoCredentials is the detail returned with 401 when no bearer token
	// was sent.
	MsgNoCredentials = "Authentication credentials were not provided."

	// MsgApplicantCreated acknowledges a new applicant.
	MsgApplicantCreated = "Applicant created successfully"

	// MsgApplicantUpdated acknowledges an applicant update.
	MsgApplicantUpdated = "Applicant updated successfully"

	// MsgApplicantDeleted acknowledges an applicant removal.
	MsgApplicantDeleted = "Applicant deleted successfully"

	// MsgApplicantForbidden is returned with 403 when the applicant belongs
	// to another staff member.
	MsgApplicantForbidden = "You do not have permission to view this applicant"

	// MsgApplicantNotFound is the detail returned with 404 for unknown ids.
	MsgApplicantNotFound = "No Applicant matches the given query."

	// MsgFieldRequired is the DRF-style message for a missing form field.
	MsgFieldRequired = "This field is required."

	// MsgOnlyPDFAllowed is returned for a document that is not a PDF.
	MsgOnlyPDFAllowed = "Only PDF files are allowed."

	// MsgDocumentTooLarge is returned for a document over the size limit.
	MsgDocumentTooLarge = "File size must not exceed 10MB."

	// MsgSessionExpired is shown after a forced logout.
	MsgSessionExpired = "Session expired. Please log in again."

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"
)
