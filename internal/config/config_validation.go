// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// validateStruct checks s against its `validate` tags. Nested config types
// register their rules with the validator below.
func validateStruct(s any) error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterStructValidationMapRules(map[string]string{
			"HTTPAddress":    "required",
			"RequestTimeout": "gt=0",
			"LogoutTimeout":  "gt=0",
		}, Adapter{})
		validate.RegisterStructValidationMapRules(map[string]string{
			"DSN": "required",
		}, SessionStorage{})
		validate.RegisterStructValidationMapRules(map[string]string{
			"ProfileRefreshInterval": "gte=0",
		}, Workers{})
		validate.RegisterStructValidationMapRules(map[string]string{
			"HTTPAddress":    "required,hostname_port",
			"RequestTimeout": "gt=0",
		}, Server{})
	})

	return validate.Struct(s)
}
