// Package config provides configuration loading, merging, and validation
// facilities for the applicant-desk client and its development backend.
//
// Configuration is assembled from multiple sources. For every field the
// first source that provides a non-zero value wins:
//  1. Command-line flags
//  2. Environment variables (optionally seeded from a .env file)
//  3. JSON config file
//
// The main entry points are [GetClientConfig] for the terminal client and
// [GetFakeAPIConfig] for the in-memory development backend.
package config
