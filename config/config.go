package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names read by the fetch command.
const (
	EnvTenantID     = "TENANT_ID"
	EnvClientID     = "CLIENT_ID"
	EnvClientSecret = "CLIENT_SECRET"
	EnvUserUPN      = "GRAPH_USER_UPN"
	EnvDrivePath    = "DRIVE_PATH"
	EnvOutputPath   = "OUTPUT_PATH"
	EnvLoginURL     = "GRAPH_LOGIN_URL"
	EnvGraphURL     = "GRAPH_API_URL"
)

const (
	DefaultOutputPath = "data/source.xlsx"
	DefaultLoginURL   = "https://login.microsoftonline.com"
	DefaultGraphURL   = "https://graph.microsoft.com/v1.0"
)

// LookupFunc resolves a single setting. os.LookupEnv satisfies it.
type LookupFunc func(name string) (string, bool)

// Credentials are the client-credential settings needed for a token exchange.
// GraphURL determines the requested scope.
type Credentials struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	LoginURL     string
	GraphURL     string
}

// Fetch holds everything the fetch command needs, validated up front.
type Fetch struct {
	Credentials
	UserPrincipalName string
	DrivePath         string
	OutputPath        string
}

// MissingError reports required settings that were unset or empty.
type MissingError struct {
	Names []string
}

func (e *MissingError) Error() string {
	if len(e.Names) == 1 {
		return "missing environment variable: " + e.Names[0]
	}
	return "missing environment variables: " + strings.Join(e.Names, ", ")
}

// ResolveCredentials reads TENANT_ID, CLIENT_ID and CLIENT_SECRET plus the
// optional endpoint overrides.
func ResolveCredentials(lookup LookupFunc) (Credentials, error) {
	r := resolver{lookup: lookup}
	creds := r.credentials()
	if err := r.err(); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// ResolveFetch reads every fetch setting in a single pass. All missing
// required names are reported together.
func ResolveFetch(lookup LookupFunc) (Fetch, error) {
	r := resolver{lookup: lookup}
	cfg := Fetch{
		Credentials:       r.credentials(),
		UserPrincipalName: r.required(EnvUserUPN),
		DrivePath:         r.required(EnvDrivePath),
		OutputPath:        r.optional(EnvOutputPath, DefaultOutputPath),
	}
	if err := r.err(); err != nil {
		return Fetch{}, err
	}
	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set are left alone.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

type resolver struct {
	lookup  LookupFunc
	missing []string
}

func (r *resolver) credentials() Credentials {
	return Credentials{
		TenantID:     r.required(EnvTenantID),
		ClientID:     r.required(EnvClientID),
		ClientSecret: r.required(EnvClientSecret),
		LoginURL:     strings.TrimRight(r.optional(EnvLoginURL, DefaultLoginURL), "/"),
		GraphURL:     strings.TrimRight(r.optional(EnvGraphURL, DefaultGraphURL), "/"),
	}
}

func (r *resolver) required(name string) string {
	v, _ := r.lookup(name)
	if v == "" {
		r.missing = append(r.missing, name)
	}
	return v
}

func (r *resolver) optional(name, def string) string {
	if v, ok := r.lookup(name); ok && v != "" {
		return v
	}
	return def
}

func (r *resolver) err() error {
	if len(r.missing) == 0 {
		return nil
	}
	return &MissingError{Names: r.missing}
}
