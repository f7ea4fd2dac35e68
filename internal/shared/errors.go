package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrUserExists         = fmt.Errorf("user already exists")

	// Registry errors
	ErrStreamNotFound = fmt.Errorf("stream not found")
	ErrUserNotFound   = fmt.Errorf("user not found")

	// Extraction errors
	ErrFetchFailed      = fmt.Errorf("failed to fetch source page")
	ErrManifestNotFound = fmt.Errorf("manifest url not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
