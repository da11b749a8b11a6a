package datatable

import "errors"

// Common errors returned around the engine. The projection functions
// themselves never fail; these are used by loaders, exporters and
// configuration.
var (
	// ErrNoDataSource is returned when a required data source is nil.
	ErrNoDataSource = errors.New("data source is nil")

	// ErrEmptyData is returned when data is empty where it shouldn't be.
	ErrEmptyData = errors.New("data is empty")

	// ErrColumnNotFound is returned when a column key is not found.
	ErrColumnNotFound = errors.New("column not found")

	// ErrUnsupportedFile is returned when a file type cannot be loaded.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrInvalidRenderer is returned when a column render script does not
	// compile to a renderer.
	ErrInvalidRenderer = errors.New("invalid column renderer")

	// ErrExportFailed is returned when export operation fails.
	ErrExportFailed = errors.New("export failed")
)
