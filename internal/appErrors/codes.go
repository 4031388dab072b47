package appErrors

// Error codes grouped by domain.
const (
	// Request validation
	CodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Identification
	CodeNoObservations     ErrorCode = "NO_OBSERVATIONS"
	CodeCatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"

	// Catalog resources
	CodeStrainNotFound        ErrorCode = "STRAIN_NOT_FOUND"
	CodeTestNotFound          ErrorCode = "TEST_NOT_FOUND"
	CodeStrainIdentifierInUse ErrorCode = "STRAIN_IDENTIFIER_IN_USE"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
)
