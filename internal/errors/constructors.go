package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *PortalError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *PortalError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *PortalError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Content serving errors

func PageNotFound(version, framework, page string) *PortalError {
	return New(CategoryNotFound, SeverityWarning, "documentation page not found").
		WithContext("version", version).
		WithContext("framework", framework).
		WithContext("page", page)
}

func RenderFailed(page string, cause error) *PortalError {
	return Wrap(cause, CategoryRender, SeverityError, "page rendering failed").
		WithContext("page", page)
}

func UnknownVersion(version string) *PortalError {
	return New(CategoryNotFound, SeverityWarning, "unknown documentation version").
		WithContext("version", version)
}

// Infrastructure errors

func StoreError(operation string, cause error) *PortalError {
	return Wrap(cause, CategoryStore, SeverityError, "preference store operation failed").
		WithContext("operation", operation)
}

func PublishError(subject string, cause error) *PortalError {
	return Wrap(cause, CategoryEvents, SeverityWarning, "event publish failed").
		WithContext("subject", subject)
}
