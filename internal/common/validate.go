package common

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ValidateUUID validates UUID path/body parameters.
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid UUID", fieldName)
	}

	return id, nil
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail validates email format for user records.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email is required")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("email has invalid format")
	}
	return nil
}

// ValidateRequiredString validates required string fields.
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateTenantPlan validates tenant subscription plan values.
func ValidateTenantPlan(plan string) error {
	switch plan {
	case "FREE", "PRO", "ENTERPRISE":
		return nil
	}
	return fmt.Errorf("plan must be one of: FREE, PRO, ENTERPRISE")
}

// ValidateUserRole validates user role values.
func ValidateUserRole(role string) error {
	switch role {
	case "ADMIN", "AUTHOR", "VIEWER":
		return nil
	}
	return fmt.Errorf("role must be one of: ADMIN, AUTHOR, VIEWER")
}

// ValidateAgentStatus validates agent lifecycle status values.
func ValidateAgentStatus(status string) error {
	switch status {
	case "DRAFT", "PUBLISHED", "DISABLED":
		return nil
	}
	return fmt.Errorf("status must be one of: DRAFT, PUBLISHED, DISABLED")
}

// ValidateToolType validates tool category values.
func ValidateToolType(toolType string) error {
	switch toolType {
	case "TICKET_CREATE", "TICKET_UPDATE", "KB_SEARCH", "HTTP_REQUEST", "CUSTOM":
		return nil
	}
	return fmt.Errorf("type must be one of: TICKET_CREATE, TICKET_UPDATE, KB_SEARCH, HTTP_REQUEST, CUSTOM")
}

// ValidateMessageRole validates conversation message role values.
func ValidateMessageRole(role string) error {
	switch role {
	case "USER", "ASSISTANT", "SYSTEM", "TOOL":
		return nil
	}
	return fmt.Errorf("role must be one of: USER, ASSISTANT, SYSTEM, TOOL")
}

// ValidateDocumentSource validates document source values.
func ValidateDocumentSource(source string) error {
	switch source {
	case "upload", "sharepoint", "confluence", "url":
		return nil
	}
	return fmt.Errorf("source must be one of: upload, sharepoint, confluence, url")
}

// ValidatePaginationParams applies defaults and bounds to pagination parameters.
func ValidatePaginationParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
