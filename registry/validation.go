package registry

import (
	"fmt"
	"strings"

	"aeroparts/model"
)

// Constants for input validation and limits
const (
	maxStringInputLength = 256
	maxArrayElements     = 50 // Certificates per organization, documents per create
)

func validateRequiredString(input, field string, max int) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidInput, field)
	}
	if len(input) > max {
		return fmt.Errorf("%w: %s exceeds max length %d", ErrInvalidInput, field, max)
	}
	return nil
}

func validateOptionalString(input, field string, max int) error {
	if input != "" && len(input) > max {
		return fmt.Errorf("%w: %s exceeds max length %d", ErrInvalidInput, field, max)
	}
	return nil
}

func validateStringArray(arr []string, field string, maxItems, maxItemLen int) error {
	if len(arr) > maxItems {
		return fmt.Errorf("%w: %s has %d items, exceeding maximum of %d", ErrInvalidInput, field, len(arr), maxItems)
	}
	for i, v := range arr {
		if err := validateOptionalString(v, fmt.Sprintf("%s[%d]", field, i), maxItemLen); err != nil {
			return err
		}
	}
	return nil
}

func validateDocuments(docs map[string]string) error {
	if len(docs) > maxArrayElements {
		return fmt.Errorf("%w: documents has %d items, exceeding maximum of %d", ErrInvalidInput, len(docs), maxArrayElements)
	}
	for name, hash := range docs {
		if err := validateRequiredString(name, "document name", maxStringInputLength); err != nil {
			return err
		}
		if err := validateRequiredString(hash, fmt.Sprintf("hash of document '%s'", name), maxStringInputLength); err != nil {
			return err
		}
	}
	return nil
}

// ParsePartStatus accepts a status name in any letter case.
func ParsePartStatus(s string) (model.PartStatus, error) {
	trimmed := strings.TrimSpace(s)
	for _, status := range model.PartStatuses {
		if strings.EqualFold(trimmed, string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: invalid part status '%s'. Valid statuses: %v", ErrInvalidInput, s, model.PartStatuses)
}

// ParseOrgKind accepts an organization kind in any letter case.
func ParseOrgKind(s string) (model.OrgKind, error) {
	trimmed := strings.TrimSpace(s)
	for _, kind := range []model.OrgKind{model.KindOEM, model.KindMRO, model.KindAirline, model.KindLessor, model.KindDistributor} {
		if strings.EqualFold(trimmed, string(kind)) {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: invalid organization kind '%s'", ErrInvalidInput, s)
}

// rosterKind rejects kinds that have no authorization roster.
func rosterKind(kind model.OrgKind) error {
	if kind != model.KindOEM && kind != model.KindMRO {
		return fmt.Errorf("%w: organizations of kind '%s' cannot be registered, only %s and %s", ErrInvalidInput, kind, model.KindOEM, model.KindMRO)
	}
	return nil
}
