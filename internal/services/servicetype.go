package services

import (
	"strings"

	"github.com/sweeply/fieldops/internal/models"
)

// EffectiveServiceType returns the project's service type, falling back to
// title-keyword inference for legacy rows created before the explicit
// service_type column existed.
func EffectiveServiceType(m models.MajorProject) string {
	if m.ServiceType != "" {
		return m.ServiceType
	}
	return InferServiceType(m.Title)
}

// InferServiceType is the legacy compatibility shim that classifies a
// project by its title. It must never override an explicit service_type.
func InferServiceType(title string) string {
	if strings.Contains(title, "수거") || strings.Contains(title, "폐기") {
		return models.ServiceTypePickup
	}
	return models.ServiceTypeCleaning
}
