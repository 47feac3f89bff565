package formschema

import "time"

// RequirementCheck evaluates one requirement against the whole payload.
type RequirementCheck func(data Payload, req Requirement, now time.Time) []string

// Catalog is the set of field kinds and requirement kinds a form kind allows.
type Catalog struct {
	Kind         FormKind
	FieldKinds   []FieldKind
	Requirements map[RequirementKind]RequirementCheck
}

func (c Catalog) Permits(kind FieldKind) bool {
	for _, candidate := range c.FieldKinds {
		if candidate == kind {
			return true
		}
	}
	return false
}

func (c Catalog) Requirement(kind RequirementKind) (RequirementCheck, bool) {
	check, ok := c.Requirements[kind]
	return check, ok
}

func SurveyCatalog() Catalog {
	return Catalog{
		Kind: FormKindSurvey,
		FieldKinds: []FieldKind{
			FieldText,
			FieldTextarea,
			FieldNumber,
			FieldEmail,
			FieldPhone,
			FieldSelect,
			FieldRadio,
			FieldCheckbox,
			FieldDate,
			FieldFile,
		},
	}
}

func TaskCatalog() Catalog {
	return Catalog{
		Kind: FormKindTask,
		FieldKinds: []FieldKind{
			FieldText,
			FieldTextarea,
			FieldNumber,
			FieldEmail,
			FieldURL,
			FieldSelect,
			FieldRadio,
			FieldCheckbox,
			FieldDate,
			FieldFile,
			FieldScreenshot,
			FieldSocialMediaLink,
		},
		Requirements: map[RequirementKind]RequirementCheck{
			RequirementMinFollowers:   checkMinFollowers,
			RequirementAccountAge:     checkAccountAge,
			RequirementContentQuality: checkContentQuality,
			RequirementEngagementRate: checkEngagementRate,
		},
	}
}

// CatalogFor returns the catalog of a form kind.
func CatalogFor(kind FormKind) (Catalog, bool) {
	switch kind {
	case FormKindSurvey:
		return SurveyCatalog(), true
	case FormKindTask:
		return TaskCatalog(), true
	default:
		return Catalog{}, false
	}
}
