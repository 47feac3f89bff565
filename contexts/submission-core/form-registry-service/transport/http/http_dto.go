package httptransport

import (
	"encoding/json"

	"taskhall/kernel/formschema"
)

type FormConfigDTO struct {
	ID               string                       `json:"id"`
	Kind             string                       `json:"kind"`
	Title            string                       `json:"title"`
	Description      string                       `json:"description,omitempty"`
	Version          int                          `json:"version"`
	IsActive         bool                         `json:"is_active"`
	Fields           []formschema.FieldSpec       `json:"fields"`
	Pages            []formschema.Page            `json:"pages,omitempty"`
	ConditionalLogic []formschema.ConditionalRule `json:"conditional_logic,omitempty"`
	Requirements     []formschema.Requirement     `json:"requirements,omitempty"`
	CreatedBy        string                       `json:"created_by,omitempty"`
	CreatedAt        string                       `json:"created_at"`
	ActivatedAt      string                       `json:"activated_at,omitempty"`
}

type GetFormConfigResponse struct {
	Item FormConfigDTO `json:"item"`
}

type ListFormConfigsResponse struct {
	Items []FormConfigDTO `json:"items"`
}

type PublishFormConfigRequest struct {
	Activate bool            `json:"activate"`
	Config   json.RawMessage `json:"config" validate:"required"`
}

type ValidatePayloadRequest struct {
	Kind     string         `json:"kind" validate:"omitempty,oneof=survey task"`
	ConfigID string         `json:"config_id,omitempty"`
	Page     *int           `json:"page,omitempty" validate:"omitempty,min=0"`
	Data     map[string]any `json:"data" validate:"required"`
}

type ValidatePayloadResponse struct {
	ConfigID string   `json:"config_id"`
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
}

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}
