package httpadapter

import (
	"context"
	"log/slog"
	"time"

	application "taskhall/contexts/submission-core/form-registry-service/application"
	"taskhall/contexts/submission-core/form-registry-service/application/commands"
	"taskhall/contexts/submission-core/form-registry-service/application/queries"
	httptransport "taskhall/contexts/submission-core/form-registry-service/transport/http"
	"taskhall/kernel/formschema"
)

type Handler struct {
	Reader     queries.ConfigReader
	List       queries.ListFormConfigsUseCase
	Validate   queries.ValidatePayloadUseCase
	Publish    commands.PublishFormConfigUseCase
	Activate   commands.ActivateFormConfigUseCase
	Deactivate commands.DeactivateFormConfigUseCase
	Logger     *slog.Logger
}

// CurrentFormConfigHandler godoc
// @Summary Get the active form config
// @Description Returns the single active config of a form kind.
// @Tags form-registry
// @Produce json
// @Param kind path string true "Form kind: survey or task"
// @Success 200 {object} httptransport.GetFormConfigResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/forms/kinds/{kind}/current [get]
func (h Handler) CurrentFormConfigHandler(ctx context.Context, kind string) (httptransport.GetFormConfigResponse, error) {
	cfg, err := h.Reader.CurrentConfig(ctx, formschema.FormKind(kind))
	if err != nil {
		return httptransport.GetFormConfigResponse{}, err
	}
	return httptransport.GetFormConfigResponse{Item: MapFormConfig(cfg)}, nil
}

// GetFormConfigHandler godoc
// @Summary Get a form config version
// @Tags form-registry
// @Produce json
// @Param config_id path string true "Form config id"
// @Success 200 {object} httptransport.GetFormConfigResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/forms/configs/{config_id} [get]
func (h Handler) GetFormConfigHandler(ctx context.Context, configID string) (httptransport.GetFormConfigResponse, error) {
	cfg, err := h.Reader.GetConfig(ctx, configID)
	if err != nil {
		return httptransport.GetFormConfigResponse{}, err
	}
	return httptransport.GetFormConfigResponse{Item: MapFormConfig(cfg)}, nil
}

// ValidatePayloadHandler godoc
// @Summary Dry-run validate a payload
// @Description Validates a whole form or one page without storing anything.
// @Tags form-registry
// @Accept json
// @Produce json
// @Param request body httptransport.ValidatePayloadRequest true "Payload"
// @Success 200 {object} httptransport.ValidatePayloadResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/forms/validate [post]
func (h Handler) ValidatePayloadHandler(ctx context.Context, req httptransport.ValidatePayloadRequest) (httptransport.ValidatePayloadResponse, error) {
	result, err := h.Validate.Execute(ctx, queries.ValidatePayloadQuery{
		Kind:     formschema.FormKind(req.Kind),
		ConfigID: req.ConfigID,
		Data:     formschema.Payload(req.Data),
		Page:     req.Page,
	})
	if err != nil {
		return httptransport.ValidatePayloadResponse{}, err
	}
	return httptransport.ValidatePayloadResponse{
		ConfigID: result.ConfigID,
		IsValid:  result.Result.IsValid,
		Errors:   result.Result.Errors,
	}, nil
}

// ListFormConfigsHandler godoc
// @Summary List form config versions
// @Tags form-registry-admin
// @Produce json
// @Param X-Admin-Id header string true "Admin id"
// @Param kind query string false "Form kind filter"
// @Success 200 {object} httptransport.ListFormConfigsResponse
// @Router /v1/admin/forms [get]
func (h Handler) ListFormConfigsHandler(ctx context.Context, kind string) (httptransport.ListFormConfigsResponse, error) {
	items, err := h.List.Execute(ctx, formschema.FormKind(kind))
	if err != nil {
		return httptransport.ListFormConfigsResponse{}, err
	}
	resp := httptransport.ListFormConfigsResponse{Items: make([]httptransport.FormConfigDTO, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, MapFormConfig(item))
	}
	return resp, nil
}

// PublishFormConfigHandler godoc
// @Summary Publish a form config version
// @Description Stores a new immutable version, optionally activating it.
// @Tags form-registry-admin
// @Accept json
// @Produce json
// @Param X-Admin-Id header string true "Admin id"
// @Param request body httptransport.PublishFormConfigRequest true "Config document"
// @Success 201 {object} httptransport.GetFormConfigResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /v1/admin/forms [post]
func (h Handler) PublishFormConfigHandler(
	ctx context.Context,
	adminID string,
	req httptransport.PublishFormConfigRequest,
) (httptransport.GetFormConfigResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	result, err := h.Publish.Execute(ctx, commands.PublishFormConfigCommand{
		Document: req.Config,
		ActorID:  adminID,
		Activate: req.Activate,
	})
	if err != nil {
		logger.Warn("publish form config request failed",
			"event", "http_publish_form_config_failed",
			"module", "submission-core/form-registry-service",
			"layer", "transport",
			"admin_id", adminID,
			"error", err.Error(),
		)
		return httptransport.GetFormConfigResponse{}, err
	}
	return httptransport.GetFormConfigResponse{Item: MapFormConfig(result.Config)}, nil
}

// ActivateFormConfigHandler godoc
// @Summary Activate a form config version
// @Tags form-registry-admin
// @Produce json
// @Param X-Admin-Id header string true "Admin id"
// @Param config_id path string true "Form config id"
// @Success 200 {object} httptransport.GetFormConfigResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/admin/forms/{config_id}/activate [post]
func (h Handler) ActivateFormConfigHandler(ctx context.Context, adminID string, configID string) (httptransport.GetFormConfigResponse, error) {
	result, err := h.Activate.Execute(ctx, commands.ActivateFormConfigCommand{ConfigID: configID, ActorID: adminID})
	if err != nil {
		return httptransport.GetFormConfigResponse{}, err
	}
	return httptransport.GetFormConfigResponse{Item: MapFormConfig(result.Config)}, nil
}

// DeactivateFormConfigHandler godoc
// @Summary Deactivate a form config version
// @Tags form-registry-admin
// @Produce json
// @Param X-Admin-Id header string true "Admin id"
// @Param config_id path string true "Form config id"
// @Success 200 {object} httptransport.GetFormConfigResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/admin/forms/{config_id}/deactivate [post]
func (h Handler) DeactivateFormConfigHandler(ctx context.Context, adminID string, configID string) (httptransport.GetFormConfigResponse, error) {
	cfg, err := h.Deactivate.Execute(ctx, commands.DeactivateFormConfigCommand{ConfigID: configID, ActorID: adminID})
	if err != nil {
		return httptransport.GetFormConfigResponse{}, err
	}
	return httptransport.GetFormConfigResponse{Item: MapFormConfig(cfg)}, nil
}

func MapFormConfig(cfg formschema.FormConfig) httptransport.FormConfigDTO {
	dto := httptransport.FormConfigDTO{
		ID:               cfg.ID,
		Kind:             string(cfg.Kind),
		Title:            cfg.Title,
		Description:      cfg.Description,
		Version:          cfg.Version,
		IsActive:         cfg.IsActive,
		Fields:           cfg.Fields,
		Pages:            cfg.Pages,
		ConditionalLogic: cfg.ConditionalLogic,
		Requirements:     cfg.Requirements,
		CreatedBy:        cfg.CreatedBy,
		CreatedAt:        cfg.CreatedAt.UTC().Format(time.RFC3339),
	}
	if cfg.ActivatedAt != nil {
		dto.ActivatedAt = cfg.ActivatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}
