package queries

import (
	"context"
	"log/slog"
	"time"

	application "taskhall/contexts/submission-core/form-registry-service/application"
	"taskhall/contexts/submission-core/form-registry-service/ports"
	"taskhall/kernel/formschema"
)

type ValidatePayloadQuery struct {
	Kind formschema.FormKind
	// ConfigID pins a specific version; empty means the active one.
	ConfigID string
	Data     formschema.Payload
	// Page selects one page of a multi-page form; nil validates everything.
	Page *int
}

type ValidatePayloadResult struct {
	ConfigID string
	Result   formschema.Result
}

// ValidatePayloadUseCase is a dry run used by multi-page clients between
// steps. Nothing is stored.
type ValidatePayloadUseCase struct {
	Reader ConfigReader
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc ValidatePayloadUseCase) Execute(ctx context.Context, query ValidatePayloadQuery) (ValidatePayloadResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	var (
		cfg formschema.FormConfig
		err error
	)
	if query.ConfigID != "" {
		cfg, err = uc.Reader.GetConfig(ctx, query.ConfigID)
	} else {
		cfg, err = uc.Reader.CurrentConfig(ctx, query.Kind)
	}
	if err != nil {
		return ValidatePayloadResult{}, err
	}

	validator := formschema.NewValidator(uc.now)
	var result formschema.Result
	if query.Page != nil {
		result, err = validator.ValidatePage(query.Data, cfg, *query.Page)
		if err != nil {
			return ValidatePayloadResult{}, err
		}
	} else {
		result = validator.Validate(query.Data, cfg)
	}

	logger.Debug("form payload dry-run validated",
		"event", "form_payload_validated",
		"module", "submission-core/form-registry-service",
		"layer", "application",
		"config_id", cfg.ID,
		"is_valid", result.IsValid,
		"error_count", len(result.Errors),
	)
	return ValidatePayloadResult{ConfigID: cfg.ID, Result: result}, nil
}

func (uc ValidatePayloadUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
