package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	domainerrors "taskhall/contexts/submission-core/form-registry-service/domain/errors"
	"taskhall/kernel/formschema"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateConfig(ctx context.Context, cfg formschema.FormConfig) (formschema.FormConfig, error) {
	document, err := encodeDocument(cfg)
	if err != nil {
		return formschema.FormConfig{}, err
	}

	var stored formConfigModel
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialises version assignment per kind for the rest of the transaction.
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "form_configs:"+string(cfg.Kind)).Error; err != nil {
			return err
		}

		var latest int
		if err := tx.Model(&formConfigModel{}).
			Where("kind = ?", string(cfg.Kind)).
			Select("COALESCE(MAX(version), 0)").
			Scan(&latest).
			Error; err != nil {
			return err
		}

		stored = formConfigModel{
			ConfigID:    cfg.ID,
			Kind:        string(cfg.Kind),
			Version:     latest + 1,
			Title:       cfg.Title,
			Description: cfg.Description,
			Document:    document,
			IsActive:    false,
			CreatedBy:   cfg.CreatedBy,
			CreatedAt:   cfg.CreatedAt.UTC(),
		}
		if err := tx.Create(&stored).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrRepositoryInvariantBroke
			}
			return err
		}
		return nil
	})
	if err != nil {
		return formschema.FormConfig{}, err
	}

	r.logger.Debug("form config row inserted",
		"event", "postgres_form_config_created",
		"module", "submission-core/form-registry-service",
		"layer", "adapter",
		"config_id", stored.ConfigID,
		"version", stored.Version,
	)
	return stored.toEntity()
}

func (r *Repository) GetConfig(ctx context.Context, configID string) (formschema.FormConfig, error) {
	var row formConfigModel
	err := r.db.WithContext(ctx).
		Where("config_id = ?", configID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return formschema.FormConfig{}, domainerrors.ErrFormConfigNotFound
		}
		return formschema.FormConfig{}, err
	}
	return row.toEntity()
}

func (r *Repository) GetActiveConfig(ctx context.Context, kind formschema.FormKind) (formschema.FormConfig, error) {
	var row formConfigModel
	err := r.db.WithContext(ctx).
		Where("kind = ? AND is_active = ?", string(kind), true).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return formschema.FormConfig{}, domainerrors.ErrNoActiveFormConfig
		}
		return formschema.FormConfig{}, err
	}
	return row.toEntity()
}

func (r *Repository) ListConfigs(ctx context.Context, kind formschema.FormKind) ([]formschema.FormConfig, error) {
	tx := r.db.WithContext(ctx).Model(&formConfigModel{})
	if kind != "" {
		tx = tx.Where("kind = ?", string(kind))
	}
	var rows []formConfigModel
	if err := tx.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "kind"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "version"}, Desc: true}).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]formschema.FormConfig, 0, len(rows))
	for _, row := range rows {
		cfg, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, cfg)
	}
	return items, nil
}

func (r *Repository) ActivateConfig(ctx context.Context, configID string, activatedAt time.Time) (formschema.FormConfig, error) {
	var target formConfigModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("config_id = ?", configID).
			First(&target).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrFormConfigNotFound
			}
			return err
		}
		// Concurrent activations of one kind would otherwise trip the
		// partial unique index on is_active.
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "form_configs:"+target.Kind).Error; err != nil {
			return err
		}

		if err := tx.Model(&formConfigModel{}).
			Where("kind = ? AND is_active = ? AND config_id <> ?", target.Kind, true, configID).
			Update("is_active", false).
			Error; err != nil {
			return err
		}

		at := activatedAt.UTC()
		result := tx.Model(&formConfigModel{}).
			Where("config_id = ?", configID).
			Updates(map[string]any{
				"is_active":    true,
				"activated_at": at,
			})
		if result.Error != nil {
			if isUniqueViolation(result.Error) {
				return domainerrors.ErrRepositoryInvariantBroke
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrFormConfigNotFound
		}
		target.IsActive = true
		target.ActivatedAt = &at
		return nil
	})
	if err != nil {
		return formschema.FormConfig{}, err
	}
	return target.toEntity()
}

func (r *Repository) DeactivateConfig(ctx context.Context, configID string) (formschema.FormConfig, error) {
	result := r.db.WithContext(ctx).
		Model(&formConfigModel{}).
		Where("config_id = ?", configID).
		Update("is_active", false)
	if result.Error != nil {
		return formschema.FormConfig{}, result.Error
	}
	if result.RowsAffected == 0 {
		return formschema.FormConfig{}, domainerrors.ErrFormConfigNotFound
	}
	return r.GetConfig(ctx, configID)
}

// formDocument is the JSONB body of a version: everything that defines the
// form apart from its identity and activation columns.
type formDocument struct {
	Fields           []formschema.FieldSpec       `json:"fields"`
	Pages            []formschema.Page            `json:"pages,omitempty"`
	ConditionalLogic []formschema.ConditionalRule `json:"conditional_logic,omitempty"`
	Requirements     []formschema.Requirement     `json:"requirements,omitempty"`
}

type formConfigModel struct {
	ConfigID    string     `gorm:"column:config_id;primaryKey"`
	Kind        string     `gorm:"column:kind"`
	Version     int        `gorm:"column:version"`
	Title       string     `gorm:"column:title"`
	Description string     `gorm:"column:description"`
	Document    []byte     `gorm:"column:document;type:jsonb"`
	IsActive    bool       `gorm:"column:is_active"`
	CreatedBy   string     `gorm:"column:created_by"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	ActivatedAt *time.Time `gorm:"column:activated_at"`
}

func (formConfigModel) TableName() string {
	return "form_configs"
}

func encodeDocument(cfg formschema.FormConfig) ([]byte, error) {
	return json.Marshal(formDocument{
		Fields:           cfg.Fields,
		Pages:            cfg.Pages,
		ConditionalLogic: cfg.ConditionalLogic,
		Requirements:     cfg.Requirements,
	})
}

func (m formConfigModel) toEntity() (formschema.FormConfig, error) {
	var document formDocument
	if len(m.Document) > 0 {
		if err := json.Unmarshal(m.Document, &document); err != nil {
			return formschema.FormConfig{}, err
		}
	}
	cfg := formschema.FormConfig{
		ID:               m.ConfigID,
		Kind:             formschema.FormKind(m.Kind),
		Title:            m.Title,
		Description:      m.Description,
		Version:          m.Version,
		Fields:           document.Fields,
		Pages:            document.Pages,
		ConditionalLogic: document.ConditionalLogic,
		Requirements:     document.Requirements,
		IsActive:         m.IsActive,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt.UTC(),
	}
	if m.ActivatedAt != nil {
		at := m.ActivatedAt.UTC()
		cfg.ActivatedAt = &at
	}
	return cfg, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
