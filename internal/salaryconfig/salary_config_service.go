package salaryconfig

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	salaryconfigerrors "github.com/nosakhare/simple-payroll/internal/salaryconfig/errors"
)

// ActiveConfigCacheKey caches the active configuration; master data that
// changes only on activation, so a long TTL is safe.
const ActiveConfigCacheKey = "salary_configurations:active"

var percentTolerance = decimal.NewFromFloat(0.01)

//go:generate mockgen -source=salary_config_service.go -destination=mock/salary_config_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateSalaryConfigurationRequest) (SalaryConfigurationResponse, error)
	GetAll(ctx context.Context) ([]SalaryConfigurationResponse, error)
	GetActive(ctx context.Context) (SalaryConfiguration, error)
	Update(ctx context.Context, id string, req UpdateSalaryConfigurationRequest) (SalaryConfigurationResponse, error)
	Activate(ctx context.Context, id string) (SalaryConfigurationResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, rdb *redis.Client) Service {
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: zap.L().Named("salaryconfig.service"),
	}
}

func (s *service) Create(
	ctx context.Context,
	actorID string,
	req CreateSalaryConfigurationRequest,
) (SalaryConfigurationResponse, error) {
	createdBy, err := uuid.Parse(actorID)
	if err != nil {
		return SalaryConfigurationResponse{}, salaryconfigerrors.ErrInvalidActorID
	}

	config := &SalaryConfiguration{
		ID:               uuid.New(),
		Name:             req.Name,
		BasicPercent:     decimal.NewFromFloat(req.BasicPercent),
		TransportPercent: decimal.NewFromFloat(req.TransportPercent),
		HousingPercent:   decimal.NewFromFloat(req.HousingPercent),
		UtilityPercent:   decimal.NewFromFloat(req.UtilityPercent),
		MealPercent:      decimal.NewFromFloat(req.MealPercent),
		ClothingPercent:  decimal.NewFromFloat(req.ClothingPercent),
		IsActive:         false,
		CreatedBy:        createdBy,
	}

	if err := validatePercentSum(*config); err != nil {
		return SalaryConfigurationResponse{}, err
	}

	if err := s.repo.Create(ctx, config); err != nil {
		return SalaryConfigurationResponse{}, err
	}

	return mapToResponse(*config), nil
}

func (s *service) GetAll(ctx context.Context) ([]SalaryConfigurationResponse, error) {
	configs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]SalaryConfigurationResponse, len(configs))
	for i, config := range configs {
		resp[i] = mapToResponse(config)
	}
	return resp, nil
}

// GetActive returns the active configuration, falling back to the default
// 60/10/15/5/5/5 split when none has been activated. Reads go through redis
// and singleflight so a payroll run fan-out does not hammer the database.
func (s *service) GetActive(ctx context.Context) (SalaryConfiguration, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, ActiveConfigCacheKey).Result()
		if err == nil {
			var config SalaryConfiguration
			if err := json.Unmarshal([]byte(cached), &config); err == nil {
				return config, nil
			}
		}
	}

	v, err, _ := s.sf.Do(ActiveConfigCacheKey, func() (interface{}, error) {
		active, err := s.repo.FindActive(ctx)
		if err != nil {
			return SalaryConfiguration{}, err
		}

		config := DefaultConfiguration()
		if active != nil {
			config = *active
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(config); err == nil {
				s.rdb.Set(ctx, ActiveConfigCacheKey, payload, 30*time.Minute)
			}
		}

		return config, nil
	})
	if err != nil {
		return SalaryConfiguration{}, err
	}

	return v.(SalaryConfiguration), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateSalaryConfigurationRequest,
) (SalaryConfigurationResponse, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return SalaryConfigurationResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	config, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryConfigurationResponse{}, salaryconfigerrors.ErrNotFound
		}
		return SalaryConfigurationResponse{}, err
	}

	config.Name = req.Name
	config.BasicPercent = decimal.NewFromFloat(req.BasicPercent)
	config.TransportPercent = decimal.NewFromFloat(req.TransportPercent)
	config.HousingPercent = decimal.NewFromFloat(req.HousingPercent)
	config.UtilityPercent = decimal.NewFromFloat(req.UtilityPercent)
	config.MealPercent = decimal.NewFromFloat(req.MealPercent)
	config.ClothingPercent = decimal.NewFromFloat(req.ClothingPercent)

	if err := validatePercentSum(*config); err != nil {
		return SalaryConfigurationResponse{}, err
	}

	if err := qtx.Update(ctx, config); err != nil {
		return SalaryConfigurationResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return SalaryConfigurationResponse{}, err
	}

	s.invalidateActiveCache(ctx)

	return mapToResponse(*config), nil
}

// Activate makes one configuration the system-wide active split. All other
// rows are deactivated in the same transaction so the single-active
// invariant holds even under concurrent activations.
func (s *service) Activate(ctx context.Context, id string) (SalaryConfigurationResponse, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return SalaryConfigurationResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	config, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryConfigurationResponse{}, salaryconfigerrors.ErrNotFound
		}
		return SalaryConfigurationResponse{}, err
	}

	if err := qtx.DeactivateAll(ctx); err != nil {
		return SalaryConfigurationResponse{}, err
	}

	config.IsActive = true
	if err := qtx.Update(ctx, config); err != nil {
		return SalaryConfigurationResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return SalaryConfigurationResponse{}, err
	}

	s.invalidateActiveCache(ctx)
	s.logger.Info("salary configuration activated",
		zap.String("configuration_id", id),
		zap.String("name", config.Name),
	)

	return mapToResponse(*config), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	config, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return salaryconfigerrors.ErrNotFound
		}
		return err
	}

	if config.IsActive {
		return salaryconfigerrors.ErrDeleteActive
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) invalidateActiveCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, ActiveConfigCacheKey).Err(); err != nil {
		s.logger.Error("invalidate active config cache failed", zap.Error(err))
	}
}

func validatePercentSum(config SalaryConfiguration) error {
	diff := config.TotalPercent().Sub(oneHundred).Abs()
	if diff.GreaterThan(percentTolerance) {
		return salaryconfigerrors.ErrPercentSum.WithDetail(
			"got " + config.TotalPercent().String(),
		)
	}
	return nil
}

func mapToResponse(config SalaryConfiguration) SalaryConfigurationResponse {
	resp := SalaryConfigurationResponse{
		ID:               config.ID.String(),
		Name:             config.Name,
		BasicPercent:     config.BasicPercent.String(),
		TransportPercent: config.TransportPercent.String(),
		HousingPercent:   config.HousingPercent.String(),
		UtilityPercent:   config.UtilityPercent.String(),
		MealPercent:      config.MealPercent.String(),
		ClothingPercent:  config.ClothingPercent.String(),
		IsActive:         config.IsActive,
	}
	if config.CreatedBy != uuid.Nil {
		resp.CreatedBy = config.CreatedBy.String()
	}
	return resp
}
