package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
)

// ConfigRepository implements ports.ConfigRepository on the snapshot store.
type ConfigRepository struct {
	client *redis.Client
}

func NewConfigRepository(client *redis.Client) *ConfigRepository {
	return &ConfigRepository{client: client}
}

func (r *ConfigRepository) Get(ctx context.Context) (*domain.SiteConfig, error) {
	return getRecord[domain.SiteConfig](ctx, r.client, ports.ColSiteConfig, domain.SiteConfigID)
}

// EnsureDefault writes safe defaults only when the singleton is absent.
// HSetNX makes the conditional create atomic across concurrent callers.
func (r *ConfigRepository) EnsureDefault(ctx context.Context) error {
	cfg := domain.SiteConfig{
		ID:                 domain.SiteConfigID,
		IsSiteLocked:       false,
		MaintenanceMessage: domain.DefaultMaintenanceMessage,
	}
	raw, err := json.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encode site config: %w", err)
	}
	set, err := r.client.HSetNX(ctx, hashKey(ports.ColSiteConfig), domain.SiteConfigID, string(raw)).Result()
	if err != nil {
		return fmt.Errorf("ensure site config: %w", err)
	}
	if !set {
		return nil
	}
	return notify(ctx, r.client, ports.ColSiteConfig)
}

func (r *ConfigRepository) SetLocked(ctx context.Context, locked bool, message string) error {
	err := mutateRecord(ctx, r.client, ports.ColSiteConfig, domain.SiteConfigID, func(cfg *domain.SiteConfig) (bool, error) {
		cfg.IsSiteLocked = locked
		cfg.MaintenanceMessage = message
		return true, nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		cfg := domain.SiteConfig{
			ID:                 domain.SiteConfigID,
			IsSiteLocked:       locked,
			MaintenanceMessage: message,
		}
		return putRecord(ctx, r.client, ports.ColSiteConfig, domain.SiteConfigID, &cfg)
	}
	return err
}
