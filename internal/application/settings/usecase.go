// Package settings expone la lectura y actualización de umbrales de política (solo admin).
package settings

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/greenstore-api/internal/application/audit"
	"github.com/jhoicas/greenstore-api/internal/domain"
	"github.com/jhoicas/greenstore-api/internal/domain/entity"
	"github.com/jhoicas/greenstore-api/internal/domain/repository"
)

type UseCase struct {
	tx    repository.TxRunner
	repos repository.Repos
}

func NewUseCase(tx repository.TxRunner, repos repository.Repos) *UseCase {
	return &UseCase{tx: tx, repos: repos}
}

// GetAll devuelve todas las claves configuradas.
func (uc *UseCase) GetAll(ctx context.Context) (map[string]string, error) {
	return uc.repos.Settings.GetAll(ctx)
}

// Update hace upsert de cada clave en una transacción. Las claves de política deben ser
// números no negativos.
func (uc *UseCase) Update(ctx context.Context, values map[string]string, userID string) (int, error) {
	if len(values) == 0 {
		return 0, domain.ErrNoSettings
	}
	keys := make([]string, 0, len(values))
	for k, v := range values {
		k = strings.TrimSpace(k)
		if k == "" {
			return 0, domain.NewBusinessError(domain.KindInvalid, "clave de configuración vacía")
		}
		if slices.Contains(entity.PolicyKeys, k) {
			n, err := decimal.NewFromString(strings.TrimSpace(v))
			if err != nil || n.IsNegative() {
				return 0, domain.NewBusinessError(domain.KindInvalid, "valor inválido para %s: %q", k, v)
			}
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	err := uc.tx.Run(ctx, func(ctx context.Context, r repository.Repos) error {
		for _, k := range keys {
			if err := r.Settings.Upsert(ctx, k, strings.TrimSpace(values[k])); err != nil {
				return err
			}
		}
		details := audit.Details{}
		for _, k := range keys {
			details[k] = strings.TrimSpace(values[k])
		}
		return audit.Record(ctx, r.Audit, entity.AuditSettingsUpdated, details, userID, nil)
	})
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}
