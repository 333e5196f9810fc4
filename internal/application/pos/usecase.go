// Package pos agrupa las acciones de caja que siempre o condicionalmente exigen aprobación
// de un gerente: quitar un ítem, cancelar una venta y forzar un descuento manual.
package pos

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/greenstore-api/internal/application/approval"
	"github.com/jhoicas/greenstore-api/internal/application/audit"
	"github.com/jhoicas/greenstore-api/internal/domain"
	"github.com/jhoicas/greenstore-api/internal/domain/discount"
	"github.com/jhoicas/greenstore-api/internal/domain/entity"
	"github.com/jhoicas/greenstore-api/internal/domain/policy"
	"github.com/jhoicas/greenstore-api/internal/domain/repository"
)

// UseCase acciones de caja con aprobación.
type UseCase struct {
	tx        repository.TxRunner
	approvals *approval.Service
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx repository.TxRunner, approvals *approval.Service) *UseCase {
	return &UseCase{tx: tx, approvals: approvals}
}

// Outcome resultado de una acción aprobada.
type Outcome struct {
	ApprovedBy *string
	Percent    decimal.Decimal // solo override
}

// RemoveItem quita un ítem del ticket; siempre exige aprobación remove_item.
func (uc *UseCase) RemoveItem(ctx context.Context, item, reason, userID, token string) (*Outcome, error) {
	item, reason = strings.TrimSpace(item), strings.TrimSpace(reason)
	if item == "" || reason == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.gated(ctx, true, token, entity.ActionRemoveItem, userID, audit.Details{"item": item, "reason": reason})
}

// CancelSale anula el ticket en curso; siempre exige aprobación cancel_sale.
func (uc *UseCase) CancelSale(ctx context.Context, reason string, items int, userID, token string) (*Outcome, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" || items < 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.gated(ctx, true, token, entity.ActionCancelSale, userID, audit.Details{"reason": reason, "items": items})
}

// OverrideInput descuento manual sobre el ticket.
type OverrideInput struct {
	Amount   decimal.Decimal
	Subtotal decimal.Decimal
	Reason   string
	UserID   string
	Token    string
}

// DiscountOverride valida un descuento manual contra max_discount (403 si lo supera) y
// exige aprobación discount_override cuando el porcentaje alcanza approval_threshold.
// Con alguna compuerta activa el subtotal es obligatorio si el monto es positivo.
func (uc *UseCase) DiscountOverride(ctx context.Context, in OverrideInput) (*Outcome, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" || in.Amount.IsNegative() || in.Subtotal.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var out *Outcome
	err := uc.tx.Run(ctx, func(ctx context.Context, r repository.Repos) error {
		settings, err := r.Settings.GetMany(ctx, []string{entity.SettingMaxDiscount, entity.SettingApprovalThreshold})
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		pol := policy.FromSettings(settings)
		if pol.DiscountChecksEnabled() && !in.Subtotal.IsPositive() && in.Amount.IsPositive() {
			return domain.ErrSubtotalRequired
		}
		pct := discount.Percent(in.Amount, in.Subtotal)
		if pol.DiscountAboveCeiling(pct) {
			return domain.ErrDiscountCeiling
		}
		o, err := uc.consumeAndAudit(ctx, r, pol.OverrideNeedsApproval(pct), in.Token, entity.ActionDiscountOverride, in.UserID, audit.Details{
			"amount": in.Amount, "subtotal": in.Subtotal, "reason": reason, "percent": pct.Round(2),
		})
		if err != nil {
			return err
		}
		o.Percent = pct
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *UseCase) gated(ctx context.Context, needed bool, token, action, userID string, details audit.Details) (*Outcome, error) {
	var out *Outcome
	err := uc.tx.Run(ctx, func(ctx context.Context, r repository.Repos) error {
		o, err := uc.consumeAndAudit(ctx, r, needed, token, action, userID, details)
		out = o
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *UseCase) consumeAndAudit(ctx context.Context, r repository.Repos, needed bool, token, action, userID string, details audit.Details) (*Outcome, error) {
	approvedBy, err := uc.approvals.Require(ctx, r, needed, token, action)
	if err != nil {
		return nil, err
	}
	if err := audit.Record(ctx, r.Audit, action, details, userID, approvedBy); err != nil {
		return nil, err
	}
	return &Outcome{ApprovedBy: approvedBy}, nil
}
