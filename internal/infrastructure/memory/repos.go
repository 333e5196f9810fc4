package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/greenstore-api/internal/domain"
	"github.com/jhoicas/greenstore-api/internal/domain/entity"
	"github.com/jhoicas/greenstore-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository       = (*productRepo)(nil)
	_ repository.StockMovementRepository = (*movementRepo)(nil)
	_ repository.StockLossRepository     = (*lossRepo)(nil)
	_ repository.SaleRepository          = (*saleRepo)(nil)
	_ repository.DiscountRepository      = (*discountRepo)(nil)
	_ repository.ApprovalRepository      = (*approvalRepo)(nil)
	_ repository.AuditLogRepository      = (*auditRepo)(nil)
	_ repository.SettingRepository       = (*settingRepo)(nil)
	_ repository.UserRepository          = (*userRepo)(nil)
)

type productRepo struct{ s *Store }

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetForUpdate no necesita bloqueo propio: Run ya serializa las transacciones.
func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) UpdateStock(_ context.Context, id string, currentStock decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if currentStock.IsNegative() {
		return domain.ErrNegativeStock
	}
	p.CurrentStock = currentStock
	p.UpdatedAt = r.s.now()
	r.s.st.products[id] = p
	return nil
}

func (r *productRepo) ListBelowMin(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0)
	for _, p := range r.s.st.products {
		if p.NeedsRestock() {
			out = append(out, &p)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Product) int {
		if c := a.CurrentStock.Cmp(b.CurrentStock); c != 0 {
			return c
		}
		return cmp.Compare(a.SKU, b.SKU)
	})
	return out, nil
}

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.s.now()
	}
	r.s.st.movements = append(r.s.st.movements, *m)
	return nil
}

// List devuelve los más recientes primero.
func (r *movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.StockMovement, 0)
	for i := len(r.s.st.movements) - 1; i >= 0; i-- {
		m := r.s.st.movements[i]
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if p, ok := r.s.st.products[m.ProductID]; ok {
			m.ProductName = p.Name
		}
		out = append(out, &m)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r *movementRepo) SumDelta(_ context.Context, productID string) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum := decimal.Zero
	for _, m := range r.s.st.movements {
		if m.ProductID == productID {
			sum = sum.Add(m.Delta)
		}
	}
	return sum, nil
}

type lossRepo struct{ s *Store }

func (r *lossRepo) Create(_ context.Context, l *entity.StockLoss) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = r.s.now()
	}
	r.s.st.losses = append(r.s.st.losses, *l)
	return nil
}

func (r *lossRepo) List(_ context.Context, limit int) ([]*entity.StockLoss, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.StockLoss, 0)
	for i := len(r.s.st.losses) - 1; i >= 0; i-- {
		l := r.s.st.losses[i]
		if p, ok := r.s.st.products[l.ProductID]; ok {
			l.ProductName = p.Name
		}
		out = append(out, &l)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type saleRepo struct{ s *Store }

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = r.s.now()
	}
	r.s.st.sales[sale.ID] = *sale
	return nil
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sale, ok := r.s.st.sales[id]
	if !ok {
		return nil, nil
	}
	if p, ok := r.s.st.products[sale.ProductID]; ok {
		sale.ProductName = p.Name
	}
	return &sale, nil
}

type discountRepo struct{ s *Store }

func (r *discountRepo) Create(_ context.Context, d *entity.Discount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = r.s.now()
	}
	r.s.st.discounts[d.ID] = *d
	return nil
}

func (r *discountRepo) Update(_ context.Context, d *entity.Discount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.discounts[d.ID]; !ok {
		return domain.ErrDiscountNotFound
	}
	r.s.st.discounts[d.ID] = *d
	return nil
}

func (r *discountRepo) GetByID(_ context.Context, id string) (*entity.Discount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.st.discounts[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *discountRepo) List(_ context.Context) ([]*entity.Discount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Discount, 0, len(r.s.st.discounts))
	for _, d := range r.s.st.discounts {
		out = append(out, &d)
	}
	slices.SortFunc(out, func(a, b *entity.Discount) int {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

type approvalRepo struct{ s *Store }

func (r *approvalRepo) Create(_ context.Context, a *entity.Approval) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = r.s.now()
	}
	for _, existing := range r.s.st.approvals {
		if existing.TokenHash == a.TokenHash {
			return domain.ErrDuplicate
		}
	}
	r.s.st.approvals[a.ID] = *a
	return nil
}

func (r *approvalRepo) FindUnused(_ context.Context, tokenHash, action string) (*entity.Approval, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.st.approvals {
		if a.TokenHash == tokenHash && a.Action == action && a.UsedAt == nil {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *approvalRepo) MarkUsed(_ context.Context, id string, usedAt time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.st.approvals[id]
	if !ok || a.UsedAt != nil {
		return false, nil
	}
	a.UsedAt = &usedAt
	r.s.st.approvals[id] = a
	return true, nil
}

type auditRepo struct{ s *Store }

func (r *auditRepo) Append(_ context.Context, e *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = r.s.now()
	}
	r.s.st.audit = append(r.s.st.audit, *e)
	return nil
}

type settingRepo struct{ s *Store }

func (r *settingRepo) GetMany(_ context.Context, keys []string) (map[string]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := r.s.st.settings[k]; ok {
			out[k] = v.Value
		}
	}
	return out, nil
}

func (r *settingRepo) GetAll(_ context.Context) (map[string]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]string, len(r.s.st.settings))
	for k, v := range r.s.st.settings {
		out[k] = v.Value
	}
	return out, nil
}

func (r *settingRepo) Upsert(_ context.Context, key, value string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.settings[key] = entity.Setting{Key: key, Value: value, UpdatedAt: r.s.now()}
	return nil
}

type userRepo struct{ s *Store }

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.st.users[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
