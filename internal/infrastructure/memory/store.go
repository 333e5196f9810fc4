// Package memory implementa los repositorios en memoria para desarrollo, demos y tests.
// Las transacciones se serializan y un rollback restaura una copia del estado previo.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/greenstore-api/internal/domain/entity"
	"github.com/jhoicas/greenstore-api/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

type state struct {
	products  map[string]entity.Product
	movements []entity.StockMovement
	losses    []entity.StockLoss
	sales     map[string]entity.Sale
	discounts map[string]entity.Discount
	approvals map[string]entity.Approval
	audit     []entity.AuditLog
	settings  map[string]entity.Setting
	users     map[string]entity.User // por email
}

func newState() *state {
	return &state{
		products:  map[string]entity.Product{},
		sales:     map[string]entity.Sale{},
		discounts: map[string]entity.Discount{},
		approvals: map[string]entity.Approval{},
		settings:  map[string]entity.Setting{},
		users:     map[string]entity.User{},
	}
}

func (s *state) clone() *state {
	return &state{
		products:  maps.Clone(s.products),
		movements: slices.Clone(s.movements),
		losses:    slices.Clone(s.losses),
		sales:     maps.Clone(s.sales),
		discounts: maps.Clone(s.discounts),
		approvals: maps.Clone(s.approvals),
		audit:     slices.Clone(s.audit),
		settings:  maps.Clone(s.settings),
		users:     maps.Clone(s.users),
	}
}

// Store guarda todo el estado en mapas protegidos por mutex.
type Store struct {
	txMu sync.Mutex // una transacción a la vez (equivale al bloqueo de filas)
	mu   sync.RWMutex
	st   *state
	now  func() time.Time
}

// New crea un store vacío.
func New() *Store {
	return &Store{st: newState(), now: func() time.Time { return time.Now().UTC() }}
}

// WithClock reemplaza el reloj usado para timestamps (tests).
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Run ejecuta fn en una "transacción": si fn falla, el estado vuelve a la copia tomada al inicio.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, r repository.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	s.mu.RLock()
	snapshot := s.st.clone()
	s.mu.RUnlock()

	if err := fn(ctx, s.Repos()); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// Repos devuelve los repositorios sobre el store (fuera de transacción sirven para lecturas).
func (s *Store) Repos() repository.Repos {
	return repository.Repos{
		Products:  &productRepo{s},
		Movements: &movementRepo{s},
		Losses:    &lossRepo{s},
		Sales:     &saleRepo{s},
		Discounts: &discountRepo{s},
		Approvals: &approvalRepo{s},
		Audit:     &auditRepo{s},
		Settings:  &settingRepo{s},
		Users:     &userRepo{s},
	}
}

// PutProduct inserta o reemplaza un producto; asigna ID si viene vacío.
func (s *Store) PutProduct(p entity.Product) entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
		p.UpdatedAt = p.CreatedAt
	}
	s.st.products[p.ID] = p
	return p
}

// PutDiscount inserta o reemplaza un descuento.
func (s *Store) PutDiscount(d entity.Discount) entity.Discount {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = s.now()
	}
	s.st.discounts[d.ID] = d
	return d
}

// PutSetting fija un valor de configuración.
func (s *Store) PutSetting(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.settings[key] = entity.Setting{Key: key, Value: value, UpdatedAt: s.now()}
}

// PutUser crea un usuario con la contraseña hasheada con bcrypt.
func (s *Store) PutUser(email, password, name, role string) (entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return entity.User{}, fmt.Errorf("hash password: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	u := entity.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.st.users[strings.ToLower(email)] = u
	return u, nil
}

// Product devuelve una copia del producto para inspección.
func (s *Store) Product(id string) (entity.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.st.products[id]
	return p, ok
}

// Movements devuelve el ledger completo en orden de inserción.
func (s *Store) Movements() []entity.StockMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.st.movements)
}

// Losses devuelve las mermas en orden de inserción.
func (s *Store) Losses() []entity.StockLoss {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.st.losses)
}

// Sales devuelve todas las ventas.
func (s *Store) Sales() []entity.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Collect(maps.Values(s.st.sales))
}

// AuditLogs devuelve la auditoría en orden de inserción.
func (s *Store) AuditLogs() []entity.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.st.audit)
}

// Approvals devuelve todas las aprobaciones emitidas.
func (s *Store) Approvals() []entity.Approval {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Collect(maps.Values(s.st.approvals))
}

// SeedDemo carga usuarios y productos de demostración para STORE_DRIVER=memory.
func (s *Store) SeedDemo(adminPassword, managerPassword, operatorPassword string) error {
	for _, u := range []struct {
		email, password, name, role string
	}{
		{"admin@greenstore.local", adminPassword, "Administrador", entity.RoleAdmin},
		{"gerente@greenstore.local", managerPassword, "Gerente", entity.RoleManager},
		{"supervisor@greenstore.local", operatorPassword, "Supervisor", entity.RoleSupervisor},
		{"caja@greenstore.local", operatorPassword, "Caja 1", entity.RoleOperator},
	} {
		if _, err := s.PutUser(u.email, u.password, u.name, u.role); err != nil {
			return err
		}
	}
	for _, p := range []entity.Product{
		{SKU: "FRU-MAN-01", Name: "Manzana verde", UnitType: "kg", CategoryID: "frutas", Price: decimal.RequireFromString("6.50"), CurrentStock: decimal.NewFromInt(40), MinStock: decimal.NewFromInt(10), MaxStock: decimal.NewFromInt(120)},
		{SKU: "LAC-LEC-01", Name: "Leche entera 1L", UnitType: "unidad", CategoryID: "lacteos", Price: decimal.RequireFromString("4.20"), CurrentStock: decimal.NewFromInt(24), MinStock: decimal.NewFromInt(12), MaxStock: decimal.NewFromInt(60)},
		{SKU: "GRA-ARR-01", Name: "Arroz 1kg", UnitType: "unidad", CategoryID: "granos", Price: decimal.RequireFromString("5.00"), CurrentStock: decimal.NewFromInt(8), MinStock: decimal.NewFromInt(10), MaxStock: decimal.NewFromInt(80)},
	} {
		p = s.PutProduct(p)
		// Saldo inicial como entrada para que el ledger cuadre con current_stock.
		opening := &entity.StockMovement{
			ProductID:   p.ID,
			ProductName: p.Name,
			Type:        entity.MovementTypeInbound,
			Delta:       p.CurrentStock,
			Reason:      "Saldo inicial",
			PerformedBy: "seed",
		}
		if err := (&movementRepo{s}).Create(context.Background(), opening); err != nil {
			return err
		}
	}
	s.PutSetting(entity.SettingMaxDiscount, "20")
	s.PutSetting(entity.SettingMaxStockAdjust, "200")
	s.PutSetting(entity.SettingMaxLosses, "100")
	s.PutSetting(entity.SettingApprovalThreshold, "10")
	return nil
}
