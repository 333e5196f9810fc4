// Package approval implementa el flujo de tokens de aprobación de un solo uso:
// un gerente se re-autentica, se emite un token corto y la operación sensible lo consume.
package approval

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/greenstore-api/internal/domain"
	"github.com/jhoicas/greenstore-api/internal/domain/entity"
	"github.com/jhoicas/greenstore-api/internal/domain/policy"
	"github.com/jhoicas/greenstore-api/internal/domain/repository"
	"github.com/jhoicas/greenstore-api/pkg/metrics"
)

// TTL vigencia de un token desde su emisión.
const TTL = 10 * time.Minute

// AttemptLimiter cuenta re-autenticaciones fallidas por email dentro de una ventana.
type AttemptLimiter interface {
	Failures(ctx context.Context, subject string) (int, error)
	RecordFailure(ctx context.Context, subject string, window time.Duration) (int, error)
	Reset(ctx context.Context, subject string) error
}

// Service emite y consume aprobaciones.
type Service struct {
	tx      repository.TxRunner
	repos   repository.Repos
	secret  []byte
	limiter AttemptLimiter
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewService construye el servicio. secret es la clave HMAC de los hashes de token.
func NewService(tx repository.TxRunner, repos repository.Repos, secret string, limiter AttemptLimiter, rec *metrics.Recorder) *Service {
	return &Service{
		tx:      tx,
		repos:   repos,
		secret:  []byte(secret),
		limiter: limiter,
		metrics: rec,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (tests de expiración).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// IssueInput datos de re-autenticación del aprobador.
type IssueInput struct {
	Email    string
	Password string
	Action   string
	Reason   string
	Metadata json.RawMessage
}

// Issued token en claro (solo se devuelve aquí) y su expiración.
type Issued struct {
	ID         string
	Token      string
	ExpiresAt  time.Time
	ApprovedBy string
}

// Issue re-autentica al aprobador y emite un token para action.
// Orden: bloqueo por intentos, credenciales, rol >= manager.
func (s *Service) Issue(ctx context.Context, in IssueInput) (*Issued, error) {
	if !entity.IsValidApprovalAction(in.Action) {
		return nil, domain.ErrInvalidAction
	}
	email := strings.TrimSpace(in.Email)

	settings, err := s.repos.Settings.GetMany(ctx, []string{entity.SettingLoginAttempts, entity.SettingLockMinutes})
	if err != nil {
		return nil, fmt.Errorf("load lockout policy: %w", err)
	}
	pol := policy.FromSettings(settings)

	if s.limiter != nil {
		failures, err := s.limiter.Failures(ctx, email)
		if err != nil {
			return nil, err
		}
		if failures >= pol.LoginAttempts {
			s.metrics.Approval(in.Action, "locked")
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		if err := s.recordFailure(ctx, email, pol); err != nil {
			return nil, err
		}
		s.metrics.Approval(in.Action, "rejected")
		return nil, domain.ErrInvalidCredentials
	}
	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			return nil, err
		}
	}
	if !entity.RoleAtLeast(user.Role, entity.RoleManager) {
		s.metrics.Approval(in.Action, "rejected")
		return nil, domain.ErrApproverRole
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}
	metadata := in.Metadata
	if len(metadata) == 0 || string(metadata) == "null" {
		metadata = json.RawMessage(`{}`)
	}
	now := s.now()
	a := &entity.Approval{
		TokenHash:  hashToken(s.secret, token),
		Action:     in.Action,
		Reason:     in.Reason,
		Metadata:   metadata,
		ApprovedBy: user.ID,
		ExpiresAt:  now.Add(TTL),
		CreatedAt:  now,
	}
	details, err := json.Marshal(map[string]any{"action": in.Action, "reason": in.Reason, "metadata": metadata})
	if err != nil {
		return nil, fmt.Errorf("marshal audit details: %w", err)
	}

	err = s.tx.Run(ctx, func(ctx context.Context, r repository.Repos) error {
		if err := r.Approvals.Create(ctx, a); err != nil {
			return err
		}
		return r.Audit.Append(ctx, &entity.AuditLog{
			Action:      entity.AuditApprovalGranted,
			Details:     details,
			PerformedBy: user.ID,
			ApprovedBy:  &user.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	s.metrics.Approval(in.Action, "issued")
	return &Issued{ID: a.ID, Token: token, ExpiresAt: a.ExpiresAt, ApprovedBy: user.ID}, nil
}

func (s *Service) recordFailure(ctx context.Context, email string, pol policy.Policy) error {
	if s.limiter == nil {
		return nil
	}
	_, err := s.limiter.RecordFailure(ctx, email, time.Duration(pol.LockMinutes)*time.Minute)
	return err
}

// Consume verifica y marca como usado el token para action, dentro de la transacción de r.
// Si la transacción hace rollback el token sigue disponible.
func (s *Service) Consume(ctx context.Context, r repository.Repos, token, action string) (*entity.Approval, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrApprovalRequired
	}
	a, err := r.Approvals.FindUnused(ctx, hashToken(s.secret, token), action)
	if err != nil {
		return nil, err
	}
	if a == nil {
		s.metrics.Approval(action, "rejected")
		return nil, domain.ErrApprovalInvalid
	}
	now := s.now()
	if a.Expired(now) {
		s.metrics.Approval(action, "expired")
		return nil, domain.ErrApprovalExpired
	}
	ok, err := r.Approvals.MarkUsed(ctx, a.ID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// otro request lo consumió entre la lectura y el UPDATE
		s.metrics.Approval(action, "rejected")
		return nil, domain.ErrApprovalInvalid
	}
	a.UsedAt = &now
	s.metrics.Approval(action, "consumed")
	return a, nil
}

// Require consume una aprobación solo si needed; devuelve el id del aprobador para auditoría o nil.
func (s *Service) Require(ctx context.Context, r repository.Repos, needed bool, token, action string) (*string, error) {
	if !needed {
		return nil, nil
	}
	a, err := s.Consume(ctx, r, token, action)
	if err != nil {
		return nil, err
	}
	return &a.ApprovedBy, nil
}

