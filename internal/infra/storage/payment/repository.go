package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

var paymentColumns = []string{
	"id",
	"rental_id",
	"user_id",
	"extension_id",
	"payment_type",
	"amount",
	"payment_status",
	"proof_path",
	"proof_url",
	"verified_by",
	"verified_at",
	"rejection_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий платежей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает платёж
// Для продлений повторная вставка с тем же extension_id возвращает ErrAlreadyExists
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"rental_id",
			"user_id",
			"extension_id",
			"payment_type",
			"amount",
			"payment_status",
			"proof_path",
			"proof_url",
		).
		Values(
			p.RentalID,
			p.UserID,
			p.ExtensionID,
			p.Type,
			p.Amount,
			p.Status,
			p.ProofPath,
			p.ProofURL,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err, ExtensionConstraint) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByID получает платёж по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByExtensionID получает платёж продления
func (r *Repository) GetByExtensionID(ctx context.Context, extensionID int64) (*domain.Payment, error) {
	return r.getOne(ctx, "GetByExtensionID", squirrel.Eq{"extension_id": extensionID})
}

// GetByExtensionIDs получает платежи для набора продлений одним запросом
func (r *Repository) GetByExtensionIDs(ctx context.Context, extensionIDs []int64) ([]*domain.Payment, error) {
	if len(extensionIDs) == 0 {
		return []*domain.Payment{}, nil
	}
	return r.getMany(ctx, "GetByExtensionIDs", squirrel.Eq{"extension_id": extensionIDs})
}

// GetByRentalID получает все платежи аренды (основной и за продления)
func (r *Repository) GetByRentalID(ctx context.Context, rentalID int64) ([]*domain.Payment, error) {
	return r.getMany(ctx, "GetByRentalID", squirrel.Eq{"rental_id": rentalID})
}

// AttachProof прикладывает чек к pending платежу и переводит его в submitted
func (r *Repository) AttachProof(ctx context.Context, id int64, path, url string) error {
	return r.transition(ctx, "AttachProof", id, []domain.PaymentStatus{domain.PaymentPending},
		psqlbuilder.Update("payments").
			Set("proof_path", path).
			Set("proof_url", url).
			Set("payment_status", domain.PaymentSubmitted))
}

// Verify подтверждает платёж
func (r *Repository) Verify(ctx context.Context, id int64, adminID int64) error {
	return r.transition(ctx, "Verify", id, []domain.PaymentStatus{domain.PaymentPending, domain.PaymentSubmitted},
		psqlbuilder.Update("payments").
			Set("payment_status", domain.PaymentVerified).
			Set("verified_by", adminID).
			Set("verified_at", squirrel.Expr("NOW()")))
}

// Reject отклоняет платёж с причиной
func (r *Repository) Reject(ctx context.Context, id int64, adminID int64, reason string) error {
	return r.transition(ctx, "Reject", id, []domain.PaymentStatus{domain.PaymentPending, domain.PaymentSubmitted},
		psqlbuilder.Update("payments").
			Set("payment_status", domain.PaymentRejected).
			Set("verified_by", adminID).
			Set("verified_at", squirrel.Expr("NOW()")).
			Set("rejection_reason", reason))
}

func (r *Repository) transition(
	ctx context.Context,
	method string,
	id int64,
	from []domain.PaymentStatus,
	builder squirrel.UpdateBuilder,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statuses := make([]string, len(from))
	for i, s := range from {
		statuses[i] = string(s)
	}

	query, args, err := builder.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"payment_status": statuses}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, method, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, method string, where squirrel.Sqlizer) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	p, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan payment: %v", ErrScanRow, method, err)
	}

	return p, nil
}

func (r *Repository) getMany(ctx context.Context, method string, where squirrel.Sqlizer) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(where).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, method, err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return payments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var p domain.Payment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.RentalID,
		&p.UserID,
		&p.ExtensionID,
		&p.Type,
		&p.Amount,
		&p.Status,
		&p.ProofPath,
		&p.ProofURL,
		&p.VerifiedBy,
		&p.VerifiedAt,
		&p.RejectionReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
