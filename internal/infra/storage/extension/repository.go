package extension

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

var extensionColumns = []string{
	"e.id",
	"e.rental_id",
	"e.original_end_date",
	"e.requested_end_date",
	"e.extension_days",
	"e.additional_price",
	"e.extension_status",
	"e.requested_by",
	"e.requested_by_role",
	"e.admin_notes",
	"e.requested_at",
	"e.approved_at",
	"e.approved_by",
	"e.rejected_at",
	"e.rejected_by",
	"e.created_at",
	"e.updated_at",
}

// rentalJoinColumns денормализованные данные аренды и камеры
var rentalJoinColumns = []string{
	"r.user_id",
	"r.camera_id",
	"c.name",
	"r.start_date",
	"r.end_date",
	"r.rental_status",
	"r.price_per_day",
}

// Repository репозиторий запросов на продление аренды
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория продлений
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

func selectWithRental() squirrel.SelectBuilder {
	columns := append(append([]string{}, extensionColumns...), rentalJoinColumns...)
	return psqlbuilder.Select(columns...).
		From("rental_extensions e").
		Join("rentals r ON r.id = e.rental_id").
		Join("cameras c ON c.id = r.camera_id")
}

// Create создает запрос на продление
// Второй pending запрос для той же аренды отсекается уникальным индексом и возвращает ErrPendingExists
func (r *Repository) Create(ctx context.Context, ext *domain.Extension) (*domain.Extension, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rental_extensions").
		Columns(
			"rental_id",
			"original_end_date",
			"requested_end_date",
			"extension_days",
			"additional_price",
			"extension_status",
			"requested_by",
			"requested_by_role",
			"admin_notes",
		).
		Values(
			ext.RentalID,
			ext.OriginalEndDate,
			ext.RequestedEndDate,
			ext.ExtensionDays,
			ext.AdditionalPrice,
			ext.Status,
			ext.RequestedBy,
			ext.RequestedByRole,
			ext.AdminNotes,
		).
		Suffix("RETURNING id, requested_at, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var requestedAt, createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&ext.ID,
		&requestedAt,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pgerr.IsUniqueViolation(err, PendingConstraint) {
			return nil, ErrPendingExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	ext.RequestedAt = requestedAt.Time
	ext.CreatedAt = createdAt.Time
	ext.UpdatedAt = updatedAt.Time

	return ext, nil
}

// GetByID получает продление по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Extension, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(extensionColumns...).
		From("rental_extensions e").
		Where(squirrel.Eq{"e.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	ext, err := scanExtension(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrExtensionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan extension: %v", ErrScanRow, err)
	}

	return ext, nil
}

// GetWithRentalByID получает продление вместе с данными аренды и камеры
func (r *Repository) GetWithRentalByID(ctx context.Context, id int64) (*domain.ExtensionWithRental, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectWithRental().
		Where(squirrel.Eq{"e.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWithRentalByID - build select query: %v", ErrBuildQuery, err)
	}

	ext, err := scanExtensionWithRental(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrExtensionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithRentalByID - scan extension: %v", ErrScanRow, err)
	}

	return ext, nil
}

// GetWithRental получает продления с данными аренды с фильтрацией
// Используется для истории пользователя (UserID) и для списка в админке
func (r *Repository) GetWithRental(ctx context.Context, filter domain.ExtensionsFilter) ([]*domain.ExtensionWithRental, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectWithRental()

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"e.extension_status": *filter.Status})
	}
	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.user_id": *filter.UserID})
	}
	if filter.RentalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"e.rental_id": *filter.RentalID})
	}

	query, args, err := selectBuilder.OrderBy("e.requested_at DESC", "e.id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithRental - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithRental - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ExtensionWithRental, 0)
	for rows.Next() {
		ext, err := scanExtensionWithRental(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWithRental - scan row: %v", ErrScanRow, err)
		}
		result = append(result, ext)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWithRental - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// CountPendingByRental считает pending продления аренды
func (r *Repository) CountPendingByRental(ctx context.Context, rentalID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("rental_extensions").
		Where(squirrel.Eq{"rental_id": rentalID}).
		Where(squirrel.Eq{"extension_status": domain.ExtensionPending}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountPendingByRental - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountPendingByRental - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Approve помечает pending продление как одобренное
// Если продление уже не pending, возвращает ErrNotPending
func (r *Repository) Approve(ctx context.Context, id int64, adminID int64) error {
	return r.decide(ctx, "Approve", id, psqlbuilder.Update("rental_extensions").
		Set("extension_status", domain.ExtensionApproved).
		Set("approved_at", squirrel.Expr("NOW()")).
		Set("approved_by", adminID))
}

// Reject помечает pending продление как отклонённое
// notes записываются, только если переданы
func (r *Repository) Reject(ctx context.Context, id int64, adminID int64, notes *string) error {
	builder := psqlbuilder.Update("rental_extensions").
		Set("extension_status", domain.ExtensionRejected).
		Set("rejected_at", squirrel.Expr("NOW()")).
		Set("rejected_by", adminID)

	if notes != nil {
		builder = builder.Set("admin_notes", *notes)
	}

	return r.decide(ctx, "Reject", id, builder)
}

func (r *Repository) decide(ctx context.Context, method string, id int64, builder squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"extension_status": domain.ExtensionPending}).
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
		return ErrNotPending
	}

	return nil
}

// GetApprovedOutOfSync одобренные продления, у которых аренда не доехала до requested_end_date
// Остаются после одобрений, сделанных до перевода на транзакции
func (r *Repository) GetApprovedOutOfSync(ctx context.Context, limit int) ([]*domain.Extension, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(extensionColumns...).
		From("rental_extensions e").
		Join("rentals r ON r.id = e.rental_id").
		Where(squirrel.Eq{"e.extension_status": domain.ExtensionApproved}).
		Where("r.end_date < e.requested_end_date").
		OrderBy("e.approved_at ASC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetApprovedOutOfSync - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryExtensions(ctx, executor, "GetApprovedOutOfSync", query, args)
}

// GetWithoutPayment продления без связанного платежа (кроме отклонённых)
func (r *Repository) GetWithoutPayment(ctx context.Context, limit int) ([]*domain.Extension, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(extensionColumns...).
		From("rental_extensions e").
		LeftJoin("payments p ON p.extension_id = e.id").
		Where("p.id IS NULL").
		Where(squirrel.NotEq{"e.extension_status": domain.ExtensionRejected}).
		OrderBy("e.id ASC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWithoutPayment - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryExtensions(ctx, executor, "GetWithoutPayment", query, args)
}

func (r *Repository) queryExtensions(
	ctx context.Context,
	executor dbmetrics.DBExecutor,
	method string,
	query string,
	args []interface{},
) ([]*domain.Extension, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}
	defer rows.Close()

	result := make([]*domain.Extension, 0)
	for rows.Next() {
		ext, err := scanExtension(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, method, err)
		}
		result = append(result, ext)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func extensionDest(ext *domain.Extension, requestedAt, createdAt, updatedAt *sql.NullTime) []interface{} {
	return []interface{}{
		&ext.ID,
		&ext.RentalID,
		&ext.OriginalEndDate,
		&ext.RequestedEndDate,
		&ext.ExtensionDays,
		&ext.AdditionalPrice,
		&ext.Status,
		&ext.RequestedBy,
		&ext.RequestedByRole,
		&ext.AdminNotes,
		requestedAt,
		&ext.ApprovedAt,
		&ext.ApprovedBy,
		&ext.RejectedAt,
		&ext.RejectedBy,
		createdAt,
		updatedAt,
	}
}

func scanExtension(row rowScanner) (*domain.Extension, error) {
	var ext domain.Extension
	var requestedAt, createdAt, updatedAt sql.NullTime

	if err := row.Scan(extensionDest(&ext, &requestedAt, &createdAt, &updatedAt)...); err != nil {
		return nil, err
	}

	ext.RequestedAt = requestedAt.Time
	ext.CreatedAt = createdAt.Time
	ext.UpdatedAt = updatedAt.Time

	return &ext, nil
}

func scanExtensionWithRental(row rowScanner) (*domain.ExtensionWithRental, error) {
	var ext domain.ExtensionWithRental
	var requestedAt, createdAt, updatedAt sql.NullTime

	dest := extensionDest(&ext.Extension, &requestedAt, &createdAt, &updatedAt)
	dest = append(dest,
		&ext.UserID,
		&ext.CameraID,
		&ext.CameraName,
		&ext.RentalStartDate,
		&ext.RentalEndDate,
		&ext.RentalStatus,
		&ext.PricePerDay,
	)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	ext.RequestedAt = requestedAt.Time
	ext.CreatedAt = createdAt.Time
	ext.UpdatedAt = updatedAt.Time

	return &ext, nil
}
