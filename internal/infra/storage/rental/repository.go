package rental

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// rentalColumns колонки аренды вместе с денормализованными данными камеры
var rentalColumns = []string{
	"r.id",
	"r.user_id",
	"r.camera_id",
	"r.start_date",
	"r.end_date",
	"r.rental_status",
	"r.shipping_status",
	"r.price_per_day",
	"r.total_price",
	"r.rejection_reason",
	"c.name",
	"c.serial_number",
	"r.created_at",
	"r.updated_at",
}

// Repository репозиторий для работы с арендами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория аренд
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func selectRentals() squirrel.SelectBuilder {
	return psqlbuilder.Select(rentalColumns...).
		From("rentals r").
		Join("cameras c ON c.id = r.camera_id")
}

// Create создает новую аренду
func (r *Repository) Create(ctx context.Context, rental *domain.Rental) (*domain.Rental, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rentals").
		Columns(
			"user_id",
			"camera_id",
			"start_date",
			"end_date",
			"rental_status",
			"shipping_status",
			"price_per_day",
			"total_price",
		).
		Values(
			rental.UserID,
			rental.CameraID,
			rental.StartDate,
			rental.EndDate,
			rental.RentalStatus,
			rental.ShippingStatus,
			rental.PricePerDay,
			rental.TotalPrice,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rental.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rental.CreatedAt = createdAt.Time
	rental.UpdatedAt = updatedAt.Time

	return rental, nil
}

// GetByID получает аренду по ID вместе с названием и серийным номером камеры
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectRentals().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rental, err := scanRental(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRentalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rental: %v", ErrScanRow, err)
	}

	return rental, nil
}

// GetByUserID получает список аренд пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.RentalStatus) ([]*domain.Rental, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectRentals().
		Where(squirrel.Eq{"r.user_id": userID}).
		OrderBy("r.start_date DESC", "r.id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.rental_status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRentals(rows)
}

// GetWithFilter получает аренды для календаря админки
// Период фильтрует по пересечению: аренда попадает, если хотя бы один её день внутри [From, To]
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.RentalsFilter) ([]*domain.Rental, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectRentals()

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"r.end_date": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"r.start_date": *filter.To})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.rental_status": *filter.Status})
	}
	if filter.Shipping != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.shipping_status": *filter.Shipping})
	}
	if filter.CameraID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.camera_id": *filter.CameraID})
	}
	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.user_id": *filter.UserID})
	}

	query, args, err := selectBuilder.OrderBy("r.start_date ASC", "r.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRentals(rows)
}

// FindOverlapping находит другие аренды той же камеры, пересекающие [from, to]
// Пересечение: start_date <= to AND end_date >= from (обе границы включительно)
func (r *Repository) FindOverlapping(
	ctx context.Context,
	cameraID int64,
	from, to types.Date,
	statuses []domain.RentalStatus,
	excludeRentalID int64,
) ([]*domain.Rental, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectRentals().
		Where(squirrel.Eq{"r.camera_id": cameraID}).
		Where(squirrel.Eq{"r.rental_status": domain.StatusStrings(statuses)}).
		Where(squirrel.LtOrEq{"r.start_date": to}).
		Where(squirrel.GtOrEq{"r.end_date": from}).
		Where(squirrel.NotEq{"r.id": excludeRentalID}).
		OrderBy("r.start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRentals(rows)
}

// LockCamera берёт advisory lock на камеру до конца текущей транзакции.
// Сериализует все проверки доступности и записи по одной камере.
func (r *Repository) LockCamera(ctx context.Context, cameraID int64) error {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: LockCamera - camera id=%d", ErrTransaction, cameraID)
	}

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", cameraID); err != nil {
		return fmt.Errorf("%w: LockCamera - execute: %v", ErrExecQuery, err)
	}

	return nil
}

// UpdateStatus обновляет статус аренды
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.RentalStatus) error {
	return r.update(ctx, "UpdateStatus", id, psqlbuilder.Update("rentals").
		Set("rental_status", status))
}

// UpdateShippingStatus обновляет статус доставки
func (r *Repository) UpdateShippingStatus(ctx context.Context, id int64, status domain.ShippingStatus) error {
	return r.update(ctx, "UpdateShippingStatus", id, psqlbuilder.Update("rentals").
		Set("shipping_status", status))
}

// UpdateEndDate переносит дату окончания аренды и добавляет доплату к итоговой цене
func (r *Repository) UpdateEndDate(ctx context.Context, id int64, endDate types.Date, additionalPrice float64) error {
	return r.update(ctx, "UpdateEndDate", id, psqlbuilder.Update("rentals").
		Set("end_date", endDate).
		Set("total_price", squirrel.Expr("total_price + ?", additionalPrice)))
}

// Confirm подтверждает аренду, если она всё ещё pending
func (r *Repository) Confirm(ctx context.Context, id int64) error {
	return r.updatePending(ctx, "Confirm", []int64{id}, psqlbuilder.Update("rentals").
		Set("rental_status", domain.RentalConfirmed))
}

// TransferAndConfirm переносит pending аренду на другую камеру и подтверждает её
func (r *Repository) TransferAndConfirm(ctx context.Context, id int64, cameraID int64) error {
	return r.updatePending(ctx, "TransferAndConfirm", []int64{id}, psqlbuilder.Update("rentals").
		Set("camera_id", cameraID).
		Set("rental_status", domain.RentalConfirmed))
}

// Reject отклоняет pending аренды с указанием причины
func (r *Repository) Reject(ctx context.Context, ids []int64, reason string) error {
	return r.updatePending(ctx, "Reject", ids, psqlbuilder.Update("rentals").
		Set("rental_status", domain.RentalRejected).
		Set("rejection_reason", reason))
}

func (r *Repository) update(ctx context.Context, method string, id int64, builder squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
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
		return ErrRentalNotFound
	}

	return nil
}

// updatePending обновляет только аренды в статусе pending.
// Если хотя бы одна уже не pending, возвращает ErrStatusChanged (транзакция откатится).
func (r *Repository) updatePending(ctx context.Context, method string, ids []int64, builder squirrel.UpdateBuilder) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"rental_status": domain.RentalPending}).
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

	if rowsAffected != int64(len(ids)) {
		return fmt.Errorf("%w: %s - updated %d of %d rentals", ErrStatusChanged, method, rowsAffected, len(ids))
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRental(row rowScanner) (*domain.Rental, error) {
	var rental domain.Rental
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rental.ID,
		&rental.UserID,
		&rental.CameraID,
		&rental.StartDate,
		&rental.EndDate,
		&rental.RentalStatus,
		&rental.ShippingStatus,
		&rental.PricePerDay,
		&rental.TotalPrice,
		&rental.RejectionReason,
		&rental.CameraName,
		&rental.CameraSerial,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rental.CreatedAt = createdAt.Time
	rental.UpdatedAt = updatedAt.Time

	return &rental, nil
}

// scanRentals сканирует результаты запроса в слайс аренд
func scanRentals(rows *sql.Rows) ([]*domain.Rental, error) {
	rentals := make([]*domain.Rental, 0)

	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRentals - scan row: %v", ErrScanRow, err)
		}
		rentals = append(rentals, rental)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRentals - rows error: %v", ErrScanRow, err)
	}

	return rentals, nil
}
