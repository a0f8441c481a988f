package camera

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

var cameraColumns = []string{
	"c.id",
	"c.name",
	"c.serial_number",
	"c.price_per_day",
	"c.is_available",
	"c.created_at",
	"c.updated_at",
}

// Repository репозиторий камер (физических юнитов)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория камер
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает камеру по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Camera, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(cameraColumns...).
		From("cameras c").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	camera, err := scanCamera(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCameraNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan camera: %v", ErrScanRow, err)
	}

	return camera, nil
}

// List возвращает все камеры, сгруппированные по модели
func (r *Repository) List(ctx context.Context) ([]*domain.Camera, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(cameraColumns...).
		From("cameras c").
		OrderBy("c.name ASC", "c.serial_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanCameras(rows)
}

// FindAvailableUnits находит другие юниты той же модели без пересекающихся аренд в [from, to].
// excludeRentalID исключает саму подтверждаемую аренду из проверки.
func (r *Repository) FindAvailableUnits(
	ctx context.Context,
	name string,
	excludeCameraID int64,
	from, to types.Date,
	statuses []domain.RentalStatus,
	excludeRentalID int64,
) ([]*domain.Camera, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(cameraColumns...).
		From("cameras c").
		Where(squirrel.Eq{"c.name": name}).
		Where(squirrel.NotEq{"c.id": excludeCameraID}).
		Where(squirrel.Eq{"c.is_available": true}).
		Where(`NOT EXISTS (
			SELECT 1 FROM rentals r
			WHERE r.camera_id = c.id
			  AND r.rental_status = ANY(?)
			  AND r.start_date <= ?
			  AND r.end_date >= ?
			  AND r.id <> ?
		)`, pq.Array(domain.StatusStrings(statuses)), to, from, excludeRentalID).
		OrderBy("c.serial_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindAvailableUnits - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindAvailableUnits - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanCameras(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCamera(row rowScanner) (*domain.Camera, error) {
	var camera domain.Camera
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&camera.ID,
		&camera.Name,
		&camera.SerialNumber,
		&camera.PricePerDay,
		&camera.IsAvailable,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	camera.CreatedAt = createdAt.Time
	camera.UpdatedAt = updatedAt.Time

	return &camera, nil
}

func scanCameras(rows *sql.Rows) ([]*domain.Camera, error) {
	cameras := make([]*domain.Camera, 0)

	for rows.Next() {
		camera, err := scanCamera(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanCameras - scan row: %v", ErrScanRow, err)
		}
		cameras = append(cameras, camera)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanCameras - rows error: %v", ErrScanRow, err)
	}

	return cameras, nil
}
