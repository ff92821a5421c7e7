package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/field-report-service/internal/domain"
)

// ReportFilter captures server-side listing parameters. Free-text search,
// date ranges, and sorting are applied by the query service on top of the
// rows returned here.
type ReportFilter struct {
	Status        *domain.ReviewStatus
	Bidang        *domain.Bidang
	PelaporUserID *string
}

// ReportRepository encapsulates report persistence.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	ListWithFilter(ctx context.Context, filter ReportFilter) ([]domain.Report, error)
	UpdateReview(ctx context.Context, id string, status domain.ReviewStatus, note *string, reviewedAt time.Time) error
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	const query = `
        INSERT INTO laporan (pelapor_user_id, judul, deskripsi, bidang, status_review, location, foto_sesudah, performed_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		report.PelaporUserID,
		report.Judul,
		report.Deskripsi,
		report.Bidang,
		report.StatusReview,
		report.Location,
		report.FotoSesudah,
		report.PerformedAt,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
}

const reportSelect = `
        SELECT l.id, l.pelapor_user_id, l.judul, l.deskripsi, l.bidang, l.status_review,
               l.location, l.foto_sesudah, l.performed_at, l.reviewed_at, l.review_note,
               l.created_at, l.updated_at,
               u.id, u.nama, u.petugas_id
        FROM laporan l
        JOIN users u ON u.id = l.pelapor_user_id`

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	query := reportSelect + ` WHERE l.id=$1`

	var report domain.Report
	var pelapor domain.ReportPelapor
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&report.ID,
		&report.PelaporUserID,
		&report.Judul,
		&report.Deskripsi,
		&report.Bidang,
		&report.StatusReview,
		&report.Location,
		&report.FotoSesudah,
		&report.PerformedAt,
		&report.ReviewedAt,
		&report.ReviewNote,
		&report.CreatedAt,
		&report.UpdatedAt,
		&pelapor.ID,
		&pelapor.Nama,
		&pelapor.PetugasID,
	); err != nil {
		return nil, err
	}
	report.Pelapor = &pelapor
	return &report, nil
}

func (r *reportRepository) ListWithFilter(ctx context.Context, filter ReportFilter) ([]domain.Report, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("l.status_review=$%d", len(args)))
	}
	if filter.Bidang != nil {
		args = append(args, *filter.Bidang)
		clauses = append(clauses, fmt.Sprintf("l.bidang=$%d", len(args)))
	}
	if filter.PelaporUserID != nil {
		args = append(args, *filter.PelaporUserID)
		clauses = append(clauses, fmt.Sprintf("l.pelapor_user_id=$%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY l.created_at DESC`,
		reportSelect, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}

// UpdateReview applies a review transition as a single conditional update.
// The status_review='PENDING' predicate makes concurrent reviews race-safe:
// the loser affects zero rows and is reported as pgx.ErrNoRows.
func (r *reportRepository) UpdateReview(ctx context.Context, id string, status domain.ReviewStatus, note *string, reviewedAt time.Time) error {
	const query = `
        UPDATE laporan SET status_review=$1, review_note=$2, reviewed_at=$3, updated_at=NOW()
        WHERE id=$4 AND status_review='PENDING'`
	cmd, err := r.pool.Exec(ctx, query, status, note, reviewedAt, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanReports(rows pgx.Rows) ([]domain.Report, error) {
	var result []domain.Report
	for rows.Next() {
		var report domain.Report
		var pelapor domain.ReportPelapor
		if err := rows.Scan(
			&report.ID,
			&report.PelaporUserID,
			&report.Judul,
			&report.Deskripsi,
			&report.Bidang,
			&report.StatusReview,
			&report.Location,
			&report.FotoSesudah,
			&report.PerformedAt,
			&report.ReviewedAt,
			&report.ReviewNote,
			&report.CreatedAt,
			&report.UpdatedAt,
			&pelapor.ID,
			&pelapor.Nama,
			&pelapor.PetugasID,
		); err != nil {
			return nil, err
		}
		report.Pelapor = &pelapor
		result = append(result, report)
	}
	return result, rows.Err()
}
