package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-report-service/internal/domain"
	"github.com/spec-kit/field-report-service/internal/events"
	"github.com/spec-kit/field-report-service/internal/repository"
)

type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	user, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByPetugasID(ctx context.Context, petugasID string) (*domain.User, error) {
	for _, user := range f.users {
		if user.PetugasID == petugasID {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	out := []domain.User{}
	for _, user := range f.users {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		out = append(out, *user)
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

type fakeReportRepo struct {
	reports map[string]*domain.Report
	nextID  int
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[string]*domain.Report{}}
}

func (f *fakeReportRepo) Create(ctx context.Context, report *domain.Report) error {
	f.nextID++
	report.ID = fmt.Sprintf("laporan-%d", f.nextID)
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt
	clone := *report
	f.reports[report.ID] = &clone
	return nil
}

func (f *fakeReportRepo) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *report
	return &clone, nil
}

func (f *fakeReportRepo) ListWithFilter(ctx context.Context, filter repository.ReportFilter) ([]domain.Report, error) {
	out := []domain.Report{}
	for _, report := range f.reports {
		if filter.Status != nil && report.StatusReview != *filter.Status {
			continue
		}
		if filter.Bidang != nil && report.Bidang != *filter.Bidang {
			continue
		}
		if filter.PelaporUserID != nil && report.PelaporUserID != *filter.PelaporUserID {
			continue
		}
		out = append(out, *report)
	}
	return out, nil
}

// UpdateReview mirrors the conditional UPDATE: only a PENDING row matches.
func (f *fakeReportRepo) UpdateReview(ctx context.Context, id string, status domain.ReviewStatus, note *string, reviewedAt time.Time) error {
	report, ok := f.reports[id]
	if !ok || report.StatusReview != domain.ReviewStatusPending {
		return pgx.ErrNoRows
	}
	report.StatusReview = status
	report.ReviewNote = note
	report.ReviewedAt = &reviewedAt
	report.UpdatedAt = time.Now()
	return nil
}

type fakePhotoStore struct {
	uploads int
	fail    bool
}

func (f *fakePhotoStore) Upload(ctx context.Context, folder string, file io.Reader) (string, error) {
	if f.fail {
		return "", errors.New("upstream rejected upload")
	}
	f.uploads++
	return fmt.Sprintf("https://res.example.com/%s/photo-%d.jpg", folder, f.uploads), nil
}

type recordedEvent struct {
	event events.Event
}

type fakeDispatcher struct {
	published []recordedEvent
}

func (f *fakeDispatcher) Publish(ctx context.Context, event events.Event) error {
	f.published = append(f.published, recordedEvent{event: event})
	return nil
}

func (f *fakeDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}
