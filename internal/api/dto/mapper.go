package dto

import "github.com/spec-kit/field-report-service/internal/domain"

// NewUserResponse maps a domain user to its API shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Role:      user.Role,
		PetugasID: user.PetugasID,
		Nama:      user.Nama,
		NoTelp:    user.NoTelp,
		Aktif:     user.Aktif,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewUserResponses maps a slice of users.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// NewReportResponse maps a domain report to its API shape.
func NewReportResponse(report *domain.Report) ReportResponse {
	resp := ReportResponse{
		ID:            report.ID,
		PelaporUserID: report.PelaporUserID,
		Judul:         report.Judul,
		Deskripsi:     report.Deskripsi,
		Bidang:        report.Bidang,
		StatusReview:  report.StatusReview,
		Location:      report.Location,
		FotoSesudah:   report.FotoSesudah,
		PerformedAt:   report.PerformedAt,
		ReviewedAt:    report.ReviewedAt,
		ReviewNote:    report.ReviewNote,
		CreatedAt:     report.CreatedAt,
		UpdatedAt:     report.UpdatedAt,
	}
	if report.Pelapor != nil {
		resp.Pelapor = &PelaporResponse{
			ID:        report.Pelapor.ID,
			Nama:      report.Pelapor.Nama,
			PetugasID: report.Pelapor.PetugasID,
		}
	}
	return resp
}

// NewReportResponses maps a slice of reports.
func NewReportResponses(reports []domain.Report) []ReportResponse {
	out := make([]ReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, NewReportResponse(&reports[i]))
	}
	return out
}
