package services

import (
	"context"
	"io"

	"github.com/xuri/excelize/v2"

	"backoffice/internal/repositories"
)

const userReportSheet = "Users"

var userReportHeaders = []interface{}{
	"ID", "Username", "Display name", "Active", "Roles",
	"Active sessions", "Last login", "Registered",
}

type ReportServiceInterface interface {
	GetUserReport(ctx context.Context) ([]repositories.UserReportRow, error)
	// WriteUserReportXLSX renders the user activity report as a spreadsheet.
	WriteUserReportXLSX(ctx context.Context, w io.Writer) error
}

type ReportService struct {
	reportRepo repositories.ReportRepositoryInterface
}

func NewReportService(reportRepo repositories.ReportRepositoryInterface) ReportServiceInterface {
	return &ReportService{reportRepo: reportRepo}
}

func (s *ReportService) GetUserReport(ctx context.Context) ([]repositories.UserReportRow, error) {
	return s.reportRepo.GetUserReportRows(ctx)
}

func (s *ReportService) WriteUserReportXLSX(ctx context.Context, w io.Writer) error {
	rows, err := s.reportRepo.GetUserReportRows(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", userReportSheet)
	f.SetSheetRow(userReportSheet, "A1", &userReportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(userReportSheet, "A1", "H1", style)

	const dateFmt = "2006-01-02 15:04"
	for i, row := range rows {
		var lastLogin, registered string
		if row.LastLoggedIn != nil {
			lastLogin = row.LastLoggedIn.Format(dateFmt)
		}
		if row.CreatedAt != nil {
			registered = row.CreatedAt.Format(dateFmt)
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			row.ID, row.Username, row.DisplayName, row.IsActive, row.Roles,
			row.ActiveTokens, lastLogin, registered,
		}
		f.SetSheetRow(userReportSheet, cell, &values)
	}

	f.SetColWidth(userReportSheet, "B", "C", 25)
	f.SetColWidth(userReportSheet, "E", "E", 40)
	f.SetColWidth(userReportSheet, "G", "H", 20)

	return f.Write(w)
}
