package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	pkgerrors "github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/errors"
)

// ErrExportGenerateFail workbook could not be rendered.
var ErrExportGenerateFail = pkgerrors.New(pkgerrors.KindInternal, 23201, "failed to generate Excel file")

// Sheet names of the availability workbook.
const (
	SheetRooms       = "Rooms"
	SheetAssignments = "Assignments"
)

var roomsHeader = []string{
	"Code", "Name", "Building", "Floor", "Capacity", "Type",
	"Marked Available", "Currently Available", "Status", "Assignments",
}

var assignmentsHeader = []string{
	"Room", "Teacher", "Employee ID", "Subject ID", "Day", "Start", "End", "Academic Year",
}

// ExportService renders availability snapshots as Excel workbooks.
//
// The workbook is built from the same snapshot GET /api/rooms/availability
// returns, so both views always agree.
type ExportService interface {
	// AvailabilityWorkbook returns the .xlsx content and a suggested filename.
	AvailabilityWorkbook(ctx context.Context, q *dto.AvailabilityQuery) (*bytes.Buffer, string, error)
}

type exportService struct {
	availability AvailabilityService
	logger       *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(availability AvailabilityService, logger *zap.Logger) ExportService {
	return &exportService{availability: availability, logger: logger}
}

func (s *exportService) AvailabilityWorkbook(ctx context.Context, q *dto.AvailabilityQuery) (*bytes.Buffer, string, error) {
	snapshot, err := s.availability.Compute(ctx, q)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetRooms); err != nil {
		return nil, "", s.fail(err)
	}
	if _, err := f.NewSheet(SheetAssignments); err != nil {
		return nil, "", s.fail(err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, "", s.fail(err)
	}

	if err := writeHeader(f, SheetRooms, roomsHeader, headerStyle); err != nil {
		return nil, "", s.fail(err)
	}
	if err := writeHeader(f, SheetAssignments, assignmentsHeader, headerStyle); err != nil {
		return nil, "", s.fail(err)
	}
	f.SetColWidth(SheetRooms, "A", "A", 10)
	f.SetColWidth(SheetRooms, "B", "B", 28)
	f.SetColWidth(SheetRooms, "I", "I", 22)
	f.SetColWidth(SheetAssignments, "B", "B", 24)

	roomRow, assignRow := 2, 2
	for _, r := range snapshot.Rooms {
		values := []interface{}{
			r.Code, deref(r.Name), deref(r.Building), derefInt(r.Floor), r.Capacity, deref(r.RoomType),
			r.IsAvailable, r.IsCurrentlyAvailable, r.AvailabilityStatus, r.AssignmentsCount,
		}
		if err := f.SetSheetRow(SheetRooms, cell("A", roomRow), &values); err != nil {
			return nil, "", s.fail(err)
		}
		roomRow++

		for _, a := range r.CurrentAssignments {
			values := []interface{}{
				r.Code, a.TeacherName, a.TeacherEmployeeID, a.SubjectID,
				a.DayName, a.StartTime, a.EndTime, a.AcademicYear,
			}
			if err := f.SetSheetRow(SheetAssignments, cell("A", assignRow), &values); err != nil {
				return nil, "", s.fail(err)
			}
			assignRow++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", s.fail(err)
	}

	stamp := snapshot.Timestamp
	if t, err := time.Parse(time.RFC3339Nano, snapshot.Timestamp); err == nil {
		stamp = t.Format("20060102-1504")
	}
	s.logger.Info("availability workbook exported",
		zap.Int("rooms", snapshot.TotalRooms), zap.Int("assignments", assignRow-2))
	return buf, fmt.Sprintf("room_availability_%s.xlsx", stamp), nil
}

func (s *exportService) fail(err error) error {
	s.logger.Error("failed to write Excel workbook", zap.Error(err))
	return ErrExportGenerateFail
}

// ── helpers ──

func writeHeader(f *excelize.File, sheet string, header []string, style int) error {
	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return err
	}
	last := colName(len(header) - 1)
	return f.SetCellStyle(sheet, "A1", cell(last, 1), style)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) interface{} {
	if n == nil {
		return ""
	}
	return *n
}
