package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schoolhub_backend/internals/constants"
	dto "schoolhub_backend/internals/features/school/attendance/dto"
	model "schoolhub_backend/internals/features/school/attendance/model"
	helper "schoolhub_backend/internals/helpers"
)

// AttendanceService enforces the one-row-per-student-per-day rule and
// restricts teachers to students they supervise or teach.
type AttendanceService struct {
	DB *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{DB: db}
}

func (s *AttendanceService) Create(ctx context.Context, req dto.CreateAttendanceRequest, role string, userID uuid.UUID) (*model.AttendanceModel, error) {
	date, ok := helper.ParseDate(req.Date)
	if !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Date must be formatted as YYYY-MM-DD.")
	}

	var n int64
	if err := s.DB.WithContext(ctx).Table("students").Where("id = ?", req.StudentID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "Student not found.")
	}
	if req.LessonID != nil {
		if err := s.DB.WithContext(ctx).Table("lessons").Where("id = ?", *req.LessonID).Count(&n).Error; err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fiber.NewError(fiber.StatusNotFound, "Lesson not found.")
		}
	}
	if err := s.ensureStudentWritable(ctx, req.StudentID, role, userID); err != nil {
		return nil, err
	}

	// One row per (student, day); a second mark is a conflict, not an
	// overwrite.
	if err := s.DB.WithContext(ctx).Table("attendances").
		Where("student_id = ? AND date = ?", req.StudentID, datatypes.Date(date)).
		Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "Attendance for this student is already recorded for that day.")
	}

	m := req.ToModel(date)
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *AttendanceService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateAttendanceRequest, role string, userID uuid.UUID) (*model.AttendanceModel, error) {
	var existing model.AttendanceModel
	if err := s.DB.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := s.ensureStudentWritable(ctx, existing.StudentID, role, userID); err != nil {
		return nil, err
	}

	existing.Present = *req.Present
	if err := s.DB.WithContext(ctx).Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (s *AttendanceService) Delete(ctx context.Context, id uuid.UUID, role string, userID uuid.UUID) error {
	var existing model.AttendanceModel
	if err := s.DB.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		return err
	}
	if err := s.ensureStudentWritable(ctx, existing.StudentID, role, userID); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(&model.AttendanceModel{}, "id = ?", id).Error
}

// ensureStudentWritable: admins always; teachers only for students in
// a class they supervise. Supervision is the same rule the attendance
// read scope applies, so a teacher can never write a row they could
// not list.
func (s *AttendanceService) ensureStudentWritable(ctx context.Context, studentID uuid.UUID, role string, userID uuid.UUID) error {
	if role != constants.RoleTeacher {
		return nil
	}
	var n int64
	err := s.DB.WithContext(ctx).Table("students").
		Where("id = ?", studentID).
		Where("class_id IN (SELECT id FROM classes WHERE supervisor_id = ?)", userID).
		Count(&n).Error
	if err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusForbidden, "You can only record attendance for your own students.")
	}
	return nil
}

type exportRow struct {
	Date      time.Time
	Present   bool
	Name      string
	Surname   string
	RollNo    int
	ClassName string
}

// Export writes the scoped attendance rows into an XLSX workbook.
func (s *AttendanceService) Export(ctx context.Context, scoped *gorm.DB) (*excelize.File, error) {
	var rows []exportRow
	err := scoped.WithContext(ctx).
		Select("attendances.date, attendances.present, students.name, students.surname, students.roll_no, classes.name AS class_name").
		Joins("JOIN students ON students.id = attendances.student_id").
		Joins("JOIN classes ON classes.id = students.class_id").
		Order("attendances.date DESC, students.surname ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Attendance"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Date", "Class", "Roll No", "Surname", "Name", "Present"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for i, r := range rows {
		present := "no"
		if r.Present {
			present = "yes"
		}
		values := []interface{}{
			r.Date.Format("2006-01-02"), r.ClassName, r.RollNo, r.Surname, r.Name, present,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// ExportFilename is deterministic per day so repeated downloads on the
// same day overwrite each other on the client.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("attendance-%s.xlsx", now.Format("2006-01-02"))
}
