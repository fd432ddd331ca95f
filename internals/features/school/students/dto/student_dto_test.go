package dto_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolhub_backend/internals/constants"
	"schoolhub_backend/internals/databases"
	dto "schoolhub_backend/internals/features/school/students/dto"
	model "schoolhub_backend/internals/features/school/students/model"
)

func seedRoster(t *testing.T) (*gorm.DB, uuid.UUID) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, databases.AutoMigrate(db))

	classID := uuid.New()
	otherClass := uuid.New()
	gradeID := uuid.New()
	parentID := uuid.New()
	now := time.Now()

	rows := []model.StudentModel{
		{ID: uuid.New(), Username: "zoe.adams", Name: "Zoe", Surname: "Adams", Address: "a", Sex: "female",
			BirthDate: now, ClassID: classID, GradeID: gradeID, ParentID: parentID, RollNo: 2},
		{ID: uuid.New(), Username: "ben.clark", Name: "Ben", Surname: "Clark", Address: "a", Sex: "male",
			BirthDate: now, ClassID: classID, GradeID: gradeID, ParentID: parentID, RollNo: 1},
		{ID: uuid.New(), Username: "amy.brook", Name: "Amy", Surname: "Brook", Address: "a", Sex: "female",
			BirthDate: now, ClassID: otherClass, GradeID: gradeID, ParentID: parentID, RollNo: 1},
	}
	require.NoError(t, db.Create(&rows).Error)
	return db, classID
}

func names(t *testing.T, tx *gorm.DB) []string {
	t.Helper()
	var out []string
	require.NoError(t, tx.Pluck("name", &out).Error)
	return out
}

func TestListStudentsSortWhitelist(t *testing.T) {
	db, _ := seedRoster(t)

	base := func() *gorm.DB { return db.Model(&model.StudentModel{}) }

	q := dto.ListStudentsQuery{Sort: "name_desc"}
	assert.Equal(t, []string{"Zoe", "Ben", "Amy"}, names(t, q.Apply(base())))

	// An unknown sort value falls back to the default ordering instead
	// of reaching the database.
	q = dto.ListStudentsQuery{Sort: "name; DROP TABLE students"}
	assert.Equal(t, []string{"Amy", "Ben", "Zoe"}, names(t, q.Apply(base())))

	// Teachers default to register order.
	q = dto.ListStudentsQuery{Role: constants.RoleTeacher}
	got := names(t, q.Apply(base()))
	require.Len(t, got, 3)
	assert.Equal(t, "Zoe", got[len(got)-1])
}

func TestListStudentsFiltersNarrow(t *testing.T) {
	db, classID := seedRoster(t)

	base := func() *gorm.DB { return db.Model(&model.StudentModel{}) }

	q := dto.ListStudentsQuery{ClassID: classID.String()}
	assert.ElementsMatch(t, []string{"Zoe", "Ben"}, names(t, q.Apply(base())))

	// Search is case-insensitive over name, surname and username.
	q = dto.ListStudentsQuery{Search: "BROOK"}
	assert.Equal(t, []string{"Amy"}, names(t, q.Apply(base())))

	// Malformed filter values are ignored, not errors.
	q = dto.ListStudentsQuery{ClassID: "not-a-uuid"}
	assert.Len(t, names(t, q.Apply(base())), 3)
}
