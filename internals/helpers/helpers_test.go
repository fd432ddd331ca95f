package helper_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	helper "schoolhub_backend/internals/helpers"
)

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, helper.ParsePage(""))
	assert.Equal(t, 1, helper.ParsePage("abc"))
	assert.Equal(t, 1, helper.ParsePage("0"))
	assert.Equal(t, 1, helper.ParsePage("-3"))
	assert.Equal(t, 7, helper.ParsePage("7"))
}

func TestParseDate(t *testing.T) {
	d, ok := helper.ParseDate("2026-02-14")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), d)

	_, ok = helper.ParseDate("14/02/2026")
	assert.False(t, ok)
	_, ok = helper.ParseDate("")
	assert.False(t, ok)
}

func TestParseUUID(t *testing.T) {
	_, ok := helper.ParseUUID("")
	assert.False(t, ok)
	_, ok = helper.ParseUUID("not-a-uuid")
	assert.False(t, ok)
	id, ok := helper.ParseUUID("7b0f7e6e-9f2a-4c43-8a3e-2a1f6cfb6a01")
	assert.True(t, ok)
	assert.Equal(t, "7b0f7e6e-9f2a-4c43-8a3e-2a1f6cfb6a01", id.String())
}

func TestSearchPattern(t *testing.T) {
	assert.Equal(t, "%anna%", helper.SearchPattern("Anna"))
	assert.Equal(t, "%o'brien%", helper.SearchPattern("O'Brien"))
}

type pageRow struct {
	ID   int `gorm:"primaryKey"`
	Name string
}

func TestPaginate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&pageRow{}))

	for i := 1; i <= 25; i++ {
		require.NoError(t, db.Create(&pageRow{ID: i, Name: fmt.Sprintf("row-%02d", i)}).Error)
	}

	fetch := func(page int) []pageRow {
		var rows []pageRow
		require.NoError(t, db.Order("id ASC").Scopes(helper.Paginate(page)).Find(&rows).Error)
		return rows
	}

	first := fetch(1)
	require.Len(t, first, helper.PageSize)
	assert.Equal(t, 1, first[0].ID)
	assert.Equal(t, 10, first[len(first)-1].ID)

	third := fetch(3)
	require.Len(t, third, 5)
	assert.Equal(t, 21, third[0].ID)

	// Out-of-range pages are empty, never an error.
	assert.Empty(t, fetch(4))
	assert.Empty(t, fetch(100))

	// Pages tile the table without overlap.
	seen := map[int]bool{}
	for page := 1; page <= 3; page++ {
		for _, r := range fetch(page) {
			assert.False(t, seen[r.ID])
			seen[r.ID] = true
		}
	}
	assert.Len(t, seen, 25)
}

type fakePGErr struct{ code string }

func (e fakePGErr) SQLState() string { return e.code }
func (e fakePGErr) Error() string    { return "driver detail that must not leak" }

func TestMapDBError(t *testing.T) {
	code, msg := helper.MapDBError(gorm.ErrRecordNotFound)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "Record not found.", msg)

	code, msg = helper.MapDBError(fakePGErr{code: "23505"})
	assert.Equal(t, fiber.StatusConflict, code)
	assert.NotContains(t, msg, "driver detail")

	code, msg = helper.MapDBError(fakePGErr{code: "23503"})
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.NotContains(t, msg, "driver detail")

	// Unlisted SQLSTATE falls back to the generic message.
	code, msg = helper.MapDBError(fakePGErr{code: "99999"})
	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.NotContains(t, msg, "driver detail")

	code, _ = helper.MapDBError(errors.New("boom"))
	assert.Equal(t, fiber.StatusInternalServerError, code)
}

func TestIsUniqueErr(t *testing.T) {
	assert.False(t, helper.IsUniqueErr(nil))
	assert.True(t, helper.IsUniqueErr(fakePGErr{code: "23505"}))
	assert.True(t, helper.IsUniqueErr(errors.New("UNIQUE constraint failed: students.username")))
	assert.False(t, helper.IsUniqueErr(errors.New("connection refused")))
}
