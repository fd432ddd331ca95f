package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// pgSQLErr is satisfied by both pgconn.PgError (gorm's postgres driver)
// and pq.Error without importing either driver here.
type pgSQLErr interface {
	SQLState() string
	Error() string
}

// Fixed SQLSTATE → message table. Raw driver text never reaches the
// caller; anything unlisted maps to the generic message.
var pgMessages = map[string]struct {
	status  int
	message string
}{
	"23505": {fiber.StatusConflict, "A record with the same unique value already exists."},
	"23503": {fiber.StatusBadRequest, "A referenced record does not exist."},
	"23502": {fiber.StatusBadRequest, "A required column is missing."},
	"23514": {fiber.StatusBadRequest, "The value violates a data constraint."},
	"22001": {fiber.StatusBadRequest, "A value is too long for its column."},
	"22P02": {fiber.StatusBadRequest, "A value has the wrong format."},
	"40001": {fiber.StatusConflict, "The operation conflicted with another request, please retry."},
	"40P01": {fiber.StatusConflict, "The operation was cancelled due to a deadlock, please retry."},
	"53300": {fiber.StatusServiceUnavailable, "The database is temporarily overloaded."},
	"57014": {fiber.StatusServiceUnavailable, "The query took too long and was cancelled."},
}

const genericDBMessage = "Something went wrong, please try again."

// MapDBError turns any database error into a stable (status, message)
// pair for the action result.
func MapDBError(err error) (int, string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.StatusNotFound, "Record not found."
	}
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		if m, ok := pgMessages[pgErr.SQLState()]; ok {
			return m.status, m.message
		}
	}
	return fiber.StatusInternalServerError, genericDBMessage
}

// JsonDBError writes the mapped database error as the action result.
func JsonDBError(c *fiber.Ctx, err error) error {
	code, msg := MapDBError(err)
	return JsonError(c, code, msg)
}

// JsonActionError maps a service error to the tri-state result: fiber
// errors keep their status and message, anything else goes through the
// fixed database error table.
func JsonActionError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonDBError(c, err)
}

// IsUniqueErr matches unique violations from postgres and sqlite, for
// writes where the duplicate is handled instead of surfaced.
func IsUniqueErr(err error) bool {
	if err == nil {
		return false
	}
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) && pgErr.SQLState() == "23505" {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "unique failed")
}
