// Package scope is the single source of truth for "which rows may this
// role see". Every list, count and detail query goes through one of
// these predicates, so a page and its badge can never disagree.
//
// Each constructor is given the root *gorm.DB for the at-most-one
// lookup of the caller's own row it may need, and returns a gorm scope
// that narrows the entity query. If the caller's role-specific row is
// missing, the predicate degrades to Nothing, never to everything.
//
// Canonical teacher rules (the source derived these inconsistently per
// page; here each entity has exactly one):
//   - people-centric data (students, attendance, incidents, parents):
//     students of classes the teacher SUPERVISES
//   - lesson-derived data (lessons, exams, assignments, results):
//     classes the teacher TEACHES A LESSON in
package scope

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolhub_backend/internals/constants"
)

type Scope = func(*gorm.DB) *gorm.DB

// All leaves the query unrestricted (admin).
func All(tx *gorm.DB) *gorm.DB { return tx }

// Nothing is the impossible predicate.
func Nothing(tx *gorm.DB) *gorm.DB { return tx.Where("1 = 0") }

/* ===================== subquery builders ===================== */

func supervisedClassIDs(db *gorm.DB, teacherID uuid.UUID) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Table("classes").Select("id").Where("supervisor_id = ?", teacherID)
}

func taughtClassIDs(db *gorm.DB, teacherID uuid.UUID) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Table("lessons").Select("class_id").Where("teacher_id = ?", teacherID)
}

func taughtLessonIDs(db *gorm.DB, teacherID uuid.UUID) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Table("lessons").Select("id").Where("teacher_id = ?", teacherID)
}

func childIDs(db *gorm.DB, parentID uuid.UUID) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Table("students").Select("id").Where("parent_id = ?", parentID)
}

func childClassIDs(db *gorm.DB, parentID uuid.UUID) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Table("students").Select("class_id").Where("parent_id = ?", parentID)
}

func supervisedStudentIDs(db *gorm.DB, teacherID uuid.UUID) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Table("students").Select("id").Where("class_id IN (?)", supervisedClassIDs(db, teacherID))
}

/* ===================== own-row lookups ===================== */

// ownStudent fetches the caller's student row; ok=false means the row
// is missing (or the lookup failed) and the scope must be Nothing.
func ownStudent(db *gorm.DB, studentID uuid.UUID) (classID, parentID uuid.UUID, ok bool) {
	var row struct {
		ClassID  uuid.UUID
		ParentID uuid.UUID
	}
	err := db.Table("students").Select("class_id", "parent_id").
		Where("id = ?", studentID).Take(&row).Error
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	return row.ClassID, row.ParentID, true
}

func rowExists(db *gorm.DB, table string, id uuid.UUID) bool {
	var n int64
	if err := db.Table(table).Where("id = ?", id).Count(&n).Error; err != nil {
		return false
	}
	return n > 0
}

/* ===================== per-entity policies ===================== */

// Students: admin all; teacher -> supervised classes; student -> own
// row; parent -> own children.
func Students(db *gorm.DB, role string, userID uuid.UUID) Scope {
	switch role {
	case constants.RoleAdmin:
		return All
	case constants.RoleTeacher:
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("class_id IN (?)", supervisedClassIDs(db, userID))
		}
	case constants.RoleStudent:
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("id = ?", userID)
		}
	case constants.RoleParent:
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("parent_id = ?", userID)
		}
	}
	return Nothing
}

// Teachers: staff see the whole directory; students/parents see only
// teachers with a lesson in their (children's) class.
func Teachers(db *gorm.DB, role string, userID uuid.UUID) Scope {
	switch role {
	case constants.RoleAdmin, constants.RoleTeacher:
		return All
	case constants.RoleStudent:
		classID, _, ok := ownStudent(db, userID)
		if !ok {
			return Nothing
		}
		return func(tx *gorm.DB) *gorm.DB {
			sub := db.Session(&gorm.Session{NewDB: true}).
				Table("lessons").Select("teacher_id").Where("class_id = ?", classID)
			return tx.Where("id IN (?)", sub)
		}
	case constants.RoleParent:
		return func(tx *gorm.DB) *gorm.DB {
			sub := db.Session(&gorm.Session{NewDB: true}).
				Table("lessons").Select("teacher_id").
				Where("class_id IN (?)", childClassIDs(db, userID))
			return tx.Where("id IN (?)", sub)
		}
	}
	return Nothing
}

// Parents: admin all; teacher -> parents of supervised students;
// student -> own parent; parent -> self.
func Parents(db *gorm.DB, role string, userID uuid.UUID) Scope {
	switch role {
	case constants.RoleAdmin:
		return All
	case constants.RoleTeacher:
		return func(tx *gorm.DB) *gorm.DB {
			sub := db.Session(&gorm.Session{NewDB: true}).
				Table("students").Select("parent_id").
				Where("class_id IN (?)", supervisedClassIDs(db, userID))
			return tx.Where("id IN (?)", sub)
		}
	case constants.RoleStudent:
		_, parentID, ok := ownStudent(db, userID)
		if !ok {
			return Nothing
		}
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("id = ?", parentID)
		}
	case constants.RoleParent:
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("id = ?", userID)
		}
	}
	return Nothing
}

// Classes: teacher sees classes supervised or taught; student own
// class; parent children's classes.
func Classes(db *gorm.DB, role string, userID uuid.UUID) Scope {
	switch role {
	case constants.RoleAdmin:
		return All
	case constants.RoleTeacher:
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("supervisor_id = ? OR id IN (?)", userID, taughtClassIDs(db, userID))
		}
	case constants.RoleStudent:
		classID, _, ok := ownStudent(db, userID)
		if !ok {
			return Nothing
		}
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("id = ?", classID)
		}
	case constants.RoleParent:
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("id IN (?)", childClassIDs(db, userID))
		}
	}
	return Nothing
}

// Lessons: teacher -> own lessons; student -> own class; parent ->
// children's classes.
func Lessons(db *gorm.DB, role string, userID uuid.UUID) Scope {
	switch role {
	case constants.RoleAdmin:
		return All
	case constants.RoleTeacher:
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("teacher_id = ?", userID)
		}
	case constants.RoleStudent:
		classID, _, ok := ownStudent(db, userID)
		if !ok {
			return Nothing
		}
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("class_id = ?", classID)
		}
	case constants.RoleParent:
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("class_id IN (?)", childClassIDs(db, userID))
		}
	}
	return Nothing
}

// lessonScoped covers exams and assignments: both hang off a lesson.
func lessonScoped(db *gorm.DB, role string, userID uuid.UUID) Scope {
	switch role {
	case constants.RoleAdmin:
		return All
	case constants.RoleTeacher:
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("lesson_id IN (?)", taughtLessonIDs(db, userID))
		}
	case constants.RoleStudent:
		classID, _, ok := ownStudent(db, userID)
		if !ok {
			return Nothing
		}
		return func(tx *gorm.DB) *gorm.DB {
			sub := db.Session(&gorm.Session{NewDB: true}).
				Table("lessons").Select("id").Where("class_id = ?", classID)
			return tx.Where("lesson_id IN (?)", sub)
		}
	case constants.RoleParent:
		return func(tx *gorm.DB) *gorm.DB {
			sub := db.Session(&gorm.Session{NewDB: true}).
				Table("lessons").Select("id").
				Where("class_id IN (?)", childClassIDs(db, userID))
			return tx.Where("lesson_id IN (?)", sub)
		}
	}
	return Nothing
}

func Exams(db *gorm.DB, role string, userID uuid.UUID) Scope {
	return lessonScoped(db, role, userID)
}

func Assignments(db *gorm.DB, role string, userID uuid.UUID) Scope {
	return lessonScoped(db, role, userID)
}

// Results: teacher gets the double filter: the assessment's lesson is
// theirs AND the student sits in a class they teach.
func Results(db *gorm.DB, role string, userID uuid.UUID) Scope {
	switch role {
	case constants.RoleAdmin:
		return All
	case constants.RoleTeacher:
		return func(tx *gorm.DB) *gorm.DB {
			examIDs := db.Session(&gorm.Session{NewDB: true}).
				Table("exams").Select("id").
				Where("lesson_id IN (?)", taughtLessonIDs(db, userID))
			assignmentIDs := db.Session(&gorm.Session{NewDB: true}).
				Table("assignments").Select("id").
				Where("lesson_id IN (?)", taughtLessonIDs(db, userID))
			taughtStudentIDs := db.Session(&gorm.Session{NewDB: true}).
				Table("students").Select("id").
				Where("class_id IN (?)", taughtClassIDs(db, userID))
			return tx.
				Where("exam_id IN (?) OR assignment_id IN (?)", examIDs, assignmentIDs).
				Where("student_id IN (?)", taughtStudentIDs)
		}
	case constants.RoleStudent:
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("student_id = ?", userID)
		}
	case constants.RoleParent:
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("student_id IN (?)", childIDs(db, userID))
		}
	}
	return Nothing
}

// Attendance: teacher -> students of supervised classes; student own;
// parent children.
func Attendance(db *gorm.DB, role string, userID uuid.UUID) Scope {
	switch role {
	case constants.RoleAdmin:
		return All
	case constants.RoleTeacher:
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("student_id IN (?)", supervisedStudentIDs(db, userID))
		}
	case constants.RoleStudent:
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("student_id = ?", userID)
		}
	case constants.RoleParent:
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("student_id IN (?)", childIDs(db, userID))
		}
	}
	return Nothing
}

// Fees: teachers see all fees (deliberately unrestricted, mirroring
// the source policy table).
func Fees(db *gorm.DB, role string, userID uuid.UUID) Scope {
	switch role {
	case constants.RoleAdmin, constants.RoleTeacher:
		return All
	case constants.RoleStudent:
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("student_id = ?", userID)
		}
	case constants.RoleParent:
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("student_id IN (?)", childIDs(db, userID))
		}
	}
	return Nothing
}

// Incidents follow the people-centric teacher rule.
func Incidents(db *gorm.DB, role string, userID uuid.UUID) Scope {
	switch role {
	case constants.RoleAdmin:
		return All
	case constants.RoleTeacher:
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("student_id IN (?)", supervisedStudentIDs(db, userID))
		}
	case constants.RoleStudent:
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("student_id = ?", userID)
		}
	case constants.RoleParent:
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("student_id IN (?)", childIDs(db, userID))
		}
	}
	return Nothing
}

// classTargeted covers announcements and events: a nil class_id means
// global, otherwise the class must be in the caller's orbit.
func classTargeted(db *gorm.DB, role string, userID uuid.UUID) Scope {
	switch role {
	case constants.RoleAdmin:
		return All
	case constants.RoleTeacher:
		if !rowExists(db, "teachers", userID) {
			return Nothing
		}
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where(
				"class_id IS NULL OR class_id IN (?) OR class_id IN (?)",
				supervisedClassIDs(db, userID),
				taughtClassIDs(db, userID),
			)
		}
	case constants.RoleStudent:
		classID, _, ok := ownStudent(db, userID)
		if !ok {
			return Nothing
		}
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("class_id IS NULL OR class_id = ?", classID)
		}
	case constants.RoleParent:
		if !rowExists(db, "parents", userID) {
			return Nothing
		}
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("class_id IS NULL OR class_id IN (?)", childClassIDs(db, userID))
		}
	}
	return Nothing
}

func Announcements(db *gorm.DB, role string, userID uuid.UUID) Scope {
	return classTargeted(db, role, userID)
}

func Events(db *gorm.DB, role string, userID uuid.UUID) Scope {
	return classTargeted(db, role, userID)
}
