// Package seeds fills an empty database with the baseline reference
// data a fresh deployment needs: grade levels, the core subjects, a
// starter behavior catalog and the common fee types. People and
// classes are never seeded; those come in through the API so the
// identity provider stays the source of truth.
package seeds

import (
	"log"

	"gorm.io/gorm"

	academicsModel "schoolhub_backend/internals/features/school/academics/model"
	behaviorModel "schoolhub_backend/internals/features/school/behavior/model"
	feeModel "schoolhub_backend/internals/features/school/fees/model"
)

func Run(db *gorm.DB) error {
	if err := grades(db); err != nil {
		return err
	}
	if err := subjects(db); err != nil {
		return err
	}
	if err := behaviors(db); err != nil {
		return err
	}
	if err := feeTypes(db); err != nil {
		return err
	}
	log.Println("[INFO] seed data in place")
	return nil
}

func grades(db *gorm.DB) error {
	for level := 1; level <= 12; level++ {
		m := academicsModel.GradeModel{Level: level}
		if err := db.Where("level = ?", level).FirstOrCreate(&m).Error; err != nil {
			return err
		}
	}
	return nil
}

func subjects(db *gorm.DB) error {
	names := []string{
		"Mathematics", "English", "Science", "History",
		"Geography", "Physical Education", "Art", "Music",
	}
	for _, name := range names {
		m := academicsModel.SubjectModel{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&m).Error; err != nil {
			return err
		}
	}
	return nil
}

func behaviors(db *gorm.DB) error {
	catalog := []behaviorModel.BehaviorModel{
		{Title: "Helping classmates", Points: 5, IsNegative: false},
		{Title: "Outstanding class participation", Points: 3, IsNegative: false},
		{Title: "Late to class", Points: 1, IsNegative: true},
		{Title: "Disrupting the lesson", Points: 3, IsNegative: true},
		{Title: "Fighting", Points: 10, IsNegative: true},
	}
	for _, b := range catalog {
		m := b
		if err := db.Where("title = ?", b.Title).FirstOrCreate(&m).Error; err != nil {
			return err
		}
	}
	return nil
}

func feeTypes(db *gorm.DB) error {
	names := []string{"Tuition", "Registration", "Books", "Uniform", "Excursion"}
	for _, name := range names {
		m := feeModel.FeeTypeModel{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&m).Error; err != nil {
			return err
		}
	}
	return nil
}
