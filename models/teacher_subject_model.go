package models

import "github.com/google/uuid"

type TeacherSubject struct {
	TeacherUserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubjectID     uuid.UUID `gorm:"type:uuid;primaryKey"`

	Teacher Teacher `gorm:"foreignKey:TeacherUserID"`
	Subject Subject `gorm:"foreignKey:SubjectID"`
}
