package database

import (
	"log"

	"gorm.io/gorm"

	courseModel "quizcourse_backend/internals/features/courses/model"
	notificationModel "quizcourse_backend/internals/features/notifications/model"
	questionModel "quizcourse_backend/internals/features/questions/model"
	taxModel "quizcourse_backend/internals/features/taxonomy/model"
	authModel "quizcourse_backend/internals/features/users/auth/model"
	userModel "quizcourse_backend/internals/features/users/user/model"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},

		&taxModel.TagModel{},
		&taxModel.TechnologyModel{},
		&taxModel.TopicModel{},
		&taxModel.BancaModel{},

		&questionModel.QuestionModel{},
		&questionModel.QuestionOptionModel{},
		&questionModel.AnswerModel{},
		&questionModel.AnswerAttemptModel{},
		&questionModel.FavoriteQuestionModel{},

		&courseModel.CourseModel{},
		&courseModel.ModuleModel{},
		&courseModel.LessonModel{},
		&courseModel.EnrollmentModel{},
		&courseModel.ProgressModel{},
		&courseModel.ReviewModel{},

		&notificationModel.NotificationModel{},
	}
}

// AutoMigrate creates/extends the schema. Only run when DB_AUTO_MIGRATE=true
// or from tests; it never drops columns.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	log.Println("[INFO] schema migrated")
	return nil
}
