package database

import (
	"github.com/lshigami/qams/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Models lists every table owned by the service, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Course{},
		&model.Question{},
		&model.QuestionPaper{},
		&model.PaperQuestion{},
		&model.PaperModeration{},
		&model.QuestionModeration{},
		&model.AuditLog{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	if err := db.AutoMigrate(Models()...); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
