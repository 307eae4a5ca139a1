package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"weather-backcast/internal/models"
)

type preferencesRow struct {
	UserID          string `gorm:"primaryKey;column:user_id"`
	TemperatureUnit string `gorm:"column:temperature_unit;not null"`
	SpeedUnit       string `gorm:"column:speed_unit;not null"`
	Favorites       string `gorm:"column:favorites;type:text;not null"`
	DarkMode        bool   `gorm:"column:dark_mode;not null"`
}

func (preferencesRow) TableName() string {
	return "preferences"
}

// SQLPreferencesRepository stores preferences through gorm.
type SQLPreferencesRepository struct {
	db *gorm.DB
}

// OpenSQLitePreferencesRepository opens (and migrates) a SQLite database at dsn.
func OpenSQLitePreferencesRepository(dsn string) (*SQLPreferencesRepository, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("sqlite database path cannot be empty")
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences database: %w", err)
	}

	return NewSQLPreferencesRepository(db)
}

func NewSQLPreferencesRepository(db *gorm.DB) (*SQLPreferencesRepository, error) {
	if err := db.AutoMigrate(&preferencesRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate preferences table: %w", err)
	}
	return &SQLPreferencesRepository{db: db}, nil
}

func (s *SQLPreferencesRepository) Load(ctx context.Context, userID string) (models.Preferences, error) {
	if strings.TrimSpace(userID) == "" {
		return models.Preferences{}, ErrEmptyUserID
	}

	var row preferencesRow
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultPreferences(), nil
	}
	if err != nil {
		return models.Preferences{}, fmt.Errorf("failed to load preferences: %w", err)
	}

	favorites := []string{}
	if row.Favorites != "" {
		if err := json.Unmarshal([]byte(row.Favorites), &favorites); err != nil {
			return models.Preferences{}, fmt.Errorf("failed to decode favorites: %w", err)
		}
	}

	return models.Preferences{
		Units: models.Units{
			Temperature: models.TemperatureUnit(row.TemperatureUnit),
			Speed:       models.SpeedUnit(row.SpeedUnit),
		},
		Favorites: favorites,
		DarkMode:  row.DarkMode,
	}, nil
}

func (s *SQLPreferencesRepository) Save(ctx context.Context, userID string, prefs models.Preferences) error {
	if strings.TrimSpace(userID) == "" {
		return ErrEmptyUserID
	}

	favorites := prefs.Favorites
	if favorites == nil {
		favorites = []string{}
	}
	encoded, err := json.Marshal(favorites)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}

	row := preferencesRow{
		UserID:          userID,
		TemperatureUnit: string(prefs.Units.Temperature),
		SpeedUnit:       string(prefs.Units.Speed),
		Favorites:       string(encoded),
		DarkMode:        prefs.DarkMode,
	}

	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

func (s *SQLPreferencesRepository) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
