package repository

import (
	"context"

	"frontdesk/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoomConfigRepository is the data access contract for room configuration.
// The availability checker depends on GetBedCount; services depend on the
// interface, not the GORM implementation, so tests can stub it.
type RoomConfigRepository interface {
	Upsert(ctx context.Context, rc *model.RoomConfig) error
	FindByRoom(ctx context.Context, room string) (*model.RoomConfig, error)
	List(ctx context.Context) ([]model.RoomConfig, error)
	// GetBedCount returns 0 for unknown rooms — an unconfigured room is
	// never available for extension.
	GetBedCount(ctx context.Context, room string) int
	DB() *gorm.DB
}

type roomConfigRepo struct{ db *gorm.DB }

func NewRoomConfigRepository(db *gorm.DB) RoomConfigRepository {
	return &roomConfigRepo{db: db}
}

func (r *roomConfigRepo) Upsert(ctx context.Context, rc *model.RoomConfig) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"bed_count", "floor", "wing", "updated_at"}),
	}).Create(rc).Error
}

func (r *roomConfigRepo) FindByRoom(ctx context.Context, room string) (*model.RoomConfig, error) {
	var rc model.RoomConfig
	err := r.db.WithContext(ctx).Where("room_number = ?", room).First(&rc).Error
	return &rc, err
}

func (r *roomConfigRepo) List(ctx context.Context) ([]model.RoomConfig, error) {
	var configs []model.RoomConfig
	err := r.db.WithContext(ctx).Order("room_number").Find(&configs).Error
	return configs, err
}

func (r *roomConfigRepo) GetBedCount(ctx context.Context, room string) int {
	rc, err := r.FindByRoom(ctx, room)
	if err != nil {
		return 0
	}
	return rc.BedCount
}

func (r *roomConfigRepo) DB() *gorm.DB { return r.db }
