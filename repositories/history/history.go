package history

import (
	"homework-watchdog/models/entities"
	"homework-watchdog/utils/databases"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

func (repo *Impl) Save(event entities.StatusEvent) error {
	return repo.db.GetDB().Create(&event).Error
}

func (repo *Impl) Count() int64 {
	count := new(int64)
	repo.db.GetDB().Model(&entities.StatusEvent{}).Count(count)

	return *count
}

func (repo *Impl) FetchLast(limit int) ([]entities.StatusEvent, error) {
	var events []entities.StatusEvent
	result := repo.db.GetDB().Order("seen_at desc, id desc").Limit(limit).Find(&events)

	return events, result.Error
}
