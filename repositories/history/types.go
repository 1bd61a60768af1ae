package history

import (
	"homework-watchdog/models/entities"
	"homework-watchdog/utils/databases"
)

type Repository interface {
	Save(event entities.StatusEvent) error
	Count() int64
	FetchLast(limit int) ([]entities.StatusEvent, error)
}

type Impl struct {
	db databases.SqlConnection
}
