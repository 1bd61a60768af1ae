package entities

type StatusEvent struct {
	ID       uint   `json:"id,omitempty" gorm:"primaryKey;autoIncrement"`
	Homework string `json:"homework,omitempty"`
	Status   string `json:"status,omitempty"`
	Verdict  string `json:"verdict,omitempty"`
	SeenAt   int64  `json:"seenAt,omitempty"`
}
