package observer

type EventType int

const (
	StatusChangeEvent EventType = 1
)

type Event struct {
	E        EventType
	Homework string
	Status   string
	Verdict  string
	SeenAt   int64
}

func NewStatusChangeEvent(homework, status, verdict string, seenAt int64) Event {
	return Event{E: StatusChangeEvent, Homework: homework, Status: status, Verdict: verdict, SeenAt: seenAt}
}

type Observer interface {
	OnNotify(Event)
}

type Notifier interface {
	RegisterObserver(Observer)
}
