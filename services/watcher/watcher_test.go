package watcher

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"homework-watchdog/models/constants"
	"homework-watchdog/pkg/observer"
	"homework-watchdog/services/practicum"

	"github.com/spf13/viper"
)

type fakeClient struct {
	page  *practicum.StatusPage
	err   error
	calls int
}

func (f *fakeClient) HomeworkStatuses(ctx context.Context, fromDate int64) (*practicum.StatusPage, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

type fakeMessenger struct {
	sent []string
	err  error
}

func (f *fakeMessenger) SendMessage(text string) error {
	f.sent = append(f.sent, text)
	return f.err
}

type fakeObserver struct {
	events []observer.Event
}

func (f *fakeObserver) OnNotify(e observer.Event) {
	f.events = append(f.events, e)
}

func strPtr(s string) *string {
	return &s
}

func setCredentials(t *testing.T) {
	t.Helper()
	viper.Set(constants.PracticumToken, "practicum")
	viper.Set(constants.TelegramToken, "telegram")
	viper.Set(constants.TelegramChatID, "42")
	t.Cleanup(viper.Reset)
}

func newTestWatcher(client practicum.Client, messenger Messenger) (*Impl, *bool) {
	halted := false
	service := &Impl{
		client:    client,
		messenger: messenger,
		observers: map[observer.Observer]struct{}{},
		cursor:    time.Now().Unix(),
		halt:      func(string) { halted = true },
	}
	return service, &halted
}

func TestCheckTokens(t *testing.T) {
	tests := []struct {
		name    string
		missing string
	}{
		{"missing practicum token", constants.PracticumToken},
		{"missing telegram token", constants.TelegramToken},
		{"missing chat id", constants.TelegramChatID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setCredentials(t)
			viper.Set(tt.missing, "")

			if err := CheckTokens(); !errors.Is(err, ErrMissingCredential) {
				t.Errorf("CheckTokens() = %v, want ErrMissingCredential", err)
			}
		})
	}

	t.Run("all present", func(t *testing.T) {
		setCredentials(t)
		if err := CheckTokens(); err != nil {
			t.Errorf("CheckTokens() = %v, want nil", err)
		}
	})

	t.Run("chat id not an integer", func(t *testing.T) {
		setCredentials(t)
		viper.Set(constants.TelegramChatID, "not-a-chat")

		if err := CheckTokens(); !errors.Is(err, ErrInvalidCredential) {
			t.Errorf("CheckTokens() = %v, want ErrInvalidCredential", err)
		}
	})
}

func TestRunCycle_HaltsOnUnparsableChatID(t *testing.T) {
	setCredentials(t)
	viper.Set(constants.TelegramChatID, "not-a-chat")

	client := &fakeClient{}
	messenger := &fakeMessenger{}
	service, halted := newTestWatcher(client, messenger)

	service.RunCycle()

	if !*halted {
		t.Error("expected the cycle to halt on an unparsable chat id")
	}
	if client.calls != 0 {
		t.Errorf("client was called %d times, want 0", client.calls)
	}
}

func TestRunCycle_HaltsBeforeAnyNetworkCall(t *testing.T) {
	setCredentials(t)
	viper.Set(constants.PracticumToken, "")

	client := &fakeClient{}
	messenger := &fakeMessenger{}
	service, halted := newTestWatcher(client, messenger)

	service.RunCycle()

	if !*halted {
		t.Error("expected the cycle to halt on missing credentials")
	}
	if client.calls != 0 {
		t.Errorf("client was called %d times, want 0", client.calls)
	}
	if len(messenger.sent) != 0 {
		t.Errorf("messenger received %d messages, want 0", len(messenger.sent))
	}
}

func TestRunCycle_EmptyHomeworksAdvancesCursor(t *testing.T) {
	setCredentials(t)

	client := &fakeClient{page: &practicum.StatusPage{CurrentDate: 1000}}
	messenger := &fakeMessenger{}
	service, _ := newTestWatcher(client, messenger)
	service.lastError = "stale failure"

	service.RunCycle()

	if service.cursor != 1000 {
		t.Errorf("cursor = %d, want 1000", service.cursor)
	}
	if service.lastError != "" {
		t.Errorf("lastError = %q, want cleared", service.lastError)
	}
	if len(messenger.sent) != 0 {
		t.Errorf("messenger received %d messages, want 0", len(messenger.sent))
	}
}

func TestRunCycle_StatusChangeNotifies(t *testing.T) {
	setCredentials(t)

	client := &fakeClient{page: &practicum.StatusPage{
		CurrentDate: 1000,
		Homeworks:   []practicum.Homework{{Name: strPtr("hw1"), Status: strPtr("approved")}},
	}}
	messenger := &fakeMessenger{}
	service, _ := newTestWatcher(client, messenger)
	recorder := &fakeObserver{}
	service.RegisterObserver(recorder)

	service.RunCycle()

	if len(messenger.sent) != 1 {
		t.Fatalf("messenger received %d messages, want 1", len(messenger.sent))
	}
	for _, fragment := range []string{`"hw1"`, "ревьюеру всё понравилось"} {
		if !strings.Contains(messenger.sent[0], fragment) {
			t.Errorf("notification %q does not contain %q", messenger.sent[0], fragment)
		}
	}
	if service.cursor != 1000 {
		t.Errorf("cursor = %d, want 1000", service.cursor)
	}
	if len(recorder.events) != 1 {
		t.Fatalf("observer received %d events, want 1", len(recorder.events))
	}
	if e := recorder.events[0]; e.Homework != "hw1" || e.Status != "approved" || e.SeenAt != 1000 {
		t.Errorf("event = %+v, want hw1/approved at 1000", e)
	}
}

func TestRunCycle_UnknownStatusIsAFailure(t *testing.T) {
	setCredentials(t)

	client := &fakeClient{page: &practicum.StatusPage{
		CurrentDate: 1000,
		Homeworks:   []practicum.Homework{{Name: strPtr("hw1"), Status: strPtr("danced")}},
	}}
	messenger := &fakeMessenger{}
	service, _ := newTestWatcher(client, messenger)
	before := service.cursor

	service.RunCycle()

	if service.cursor != before {
		t.Errorf("cursor advanced to %d on a failed cycle", service.cursor)
	}
	if len(messenger.sent) != 1 {
		t.Fatalf("messenger received %d messages, want 1", len(messenger.sent))
	}
	if !strings.Contains(messenger.sent[0], "Сбой в работе программы") {
		t.Errorf("failure notification %q has the wrong prefix", messenger.sent[0])
	}
}

func TestRunCycle_DuplicateFailuresNotifiedOnce(t *testing.T) {
	setCredentials(t)

	client := &fakeClient{err: practicum.ErrUnavailable}
	messenger := &fakeMessenger{}
	service, _ := newTestWatcher(client, messenger)

	service.RunCycle()
	service.RunCycle()

	if len(messenger.sent) != 1 {
		t.Fatalf("messenger received %d messages after identical failures, want 1", len(messenger.sent))
	}

	// a different failure must produce a second notification
	client.err = practicum.ErrBadFormat
	service.RunCycle()

	if len(messenger.sent) != 2 {
		t.Fatalf("messenger received %d messages after a new failure, want 2", len(messenger.sent))
	}
}

func TestRunCycle_FailureThenSuccessResetsDedup(t *testing.T) {
	setCredentials(t)

	client := &fakeClient{err: practicum.ErrUnavailable}
	messenger := &fakeMessenger{}
	service, _ := newTestWatcher(client, messenger)

	service.RunCycle()

	client.err = nil
	client.page = &practicum.StatusPage{CurrentDate: 2000}
	service.RunCycle()

	// the same failure reappearing after a success is news again
	client.err = practicum.ErrUnavailable
	service.RunCycle()

	if len(messenger.sent) != 2 {
		t.Fatalf("messenger received %d messages, want 2", len(messenger.sent))
	}
}

func TestRunCycle_DeliveryFailureIsSwallowed(t *testing.T) {
	setCredentials(t)

	client := &fakeClient{page: &practicum.StatusPage{
		CurrentDate: 1000,
		Homeworks:   []practicum.Homework{{Name: strPtr("hw1"), Status: strPtr("reviewing")}},
	}}
	messenger := &fakeMessenger{err: errors.New("telegram is down")}
	service, _ := newTestWatcher(client, messenger)

	service.RunCycle()

	// the cycle still counts as successful
	if service.cursor != 1000 {
		t.Errorf("cursor = %d, want 1000", service.cursor)
	}
	if service.lastError != "" {
		t.Errorf("lastError = %q, want empty", service.lastError)
	}
}
