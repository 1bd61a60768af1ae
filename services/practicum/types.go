package practicum

import (
	"context"
	"errors"
	"net/http"
	"time"
)

const (
	endpoint          = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	clientHTTPTimeout = 15 * time.Second

	keyCurrentDate  = "current_date"
	keyHomeworks    = "homeworks"
	keyHomeworkName = "homework_name"
	keyStatus       = "status"
)

var (
	// ErrUnavailable covers transport failures and non-200 answers.
	ErrUnavailable = errors.New("homework API is unavailable")
	// ErrBadFormat means the body could not be decoded as JSON at all.
	ErrBadFormat = errors.New("homework API response is not valid JSON")
	// ErrMissingKey means a required key is absent from the response.
	ErrMissingKey = errors.New("missing key in homework API response")
	// ErrTypeMismatch means a value does not have the documented type.
	ErrTypeMismatch = errors.New("unexpected type in homework API response")
	// ErrUnexpectedStatus means a status outside the known enumeration.
	ErrUnexpectedStatus = errors.New("unexpected homework status")
)

// StatusPage is a fully validated answer of the homework API.
type StatusPage struct {
	CurrentDate int64
	Homeworks   []Homework
}

// Homework is one record of the homeworks array. Name or Status is nil
// when the corresponding key was absent; StatusMessage rejects such a
// record when it is actually inspected. A present-but-empty value is
// kept as is.
type Homework struct {
	Name   *string
	Status *string
}

type Client interface {
	HomeworkStatuses(ctx context.Context, fromDate int64) (*StatusPage, error)
}

type Impl struct {
	baseURL string
	token   string
	client  *http.Client
}
