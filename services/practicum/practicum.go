package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"homework-watchdog/models/constants"
)

func New(token string) *Impl {
	return &Impl{
		baseURL: endpoint,
		token:   token,
		client: &http.Client{
			Timeout: clientHTTPTimeout,
		},
	}
}

// HomeworkStatuses fetches every homework event recorded after fromDate
// and validates the answer against the documented shape.
func (service *Impl) HomeworkStatuses(ctx context.Context, fromDate int64) (*StatusPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, service.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	req.Header.Set("Authorization", "OAuth "+service.token)

	query := req.URL.Query()
	query.Set("from_date", strconv.FormatInt(fromDate, 10))
	req.URL.RawQuery = query.Encode()

	resp, err := service.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status code %d", ErrUnavailable, resp.StatusCode)
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()

	var body any
	if errDecode := decoder.Decode(&body); errDecode != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadFormat, errDecode)
	}

	return validate(body)
}

// validate checks the shape of the decoded body. The type of a container is
// always checked before any key lookup inside it, and a key's presence is
// checked before its value's type.
func validate(body any) (*StatusPage, error) {
	fields, ok := body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object, got %T", ErrTypeMismatch, body)
	}

	rawDate, found := fields[keyCurrentDate]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, keyCurrentDate)
	}
	currentDate, err := toInt64(rawDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer, got %v", ErrTypeMismatch, keyCurrentDate, rawDate)
	}

	rawHomeworks, found := fields[keyHomeworks]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, keyHomeworks)
	}
	list, ok := rawHomeworks.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an array, got %T", ErrTypeMismatch, keyHomeworks, rawHomeworks)
	}

	page := &StatusPage{CurrentDate: currentDate, Homeworks: make([]Homework, 0, len(list))}
	for i, rawRecord := range list {
		record, errRecord := validateHomework(rawRecord)
		if errRecord != nil {
			return nil, fmt.Errorf("%s[%d]: %w", keyHomeworks, i, errRecord)
		}
		page.Homeworks = append(page.Homeworks, record)
	}

	return page, nil
}

func validateHomework(raw any) (Homework, error) {
	fields, ok := raw.(map[string]any)
	if !ok {
		return Homework{}, fmt.Errorf("%w: expected an object, got %T", ErrTypeMismatch, raw)
	}

	var record Homework
	if rawName, found := fields[keyHomeworkName]; found {
		name, okName := rawName.(string)
		if !okName {
			return Homework{}, fmt.Errorf("%w: %s must be a string, got %T", ErrTypeMismatch, keyHomeworkName, rawName)
		}
		record.Name = &name
	}
	if rawStatus, found := fields[keyStatus]; found {
		status, okStatus := rawStatus.(string)
		if !okStatus {
			return Homework{}, fmt.Errorf("%w: %s must be a string, got %T", ErrTypeMismatch, keyStatus, rawStatus)
		}
		record.Status = &status
	}

	return record, nil
}

func toInt64(v any) (int64, error) {
	number, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("not a number")
	}

	return number.Int64()
}

// Verdict resolves a status through the fixed enumeration.
func Verdict(status string) (string, error) {
	verdict, known := constants.GetHomeworkVerdicts()[status]
	if !known {
		return "", fmt.Errorf("%w: %q", ErrUnexpectedStatus, status)
	}

	return verdict, nil
}

// StatusMessage renders the chat notification for an inspected record.
// Only a truly absent key is a missing-key failure; an empty value is
// rendered as is.
func StatusMessage(homework Homework) (string, error) {
	if homework.Name == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingKey, keyHomeworkName)
	}
	if homework.Status == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingKey, keyStatus)
	}

	verdict, err := Verdict(*homework.Status)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Изменился статус проверки работы %q. %s", *homework.Name, verdict), nil
}
