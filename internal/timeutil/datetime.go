package timeutil

import (
	"errors"
	"regexp"
	"time"
)

var ErrInvalidDateTime = errors.New("неверный формат даты/времени")

const dateTimeLayout = "2006-01-02 15:04:05"

var (
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockPattern = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)
)

// ParseDateAndTime собирает дедлайн из полей формы date (YYYY-MM-DD) и time (HH:MM или HH:MM:SS).
func ParseDateAndTime(date, clock string) (time.Time, error) {
	return ParseDateAndTimeIn(date, clock, time.Local)
}

func ParseDateAndTimeIn(date, clock string, loc *time.Location) (time.Time, error) {
	if !datePattern.MatchString(date) || !clockPattern.MatchString(clock) {
		return time.Time{}, ErrInvalidDateTime
	}

	if len(clock) == len("15:04") {
		clock += ":00"
	}

	parsed, err := time.ParseInLocation(dateTimeLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateTime
	}
	return parsed, nil
}

// SplitDateAndTime обратная операция для заполнения формы редактирования.
func SplitDateAndTime(t time.Time) (string, string) {
	return t.Format("2006-01-02"), t.Format("15:04")
}
