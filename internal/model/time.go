package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const (
	timeFormat = "2006-01-02 15:04:05"
	dateFormat = "2006-01-02"
)

// LocalTime 以 "YYYY-MM-DD HH:MM:SS" 格式序列化的时间类型。
type LocalTime time.Time

// MarshalJSON implements the json.Marshaler interface.
func (t LocalTime) MarshalJSON() ([]byte, error) {
	formatted := fmt.Sprintf("\"%s\"", time.Time(t).Format(timeFormat))
	return []byte(formatted), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *LocalTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), "\"")
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := time.ParseInLocation(timeFormat, s, time.Local)
	if err != nil {
		return err
	}
	*t = LocalTime(parsed)
	return nil
}

// Value implements the driver.Valuer interface.
func (t LocalTime) Value() (driver.Value, error) {
	return time.Time(t), nil
}

// Scan implements the sql.Scanner interface.
func (t *LocalTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*t = LocalTime(v)
		return nil
	case []byte:
		parsed, err := time.ParseInLocation(timeFormat, string(v), time.Local)
		if err != nil {
			return err
		}
		*t = LocalTime(parsed)
		return nil
	}
	return fmt.Errorf("无法将 %T 扫描为 LocalTime", value)
}

// LocalDate 以 "YYYY-MM-DD" 格式序列化的日期类型。
type LocalDate time.Time

// MarshalJSON implements the json.Marshaler interface.
func (d LocalDate) MarshalJSON() ([]byte, error) {
	formatted := fmt.Sprintf("\"%s\"", time.Time(d).Format(dateFormat))
	return []byte(formatted), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *LocalDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), "\"")
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := time.ParseInLocation(dateFormat, s, time.Local)
	if err != nil {
		return err
	}
	*d = LocalDate(parsed)
	return nil
}

// Value implements the driver.Valuer interface.
func (d LocalDate) Value() (driver.Value, error) {
	return time.Time(d), nil
}

// Scan implements the sql.Scanner interface.
func (d *LocalDate) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*d = LocalDate(v)
		return nil
	case []byte:
		parsed, err := time.ParseInLocation(dateFormat, string(v), time.Local)
		if err != nil {
			return err
		}
		*d = LocalDate(parsed)
		return nil
	}
	return fmt.Errorf("无法将 %T 扫描为 LocalDate", value)
}
