package model

import (
	"database/sql/driver"
	"errors"
	"strings"
)

// StringCSV 以逗号分隔形式持久化的字符串切片
type StringCSV []string

func (s StringCSV) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "", nil
	}
	return strings.Join(s, ","), nil
}

func (s *StringCSV) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		*s = nil
		return nil
	default:
		return errors.New("unsupported type for StringCSV")
	}

	if raw == "" {
		*s = nil
		return nil
	}
	*s = strings.Split(raw, ",")
	return nil
}

// Contains 大小写不敏感的成员判断
func (s StringCSV) Contains(item string) bool {
	for _, v := range s {
		if strings.EqualFold(v, item) {
			return true
		}
	}
	return false
}
