package validator

import (
	"errors"
	"strconv"
)

const (
	MinCount = 1
	MaxCount = 10
)

// Kind 区分两类输入错误，界面上给出不同提示
type Kind int

const (
	NotAnInteger Kind = iota + 1
	OutOfRange
)

var (
	ErrNotAnInteger = errors.New("count is not a positive integer")
	ErrOutOfRange   = errors.New("count is out of range")
)

// ValidationError 新闻数量输入错误
type ValidationError struct {
	Kind  Kind
	Input string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case OutOfRange:
		return "Ошибка: Введите число от 1 до 10"
	default:
		return "Ошибка: Введите целое положительное число в поле количества новостей"
	}
}

// Is 支持 errors.Is(err, ErrNotAnInteger) / errors.Is(err, ErrOutOfRange)
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrNotAnInteger:
		return e.Kind == NotAnInteger
	case ErrOutOfRange:
		return e.Kind == OutOfRange
	}
	return false
}

// Code 用于 API 返回的机器可读错误码
func (e *ValidationError) Code() string {
	if e.Kind == OutOfRange {
		return "out_of_range"
	}
	return "not_an_integer"
}

// ValidateCount 只接受纯十进制数字且取值在 [MinCount, MaxCount] 内
func ValidateCount(raw string) (int, error) {
	if !isDigits(raw) {
		return 0, &ValidationError{Kind: NotAnInteger, Input: raw}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		// 全是数字但溢出 int
		return 0, &ValidationError{Kind: OutOfRange, Input: raw}
	}
	if n < MinCount || n > MaxCount {
		return 0, &ValidationError{Kind: OutOfRange, Input: raw}
	}
	return n, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
