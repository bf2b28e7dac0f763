package lottery

import (
	"errors"
	"fmt"
)

// NetworkError 网络请求失败（瞬时错误，调用方可回退到最后一次已知数据）
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// MalformedDataError 单条开奖记录无法解析为有效数据（可跳过恢复）
type MalformedDataError struct {
	Contest int
	Reason  string
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("malformed draw record (contest %d): %s", e.Contest, e.Reason)
}

// InsufficientHistoryError 历史数据不足，指定方法不可用
type InsufficientHistoryError struct {
	Method   string
	Required int
	Got      int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient history for %s prediction: need %d draws, got %d",
		e.Method, e.Required, e.Got)
}

// IsNetworkError 检查是否为网络错误
func IsNetworkError(err error) bool {
	var target *NetworkError
	return errors.As(err, &target)
}

// IsMalformedData 检查是否为数据格式错误
func IsMalformedData(err error) bool {
	var target *MalformedDataError
	return errors.As(err, &target)
}

// IsInsufficientHistory 检查是否为历史数据不足错误
func IsInsufficientHistory(err error) bool {
	var target *InsufficientHistoryError
	return errors.As(err, &target)
}
