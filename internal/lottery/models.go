package lottery

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Mega-Sena基本常量
const (
	MinNumber = 1  // 最小号码
	MaxNumber = 60 // 最大号码
	DrawSize  = 6  // 每期开奖号码个数
)

// Draw 单期开奖数据模型
type Draw struct {
	Contest     int            `json:"contest"`
	Date        time.Time      `json:"date"`
	Numbers     [DrawSize]int  `json:"numbers"` // 保留开奖原始顺序
	Accumulated bool           `json:"accumulated"`
}

// APIDraw API返回的开奖数据模型
type APIDraw struct {
	Contest     int      `json:"concurso"`
	Date        string   `json:"data"`
	Dezenas     []string `json:"dezenas"`
	Accumulated bool     `json:"acumulou"`
}

// NewDraw 创建并验证一期开奖数据
func NewDraw(contest int, date time.Time, numbers []int, accumulated bool) (Draw, error) {
	if err := ValidateNumbers(numbers); err != nil {
		return Draw{}, err
	}

	draw := Draw{
		Contest:     contest,
		Date:        date,
		Accumulated: accumulated,
	}
	copy(draw.Numbers[:], numbers)
	return draw, nil
}

// ParseAPIDraw 转换API数据为内部数据模型
func ParseAPIDraw(apiDraw APIDraw) (Draw, error) {
	date, err := time.Parse("02/01/2006", apiDraw.Date)
	if err != nil {
		return Draw{}, &MalformedDataError{
			Contest: apiDraw.Contest,
			Reason:  fmt.Sprintf("invalid date %q: %v", apiDraw.Date, err),
		}
	}

	if len(apiDraw.Dezenas) != DrawSize {
		return Draw{}, &MalformedDataError{
			Contest: apiDraw.Contest,
			Reason:  fmt.Sprintf("expected %d numbers, got %d", DrawSize, len(apiDraw.Dezenas)),
		}
	}

	numbers := make([]int, 0, DrawSize)
	for _, dezena := range apiDraw.Dezenas {
		n, err := strconv.Atoi(strings.TrimSpace(dezena))
		if err != nil {
			return Draw{}, &MalformedDataError{
				Contest: apiDraw.Contest,
				Reason:  fmt.Sprintf("invalid number %q: %v", dezena, err),
			}
		}
		numbers = append(numbers, n)
	}

	if err := ValidateNumbers(numbers); err != nil {
		return Draw{}, &MalformedDataError{
			Contest: apiDraw.Contest,
			Reason:  err.Error(),
		}
	}

	draw := Draw{
		Contest:     apiDraw.Contest,
		Date:        date,
		Accumulated: apiDraw.Accumulated,
	}
	copy(draw.Numbers[:], numbers)
	return draw, nil
}

// ValidateNumbers 验证一组号码是否满足开奖不变量（6个、互不重复、范围1-60）
func ValidateNumbers(numbers []int) error {
	if len(numbers) != DrawSize {
		return fmt.Errorf("expected %d numbers, got %d", DrawSize, len(numbers))
	}

	seen := make(map[int]bool, DrawSize)
	for _, n := range numbers {
		if n < MinNumber || n > MaxNumber {
			return fmt.Errorf("number %d out of range [%d,%d]", n, MinNumber, MaxNumber)
		}
		if seen[n] {
			return fmt.Errorf("duplicate number %d", n)
		}
		seen[n] = true
	}

	return nil
}

// Sum 计算和值
func (d Draw) Sum() int {
	sum := 0
	for _, n := range d.Numbers {
		sum += n
	}
	return sum
}

// Mean 计算号码均值
func (d Draw) Mean() float64 {
	return float64(d.Sum()) / DrawSize
}

// Median 计算号码中位数
func (d Draw) Median() float64 {
	sorted := d.Sorted()
	return float64(sorted[2]+sorted[3]) / 2
}

// EvenCount 计算偶数号码个数
func (d Draw) EvenCount() int {
	count := 0
	for _, n := range d.Numbers {
		if n%2 == 0 {
			count++
		}
	}
	return count
}

// OddCount 计算奇数号码个数
func (d Draw) OddCount() int {
	return DrawSize - d.EvenCount()
}

// Amplitude 计算振幅（最大号码与最小号码之差）
func (d Draw) Amplitude() int {
	sorted := d.Sorted()
	return sorted[DrawSize-1] - sorted[0]
}

// Sorted 返回升序排列的号码副本
func (d Draw) Sorted() []int {
	sorted := make([]int, DrawSize)
	copy(sorted, d.Numbers[:])
	sort.Ints(sorted)
	return sorted
}

// Contains 检查号码是否在本期开奖中
func (d Draw) Contains(number int) bool {
	for _, n := range d.Numbers {
		if n == number {
			return true
		}
	}
	return false
}

// Ticket 一注有效的投注号码：6个互不重复、升序排列、范围1-60
type Ticket [DrawSize]int

// NewTicket 创建并验证一注投注号码（输入顺序不限，内部升序保存）
func NewTicket(numbers []int) (Ticket, error) {
	if err := ValidateNumbers(numbers); err != nil {
		return Ticket{}, fmt.Errorf("invalid ticket: %v", err)
	}

	sorted := make([]int, DrawSize)
	copy(sorted, numbers)
	sort.Ints(sorted)

	var ticket Ticket
	copy(ticket[:], sorted)
	return ticket, nil
}

// Numbers 返回号码切片副本
func (t Ticket) Numbers() []int {
	numbers := make([]int, DrawSize)
	copy(numbers, t[:])
	return numbers
}

// Sum 计算和值
func (t Ticket) Sum() int {
	sum := 0
	for _, n := range t {
		sum += n
	}
	return sum
}

// EvenCount 计算偶数号码个数
func (t Ticket) EvenCount() int {
	count := 0
	for _, n := range t {
		if n%2 == 0 {
			count++
		}
	}
	return count
}

// Amplitude 计算振幅
func (t Ticket) Amplitude() int {
	return t[DrawSize-1] - t[0]
}

// Contains 检查号码是否在这注号码中
func (t Ticket) Contains(number int) bool {
	for _, n := range t {
		if n == number {
			return true
		}
	}
	return false
}

// String 格式化为两位数字、空格分隔的字符串
func (t Ticket) String() string {
	parts := make([]string, DrawSize)
	for i, n := range t {
		parts[i] = fmt.Sprintf("%02d", n)
	}
	return strings.Join(parts, " ")
}
