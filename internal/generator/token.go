package generator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseTokenID parses a decimal token id from a path segment or query
// value. Anything that is not a positive base-10 integer is ErrInvalidInput.
func ParseTokenID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInput, raw)
	}
	if id < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidInput, id)
	}
	return id, nil
}

// TokenIDFromFloat 处理 JSON 数字参数（工具调用中 token_id 以 float64 到达）
func TokenIDFromFloat(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %v is not an integer", ErrInvalidInput, f)
	}
	if f < 1 || f >= float64(math.MaxInt64) {
		return 0, fmt.Errorf("%w: %v out of range", ErrInvalidInput, f)
	}
	return int64(f), nil
}
