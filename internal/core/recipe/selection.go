package recipe

import (
	"fmt"
	"sort"

	"nutriai/internal/pkg/common"
)

// Mode 批次選取模式
type Mode string

const (
	// ModeNew 已抽取但尚未計算
	ModeNew Mode = "new"
	// ModeAll 所有已抽取的食譜，成功時覆寫既有結果
	ModeAll Mode = "all"
	// ModeRange 單一 ID 或閉區間
	ModeRange Mode = "range"
)

// Selection 批次要處理的食譜
type Selection struct {
	Mode  Mode
	Limit int
	IDs   []int64
}

// Validate 檢查選取條件
func (s Selection) Validate() error {
	switch s.Mode {
	case ModeNew, ModeAll:
	case ModeRange:
		if len(s.IDs) == 0 {
			return common.NewValidationError("range mode requires one id or an id range")
		}
	default:
		return common.NewValidationError(fmt.Sprintf("unknown mode %q", s.Mode))
	}
	if s.Limit < 0 {
		return common.NewValidationError("limit must not be negative")
	}
	return nil
}

// Bounds range 模式的上下界；一個 ID 時上下界相同，多個時取排序後最小的兩個
func (s Selection) Bounds() (int64, int64) {
	if len(s.IDs) == 0 {
		return 0, 0
	}
	ids := append([]int64(nil), s.IDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if len(ids) == 1 {
		return ids[0], ids[0]
	}
	return ids[0], ids[1]
}
