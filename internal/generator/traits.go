package generator

import (
	"fmt"
	"strings"
)

// Expression 表情枚举。未识别的值一律按 Happy 渲染和上报。
type Expression int

const (
	ExpressionHappy Expression = iota
	ExpressionWink
	ExpressionExcited
	ExpressionCool
	ExpressionCute
)

func (e Expression) String() string {
	switch e {
	case ExpressionWink:
		return "Wink"
	case ExpressionExcited:
		return "Excited"
	case ExpressionCool:
		return "Cool"
	case ExpressionCute:
		return "Cute"
	default:
		return "Happy"
	}
}

func (e Expression) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(e.String())), nil
}

// 候选表顺序固定，修改顺序会改变所有已铸造 token 的外观
var (
	backgroundPalette = []string{"#FFE4B5", "#E6E6FA", "#F0F8FF", "#FFF8DC", "#F5F5DC"}
	bodyPalette       = []string{"#FFD700", "#FFC83D", "#FFE066", "#F4C430"}
	cheekPalette      = []string{"#FF69B4", "#FF4D4D", "#FF8C69", "#E75480"}
	capPalette        = []string{"#0052FF", "#00D4FF", "#FF6B35", "#28A745", "#FFC107"}
	tailStripePalette = []string{"#8B4513", "#5C3317", "#A0522D", "#000000"}

	expressionTable = []Expression{
		ExpressionHappy,
		ExpressionWink,
		ExpressionExcited,
		ExpressionCool,
		ExpressionCute,
	}
)

// 布尔特征的除数，近似 1/n 的出现频率（确定性分桶，不是统计意义上的随机）
const (
	glassesDivisor  = 3
	necklaceDivisor = 4
	bowtieDivisor   = 5
	bandanaDivisor  = 7

	tailPatternSpan = 16
)

// TraitRecord 单个 token 的外观描述
type TraitRecord struct {
	BackgroundColor string     `json:"background_color"`
	BodyColor       string     `json:"body_color"`
	CheekColor      string     `json:"cheek_color"`
	CapColor        string     `json:"cap_color"`
	Expression      Expression `json:"expression"`
	TailPattern     int        `json:"tail_pattern"`
	HasGlasses      bool       `json:"has_glasses"`
	HasNecklace     bool       `json:"has_necklace"`
	HasBowtie       bool       `json:"has_bowtie"`
	HasBandana      bool       `json:"has_bandana"`
}

// SelectTraits maps seeds to a trait record by table lookup and modulo
// bucketing. It never fails: every seed reduces to a valid index.
func SelectTraits(seeds SeedSet) TraitRecord {
	return TraitRecord{
		BackgroundColor: pick(backgroundPalette, seeds.Primary),
		HasGlasses:      seeds.Primary%glassesDivisor == 0,

		BodyColor:   pick(bodyPalette, seeds.Secondary),
		CapColor:    pick(capPalette, seeds.Secondary),
		HasNecklace: seeds.Secondary%necklaceDivisor == 0,
		HasBandana:  seeds.Secondary%bandanaDivisor == 0,

		CheekColor:  pick(cheekPalette, seeds.Tertiary),
		Expression:  pick(expressionTable, seeds.Tertiary),
		HasBowtie:   seeds.Tertiary%bowtieDivisor == 0,
		TailPattern: int(seeds.Tertiary % tailPatternSpan),
	}
}

func pick[T any](table []T, seed uint64) T {
	return table[seed%uint64(len(table))]
}

// tailStripeColor 尾巴条纹颜色，TailPattern 对调色板长度取模
func tailStripeColor(pattern int) string {
	n := len(tailStripePalette)
	idx := pattern % n
	if idx < 0 {
		idx += n
	}
	return tailStripePalette[idx]
}

// validatePalettes 构造时校验一次：候选表非空且颜色可解析
func validatePalettes() error {
	colorTables := map[string][]string{
		"background":  backgroundPalette,
		"body":        bodyPalette,
		"cheek":       cheekPalette,
		"cap":         capPalette,
		"tail_stripe": tailStripePalette,
	}
	for name, table := range colorTables {
		if len(table) == 0 {
			return fmt.Errorf("%w: %s palette is empty", ErrInvalidPalette, name)
		}
		for _, c := range table {
			if _, err := parseHex(c); err != nil {
				return fmt.Errorf("%w: %s palette: %v", ErrInvalidPalette, name, err)
			}
		}
	}
	if len(expressionTable) == 0 {
		return fmt.Errorf("%w: expression table is empty", ErrInvalidPalette)
	}
	return nil
}
