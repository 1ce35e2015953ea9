package pricing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// quantityPattern：前导数值 token（整数、小数、简单分数 a/b），余下为单位文本。
var quantityPattern = regexp.MustCompile(`^([0-9][0-9.,/]*)\s*(.*)$`)

// Multiplier 计算人数缩放系数：儿童按半份成人计，固定设计常量。
func Multiplier(adults, kids int) float64 {
	return float64(adults) + float64(kids)*0.5
}

// ParseAmount 解析数量字符串的前导数值。
// 支持 "1.5"、"1,5"（逗号小数点容错）与 "1/2" 分数；
// 无法解析时返回 ok=false，由调用方决定是错误还是放行。
func ParseAmount(quantity string) (float64, bool) {
	m := quantityPattern.FindStringSubmatch(strings.TrimSpace(quantity))
	if m == nil {
		return 0, false
	}
	return parseToken(m[1])
}

func parseToken(token string) (float64, bool) {
	if strings.Contains(token, "/") {
		parts := strings.SplitN(token, "/", 2)
		num, okN := parseDecimal(parts[0])
		den, okD := parseDecimal(parts[1])
		if !okN || !okD || den == 0 {
			return 0, false
		}
		return num / den, true
	}
	return parseDecimal(token)
}

func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Scale 按系数缩放一条数量字符串。
// 找不到可解析的数值（如 "a pinch"）时原样返回——刻意的优雅降级，不是错误。
// 缩放后数值保留两位小数，与单位重组为 "<amount> <unit>"。
func Scale(quantity string, multiplier float64) string {
	m := quantityPattern.FindStringSubmatch(strings.TrimSpace(quantity))
	if m == nil {
		return quantity
	}
	amount, ok := parseToken(m[1])
	if !ok {
		return quantity
	}
	scaled := fmt.Sprintf("%.2f", amount*multiplier)
	unit := strings.TrimSpace(m[2])
	if unit == "" {
		return scaled
	}
	return scaled + " " + unit
}
