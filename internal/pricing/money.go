package pricing

import "math"

// 金额内部统一用 int64 派萨（1/100 卢比）表示，
// 只在 HTTP 边界与十进制卢比互转，累加过程不丢精度。

// ToPaise 十进制卢比 → 派萨，四舍五入到分位。
func ToPaise(rupees float64) int64 {
	return int64(math.Round(rupees * 100))
}

// ToRupees 派萨 → 十进制卢比，仅用于展示 / 序列化。
func ToRupees(paise int64) float64 {
	return float64(paise) / 100
}
