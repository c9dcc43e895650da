package service

import "math"

// CalcPayout 計算獲勝獎金：報名費乘上賠率，
// 四捨五入到最小貨幣單位（金幣）。
// 只在建立房間時計算一次並凍結，之後即使賠率設定變動也不重算。
func CalcPayout(entryFee int64, odds float64) int64 {
	return int64(math.Round(float64(entryFee) * odds))
}
