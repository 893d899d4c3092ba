package completion

import (
	"strconv"
	"strings"
	"time"
)

// Long returns an asset accepting any integer, suggesting 0 through 99.
func Long() *Asset[int64] {
	return NewAsset[int64]("long", func(Context) []string {
		return numbers(100, func(i int) string { return strconv.Itoa(i) })
	}).WithCheck(func(ctx Context) bool {
		_, err := strconv.ParseInt(ctx.Input, 10, 64)
		return err == nil
	}).WithTransformer(func(ctx Context) (int64, bool) {
		v, err := strconv.ParseInt(ctx.Input, 10, 64)
		return v, err == nil
	})
}

// Double returns an asset accepting any float, suggesting 0.0 through 99.0.
func Double() *Asset[float64] {
	return NewAsset[float64]("double", func(Context) []string {
		return numbers(100, func(i int) string { return strconv.Itoa(i) + ".0" })
	}).WithCheck(func(ctx Context) bool {
		_, err := strconv.ParseFloat(ctx.Input, 64)
		return err == nil
	}).WithTransformer(func(ctx Context) (float64, bool) {
		v, err := strconv.ParseFloat(ctx.Input, 64)
		return v, err == nil
	})
}

// Boolean returns an asset accepting true/false in any case.
func Boolean() *Asset[bool] {
	return NewAsset[bool]("boolean", func(Context) []string {
		return []string{"true", "false"}
	}).WithCheck(func(ctx Context) bool {
		_, err := strconv.ParseBool(strings.ToLower(ctx.Input))
		return err == nil
	}).WithTransformer(func(ctx Context) (bool, bool) {
		v, err := strconv.ParseBool(strings.ToLower(ctx.Input))
		return v, err == nil
	})
}

// Duration returns an asset accepting Go duration strings.
func Duration() *Asset[time.Duration] {
	return NewAsset[time.Duration]("duration", func(Context) []string {
		return []string{"1s", "5s", "30s", "1m", "5m", "1h"}
	}).WithCheck(func(ctx Context) bool {
		_, err := time.ParseDuration(ctx.Input)
		return err == nil
	}).WithTransformer(func(ctx Context) (time.Duration, bool) {
		v, err := time.ParseDuration(ctx.Input)
		return v, err == nil
	})
}

func numbers(n int, format func(int) string) []string {
	out := make([]string, n)
	for i := range n {
		out[i] = format(i)
	}
	return out
}
