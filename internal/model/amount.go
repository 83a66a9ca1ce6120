package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount 金额，以整数货币单位存储
type Amount int64

// ParseAmount 解析金额字符串，允许千分位、货币符号和空格，例如 "$1,250,000"
// 小数部分四舍五入到整数
func ParseAmount(s string) (Amount, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', '$', ' ', '_':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	if cleaned == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return fromDecimal(d, s)
}

// UnmarshalJSON 接受 JSON 数字或格式化后的字符串
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParseAmount(s)
		if err != nil {
			return err
		}
		*a = v
		return nil
	}

	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("invalid amount %s", data)
	}
	v, err := fromDecimal(d, string(data))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

var (
	maxAmount = decimal.NewFromInt(math.MaxInt64)
	minAmount = decimal.NewFromInt(math.MinInt64)
)

// fromDecimal 四舍五入到整数，超出 int64 范围时报错
func fromDecimal(d decimal.Decimal, raw string) (Amount, error) {
	d = d.Round(0)
	if d.GreaterThan(maxAmount) || d.LessThan(minAmount) {
		return 0, fmt.Errorf("amount %s out of range", raw)
	}
	return Amount(d.IntPart()), nil
}

// Ptr 返回指针，便于构造 ProjectInput / ProjectPatch
func (a Amount) Ptr() *Amount {
	return &a
}

// Percent 按比例计算金额，四舍五入到整数
func (a Amount) Percent(pct decimal.Decimal) Amount {
	return Amount(decimal.NewFromInt(int64(a)).Mul(pct).Round(0).IntPart())
}
