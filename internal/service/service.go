// Package service 后台业务用例：校验入参，多表写入在同一事务内完成
package service

import (
	"context"
	"strings"
)

// Invalidator 写操作成功后清掉派生数据（统计缓存）
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type nopInvalidator struct{}

func (nopInvalidator) Invalidate(context.Context) {}

func orNop(inv Invalidator) Invalidator {
	if inv == nil {
		return nopInvalidator{}
	}
	return inv
}

func setStr(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
