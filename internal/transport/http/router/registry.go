package router

import (
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
)

// 模块可实现其中任意几个接口
type (
	// /api/v1，已过 AuthJWT
	APIModule interface{ MountAPI(*gin.RouterGroup) }
	// /api/v1，无需登录
	PublicModule interface{ MountPublic(*gin.RouterGroup) }
	// /admin/v1，admin 角色
	AdminModule interface{ MountAdmin(*gin.RouterGroup) }
)

// 可选：实现该接口可控制挂载顺序（数值越小越先挂）
// 不实现则默认 100
type prioritizer interface{ Priority() int }

// Registry 模块注册表；每个 engine 各持一份，测试里可重复构建
type Registry struct {
	mu        sync.RWMutex
	apiMods   []APIModule
	pubMods   []PublicModule
	adminMods []AdminModule
}

func NewRegistry(mods ...any) *Registry {
	r := &Registry{}
	for _, m := range mods {
		r.Register(m)
	}
	return r
}

// Register 根据类型断言分发到 API/Public/Admin 列表
func (r *Registry) Register(mod any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := mod.(APIModule); ok {
		r.apiMods = append(r.apiMods, m)
	}
	if m, ok := mod.(PublicModule); ok {
		r.pubMods = append(r.pubMods, m)
	}
	if m, ok := mod.(AdminModule); ok {
		r.adminMods = append(r.adminMods, m)
	}
}

func (r *Registry) MountAPI(api *gin.RouterGroup) {
	r.mu.RLock()
	mods := sorted(r.apiMods)
	r.mu.RUnlock()
	for _, m := range mods {
		m.MountAPI(api)
	}
}

func (r *Registry) MountPublic(api *gin.RouterGroup) {
	r.mu.RLock()
	mods := sorted(r.pubMods)
	r.mu.RUnlock()
	for _, m := range mods {
		m.MountPublic(api)
	}
}

func (r *Registry) MountAdmin(admin *gin.RouterGroup) {
	r.mu.RLock()
	mods := sorted(r.adminMods)
	r.mu.RUnlock()
	for _, m := range mods {
		m.MountAdmin(admin)
	}
}

// sorted 拷贝后按 Priority 稳定排序
func sorted[M any](in []M) []M {
	mods := append([]M(nil), in...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	return mods
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
