package components

// HealthComponent 存储建筑的生命值信息
// MaxHealth 在创建时由属性成长表按等级确定，之后只有显式改变等级才会变化
type HealthComponent struct {
	CurrentHealth float64 // 当前生命值
	MaxHealth     float64 // 最大生命值
}

// IsDestroyed 生命值是否已耗尽
func (h *HealthComponent) IsDestroyed() bool {
	return h.CurrentHealth <= 0
}
