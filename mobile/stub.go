//go:build !mobile

// Package mobile 是 ebitenmobile 的绑定入口，只在 -tags mobile 时有实际内容
package mobile

// Dummy 让包在桌面构建时也能被引用
func Dummy() {}
