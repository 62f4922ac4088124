package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestContainsFold 测试子串匹配只折叠 ASCII 字母
func TestContainsFold(t *testing.T) {
	tests := []struct {
		name   string
		s, sub string
		want   bool
	}{
		{name: "ASCII 大小写", s: "Rock Festival", sub: "FEST", want: true},
		{name: "空子串", s: "Rock", sub: "", want: true},
		{name: "非 ASCII 原样比较", s: "ÉTÉ Festival", sub: "ÉTÉ", want: true},
		{name: "非 ASCII 不折叠", s: "ÉTÉ Festival", sub: "été", want: false},
		{name: "混合", s: "ÉTÉ Festival", sub: "Ét", want: false},
		{name: "不包含", s: "Jazz", sub: "rock", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsFold(tt.s, tt.sub))
		})
	}
}

// TestEqualFold 测试完全匹配与 ContainsFold 使用相同折叠规则
func TestEqualFold(t *testing.T) {
	assert.True(t, EqualFold("Alice@Example.com", "alice@EXAMPLE.COM"))
	assert.True(t, EqualFold("José", "JOSé"))
	assert.False(t, EqualFold("José", "JOSÉ"))
	assert.False(t, EqualFold("Ali", "Alice"))
}
