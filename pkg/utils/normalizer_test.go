package utils_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tubeguard/tubeguard/pkg/utils"
)

func TestTextNormalizer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		want     string
		contains string
		hasMatch bool
	}{
		{
			name:     "empty string",
			input:    "",
			want:     "",
			contains: "test",
			hasMatch: false,
		},
		{
			name:     "basic string",
			input:    "Hello World",
			want:     "hello world",
			contains: "hello",
			hasMatch: true,
		},
		{
			name:     "string with diacritics",
			input:    "héllo wörld",
			want:     "hello world",
			contains: "world",
			hasMatch: true,
		},
		{
			name:     "hangul survives",
			input:    "정말  최고 예요",
			want:     "정말 최고 예요",
			contains: "최고",
			hasMatch: true,
		},
		{
			name:     "full width forms",
			input:    "ＡＢＣ 좋아",
			want:     "abc 좋아",
			contains: "abc",
			hasMatch: true,
		},
		{
			name:     "no match in string",
			input:    "hello world",
			want:     "hello world",
			contains: "goodbye",
			hasMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			normalizer := utils.NewTextNormalizer()

			assert.Equal(t, tt.want, normalizer.Normalize(tt.input))
			assert.Equal(t, tt.hasMatch, normalizer.Contains(tt.input, tt.contains))
		})
	}
}

func TestTextNormalizerContainsAny(t *testing.T) {
	t.Parallel()

	normalizer := utils.NewTextNormalizer()
	keywords := normalizer.NormalizeAll([]string{"최악", "", "  ", "ＷＯＲＳＴ"})

	assert.Equal(t, []string{"최악", "worst"}, keywords)
	assert.True(t, normalizer.ContainsAny(normalizer.Normalize("오늘 방송 최악"), keywords))
	assert.True(t, normalizer.ContainsAny(normalizer.Normalize("the Worst"), keywords))
	assert.False(t, normalizer.ContainsAny(normalizer.Normalize("좋아요"), keywords))
	assert.False(t, normalizer.ContainsAny("", keywords))
}

func TestTextNormalizerConcurrent(t *testing.T) {
	t.Parallel()

	normalizer := utils.NewTextNormalizer()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				assert.Equal(t, "hello 세상", normalizer.Normalize("HÉLLO  세상"))
			}
		}()
	}
	wg.Wait()
}

func BenchmarkTextNormalizer(b *testing.B) {
	normalizer := utils.NewTextNormalizer()
	input := "영상 정말 재밌네요 ㅋㅋㅋ Héllo Wörld"

	b.ResetTimer()
	for b.Loop() {
		normalizer.Normalize(input)
	}
}
