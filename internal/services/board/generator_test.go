package board

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/codewords/internal/dependencies/mocks"
	"github.com/mcoot/codewords/internal/dependencies/random"
	"github.com/mcoot/codewords/internal/model"
)

type staticWords []string

func (w staticWords) Words() []string {
	out := make([]string, len(w))
	copy(out, w)
	return out
}

func countColors(cards []model.Card) map[model.Color]int {
	counts := make(map[model.Color]int)
	for _, c := range cards {
		counts[c.Team]++
	}
	return counts
}

func TestGenerateDefaultConfig(t *testing.T) {
	gen := NewGenerator(staticWords(model.DefaultWords), random.New())

	cards := gen.Generate(model.DefaultBoardConfig())

	require.Len(t, cards, model.BoardSize)
	counts := countColors(cards)
	assert.Equal(t, 9, counts[model.ColorRed])
	assert.Equal(t, 8, counts[model.ColorBlue])
	assert.Equal(t, 7, counts[model.ColorNeutral])
	assert.Equal(t, 1, counts[model.ColorAssassin])
}

func TestGenerateCardsAreUniqueAndPositioned(t *testing.T) {
	gen := NewGenerator(staticWords(model.DefaultWords), random.New())

	cards := gen.Generate(model.DefaultBoardConfig())

	seen := make(map[string]bool)
	for i, c := range cards {
		assert.Equal(t, i, c.Position)
		assert.Equal(t, fmt.Sprintf("card-%d", i), c.ID)
		assert.False(t, c.Revealed)
		assert.Empty(t, c.RevealedBy)
		assert.False(t, seen[c.Word], "duplicate word %s", c.Word)
		seen[c.Word] = true
	}
}

func TestGenerateIsDeterministicForSameRandom(t *testing.T) {
	a := NewGenerator(staticWords(model.DefaultWords), mocks.NewMockRandom())
	b := NewGenerator(staticWords(model.DefaultWords), mocks.NewMockRandom())

	assert.Equal(t, a.Generate(model.DefaultBoardConfig()), b.Generate(model.DefaultBoardConfig()))
}

func TestGenerateFallsBackWhenPoolTooSmall(t *testing.T) {
	gen := NewGenerator(staticWords{"ONE", "TWO"}, random.New())

	cards := gen.Generate(model.DefaultBoardConfig())

	require.Len(t, cards, model.BoardSize)
}

func TestLabels(t *testing.T) {
	tests := []struct {
		name string
		cfg  model.BoardConfig
		want map[model.Color]int
	}{
		{
			name: "default",
			cfg:  model.DefaultBoardConfig(),
			want: map[model.Color]int{model.ColorRed: 9, model.ColorBlue: 8, model.ColorNeutral: 7, model.ColorAssassin: 1},
		},
		{
			name: "blue starts",
			cfg:  model.BoardConfig{RedCount: 8, BlueCount: 9, NeutralCount: 7, AssassinCount: 1},
			want: map[model.Color]int{model.ColorRed: 8, model.ColorBlue: 9, model.ColorNeutral: 7, model.ColorAssassin: 1},
		},
		{
			name: "short deal padded with neutral",
			cfg:  model.BoardConfig{RedCount: 5, BlueCount: 4, AssassinCount: 1},
			want: map[model.Color]int{model.ColorRed: 5, model.ColorBlue: 4, model.ColorNeutral: 15, model.ColorAssassin: 1},
		},
		{
			name: "empty config is all neutral",
			cfg:  model.BoardConfig{},
			want: map[model.Color]int{model.ColorNeutral: 25},
		},
		{
			name: "negative counts treated as zero",
			cfg:  model.BoardConfig{RedCount: -3, BlueCount: 8, NeutralCount: 7, AssassinCount: 1},
			want: map[model.Color]int{model.ColorBlue: 8, model.ColorNeutral: 16, model.ColorAssassin: 1},
		},
		{
			name: "oversized deal trims neutral first",
			cfg:  model.BoardConfig{RedCount: 9, BlueCount: 8, NeutralCount: 10, AssassinCount: 1},
			want: map[model.Color]int{model.ColorRed: 9, model.ColorBlue: 8, model.ColorNeutral: 7, model.ColorAssassin: 1},
		},
		{
			name: "oversized deal trims blue after neutral",
			cfg:  model.BoardConfig{RedCount: 12, BlueCount: 14, NeutralCount: 2, AssassinCount: 1},
			want: map[model.Color]int{model.ColorRed: 12, model.ColorBlue: 12, model.ColorAssassin: 1},
		},
		{
			name: "assassin trimmed last",
			cfg:  model.BoardConfig{RedCount: 30, AssassinCount: 2},
			want: map[model.Color]int{model.ColorRed: 23, model.ColorAssassin: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels := Labels(tt.cfg)
			require.Len(t, labels, model.BoardSize)

			counts := make(map[model.Color]int)
			for _, l := range labels {
				counts[l]++
			}
			assert.Equal(t, tt.want, counts)
		})
	}
}
