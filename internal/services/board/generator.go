package board

import (
	"fmt"

	"github.com/mcoot/codewords/internal/dependencies/random"
	"github.com/mcoot/codewords/internal/model"
)

// WordSource supplies the candidate words for a board
type WordSource interface {
	Words() []string
}

// Generator deals 25-card boards
type Generator struct {
	words  WordSource
	random random.Random
}

// NewGenerator creates a board generator drawing from words
func NewGenerator(words WordSource, random random.Random) *Generator {
	return &Generator{
		words:  words,
		random: random,
	}
}

// Generate deals a fresh board. Counts that do not add up to 25 are padded
// with neutral cards or trimmed (see Labels), so a full board is always returned.
func (g *Generator) Generate(cfg model.BoardConfig) []model.Card {
	words := g.words.Words()
	if len(words) < model.BoardSize {
		words = append([]string(nil), model.DefaultWords...)
	}

	random.Shuffle(g.random, len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})

	labels := Labels(cfg)
	random.Shuffle(g.random, len(labels), func(i, j int) {
		labels[i], labels[j] = labels[j], labels[i]
	})

	cards := make([]model.Card, model.BoardSize)
	for i := range cards {
		cards[i] = model.Card{
			ID:       fmt.Sprintf("card-%d", i),
			Word:     words[i],
			Team:     labels[i],
			Position: i,
		}
	}
	return cards
}

// Labels returns the unshuffled color multiset for cfg, forced to exactly 25
// entries. Negative counts count as zero. A short deal is padded with neutral;
// an oversized one is trimmed from neutral, then blue, then red, then assassin.
func Labels(cfg model.BoardConfig) []model.Color {
	counts := []struct {
		color model.Color
		n     int
	}{
		{model.ColorRed, max(cfg.RedCount, 0)},
		{model.ColorBlue, max(cfg.BlueCount, 0)},
		{model.ColorNeutral, max(cfg.NeutralCount, 0)},
		{model.ColorAssassin, max(cfg.AssassinCount, 0)},
	}

	total := 0
	for _, c := range counts {
		total += c.n
	}

	// Indexes into counts, in trim order
	for _, idx := range []int{2, 1, 0, 3} {
		if total <= model.BoardSize {
			break
		}
		cut := min(counts[idx].n, total-model.BoardSize)
		counts[idx].n -= cut
		total -= cut
	}
	if total < model.BoardSize {
		counts[2].n += model.BoardSize - total
	}

	labels := make([]model.Color, 0, model.BoardSize)
	for _, c := range counts {
		for range c.n {
			labels = append(labels, c.color)
		}
	}
	return labels
}
