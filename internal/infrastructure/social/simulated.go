// Package social provides the style-hint source. The real product would
// read a public profile; this adapter simulates one deterministically so the
// same username always yields the same hints.
package social

import (
	"context"
	"hash/fnv"
	"strings"

	"github.com/stylelens/v1/internal/domain/style"
	"go.uber.org/zap"
)

var (
	interestPool = []string{"casual", "streetwear", "vintage", "minimalist"}
	colorPool    = []string{"black", "white", "earth tones", "pastels"}
	remarkPool   = []string{
		"loves oversized fits",
		"often wears monochrome outfits",
		"prefers sustainable brands",
		"posts a lot of sneaker close-ups",
		"layers pieces even in summer",
		"sticks to a capsule wardrobe",
	}
)

// SimulatedSource derives stable pseudo-profiles from the username alone.
type SimulatedSource struct {
	logger *zap.Logger
}

// NewSimulatedSource creates a simulated style source.
func NewSimulatedSource(logger *zap.Logger) *SimulatedSource {
	return &SimulatedSource{logger: logger.Named("simulated-social")}
}

// StyleHints returns the simulated hints for a username. An empty username
// yields empty hints.
func (s *SimulatedSource) StyleHints(ctx context.Context, username string) (*style.StyleHints, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return &style.StyleHints{}, nil
	}

	seed := hashUsername(username)
	hints := &style.StyleHints{
		Interests:        pick(interestPool, seed, 2),
		ColorPreferences: pick(colorPool, seed>>8, 2),
		RecentRemarks:    pick(remarkPool, seed>>16, 3),
	}

	s.logger.Debug("Simulated style hints generated",
		zap.String("username", username),
		zap.Strings("interests", hints.Interests),
	)

	return hints, nil
}

func hashUsername(username string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(username))
	return h.Sum64()
}

// pick chooses count distinct entries from pool, rotating from a
// seed-derived offset so the selection is stable per username.
func pick(pool []string, seed uint64, count int) []string {
	if count > len(pool) {
		count = len(pool)
	}
	offset := int(seed % uint64(len(pool)))
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, pool[(offset+i)%len(pool)])
	}
	return out
}
