package stylist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDeriveUsesModelReply(t *testing.T) {
	vision := &stubVision{extractReply: " black leather jacket , white sneakers ,, "}
	deriver := NewTermDeriver(vision, zap.NewNop())

	terms := deriver.Derive(context.Background(), "ignored")

	assert.Equal(t, []string{"black leather jacket", "white sneakers"}, terms)
}

func TestDeriveFallsBackOnModelError(t *testing.T) {
	vision := &stubVision{extractErr: errors.New("quota exceeded")}
	deriver := NewTermDeriver(vision, zap.NewNop())

	terms := deriver.Derive(context.Background(), "we suggest a black leather jacket")

	assert.Equal(t, []string{"black leather jacket"}, terms)
}

func TestDeriveFallsBackOnEmptyModelReply(t *testing.T) {
	vision := &stubVision{extractReply: "  ,  , "}
	deriver := NewTermDeriver(vision, zap.NewNop())

	terms := deriver.Derive(context.Background(), "try some white sneakers")

	assert.Equal(t, []string{"white sneakers"}, terms)
}

func TestDeriveNoVisionUsesRuleTable(t *testing.T) {
	deriver := NewTermDeriver(nil, zap.NewNop())

	terms := deriver.Derive(context.Background(), "pair blue jeans with brown boots")

	assert.Equal(t, []string{"blue jeans", "brown boots"}, terms)
}

func TestDeriveNothingFound(t *testing.T) {
	deriver := NewTermDeriver(nil, zap.NewNop())

	assert.Empty(t, deriver.Derive(context.Background(), "a walk in the park"))
}
