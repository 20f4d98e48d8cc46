package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	id "covrecord/pkg/domain"
)

func TestIterationID(t *testing.T) {
	ctx := context.Background()
	assert.True(t, IterationID(ctx).IsNil())

	iterationID := id.NewIterationID()
	assert.Equal(t, iterationID, IterationID(WithIterationID(ctx, iterationID)))
}

func TestOperator(t *testing.T) {
	assert.Empty(t, Operator(context.Background()))
	assert.Equal(t, "desk-2", Operator(WithOperator(context.Background(), "desk-2")))
}

func TestNow(t *testing.T) {
	fixed := time.Date(2021, time.January, 4, 8, 30, 0, 0, time.UTC)
	assert.Equal(t, fixed, Now(WithTime(context.Background(), fixed)))
	assert.WithinDuration(t, time.Now(), Now(context.Background()), time.Second)
}
