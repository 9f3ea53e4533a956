package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// PaymentSummary Tests
// ============================================================================

func TestPaymentSummary_Empty(t *testing.T) {
	p, _ := newTestPlanner(t)

	summary := p.PaymentSummary()
	assert.Empty(t, summary.Items)
	assert.Equal(t, 0.0, summary.TotalAmount)
	assert.Len(t, summary.Breakdown, 4)
}

func TestPaymentSummary_FlattensAndLabelsLines(t *testing.T) {
	p, _ := newTestPlanner(t)
	ctx := context.Background()

	require.NoError(t, p.Add(ctx, BucketAccommodations, Item{ID: "h1", Name: "Hotel A", TotalPrice: 250.0}))
	require.NoError(t, p.Add(ctx, BucketTransportation, Item{ID: "v1", Name: "Van", Price: "50"}))
	require.NoError(t, p.Add(ctx, BucketGuides, Item{ID: "g1", Name: "Nimal", Cost: 40.0}))

	summary := p.PaymentSummary()
	require.Len(t, summary.Items, 3)

	assert.Equal(t, "accommodation", summary.Items[0].Type)
	assert.Equal(t, 250.0, summary.Items[0].Price)
	assert.Equal(t, 1, summary.Items[0].Quantity)

	assert.Equal(t, "transport", summary.Items[1].Type)
	assert.Equal(t, 50.0, summary.Items[1].Price)

	assert.Equal(t, "guide", summary.Items[2].Type)
	assert.Equal(t, 40.0, summary.Items[2].Price)

	assert.Equal(t, 340.0, summary.TotalAmount)
}

func TestPaymentSummary_TotalEqualsSumOfSubtotals(t *testing.T) {
	p, _ := newTestPlanner(t)
	ctx := context.Background()

	require.NoError(t, p.Add(ctx, BucketAccommodations, Item{ID: "h1", Price: 100.0}))
	require.NoError(t, p.Add(ctx, BucketAccommodations, Item{ID: "h2", Price: "120.5"}))
	require.NoError(t, p.Add(ctx, BucketGuides, Item{ID: "g1", Cost: 40.0}))
	require.NoError(t, p.Add(ctx, BucketDestinations, Item{ID: "d1"}))

	summary := p.PaymentSummary()

	var subtotalSum float64
	for _, bs := range summary.Breakdown {
		subtotalSum += bs.Subtotal
	}
	assert.Equal(t, summary.TotalAmount, subtotalSum)
	assert.Equal(t, p.TotalAmount(), summary.TotalAmount)
}

func TestPaymentSummary_NonNumericPriceContributesZero(t *testing.T) {
	p, _ := newTestPlanner(t)
	ctx := context.Background()

	require.NoError(t, p.Add(ctx, BucketDestinations, Item{ID: "d1", Name: "Mirissa", Price: "free entry"}))

	summary := p.PaymentSummary()
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 0.0, summary.Items[0].Price)
	assert.Equal(t, 0.0, summary.TotalAmount)
}
