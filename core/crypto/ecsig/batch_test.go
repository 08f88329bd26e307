package ecsig

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertBatch(t *testing.T) {
	items := []BatchItem{
		{Input: "3006020101020101"},
		{Input: "01020304", From: FormatP1363Hex},
		{Input: "30060201010201", From: FormatASN1Hex},
		{Input: `{"r":"01","s":"01"}`},
		{Input: "###"},
	}

	results, err := NewConverter().ConvertBatch(context.Background(), items, FormatASN1Hex, WithConcurrency(2))
	require.NoError(t, err)
	require.Len(t, results, len(items))

	for i, res := range results {
		assert.Equal(t, i, res.Index)
	}

	assert.Equal(t, "3006020101020101", results[0].Output)
	assert.Equal(t, FormatASN1Hex, results[0].From)
	assert.NoError(t, results[0].Err)

	assert.Equal(t, "30080202010202020304", results[1].Output)
	assert.Equal(t, FormatP1363Hex, results[1].From)

	assert.ErrorIs(t, results[2].Err, ErrDERFormat)
	assert.Empty(t, results[2].Output)

	assert.Equal(t, "3006020101020101", results[3].Output)
	assert.Equal(t, FormatJSON, results[3].From)

	assert.ErrorIs(t, results[4].Err, ErrFormatDetection)
	assert.Equal(t, FormatAuto, results[4].From)
}

func TestConvertBatchKeepsOrder(t *testing.T) {
	items := make([]BatchItem, 200)
	for i := range items {
		items[i] = BatchItem{Input: fmt.Sprintf(`{"r":"%x","s":"01"}`, i+1), From: FormatJSON}
	}

	results, err := NewConverter().ConvertBatch(context.Background(), items, FormatJSON, WithConcurrency(8))
	require.NoError(t, err)

	for i, res := range results {
		require.NoError(t, res.Err)
		sig, err := DecodeJSON(res.Output)
		require.NoError(t, err)
		assert.EqualValues(t, i+1, sig.R.Int64())
	}
}

func TestConvertBatchEdgeCases(t *testing.T) {
	c := NewConverter()

	results, err := c.ConvertBatch(context.Background(), nil, FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = c.ConvertBatch(context.Background(), []BatchItem{{Input: "01020304"}}, FormatAuto)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestConvertBatchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []BatchItem{{Input: "3006020101020101"}, {Input: "01020304"}}
	results, err := NewConverter().ConvertBatch(ctx, items, FormatJSON)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 2)

	for _, res := range results {
		assert.ErrorIs(t, res.Err, context.Canceled)
	}
}
