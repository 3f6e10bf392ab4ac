package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetPaginationParams(t *testing.T) {
	p := GetPaginationParams(0, -5)
	require.Equal(t, 1, p.Page)
	require.Equal(t, 0, p.Limit)

	p = GetPaginationParams(3, 25)
	require.Equal(t, 3, p.Page)
	require.Equal(t, 25, p.Limit)

	p = GetPaginationParams(1, 500)
	require.Equal(t, MaxLimit, p.Limit)
}

func TestCalculateOffset(t *testing.T) {
	require.Equal(t, 0, PaginationParams{Page: 1, Limit: 20}.CalculateOffset())
	require.Equal(t, 40, PaginationParams{Page: 3, Limit: 20}.CalculateOffset())
	require.Equal(t, 0, PaginationParams{Page: 0, Limit: 20}.CalculateOffset())
}

func TestCalculateMeta(t *testing.T) {
	m := CalculateMeta(45, 2, 20)
	require.Equal(t, 2, m.Page)
	require.Equal(t, 20, m.Limit)
	require.Equal(t, int64(45), m.TotalCount)
	require.Equal(t, 3, m.TotalPages)

	m = CalculateMeta(45, 1, 0)
	require.Equal(t, 1, m.Page)
	require.Equal(t, 45, m.Limit)
	require.Equal(t, 1, m.TotalPages)
}
