package entity_test

import (
	"testing"
	"time"

	"stock_search/internal/feature/datasets/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatedFileName(t *testing.T) {
	t.Parallel()

	// 2025-03-06 23:30 UTC は日本時間で3月7日
	now := time.Date(2025, 3, 6, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "20250307_combined.csv", entity.DatedFileName(now))

	d, ok := entity.ParseDatedFileName("20250307_combined.csv")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 7, 0, 0, 0, 0, entity.JST), d)

	for _, bad := range []string{"2025037_combined.csv", "20251340_combined.csv", "20250307.csv", "x20250307_combined.csv"} {
		_, ok := entity.ParseDatedFileName(bad)
		assert.False(t, ok, bad)
	}
}

func TestRecentDatedFileNames(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 2, 12, 0, 0, 0, entity.JST)
	names := entity.RecentDatedFileNames(now, 30)
	require.Len(t, names, 30)
	assert.Equal(t, "20250302_combined.csv", names[0])
	assert.Equal(t, "20250301_combined.csv", names[1])
	assert.Equal(t, "20250228_combined.csv", names[2])
	assert.Equal(t, "20250201_combined.csv", names[29])
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "20250307 combined", entity.DisplayName("20250307_combined.csv"))
	assert.Equal(t, "us stocks", entity.DisplayName("us_stocks.csv"))
}

func TestValidFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{name: "20250307_combined.csv", want: true},
		{name: "Data.CSV", want: true},
		{name: "", want: false},
		{name: "../secret.csv", want: false},
		{name: "sub/a.csv", want: false},
		{name: `sub\a.csv`, want: false},
		{name: "a.txt", want: false},
		{name: "..", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, entity.ValidFileName(tt.name))
		})
	}
}

func TestDataset_IsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, (&entity.Dataset{}).IsEmpty())
}
