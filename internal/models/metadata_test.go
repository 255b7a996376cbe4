package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesignMetadata_Validate(t *testing.T) {
	t.Parallel()

	valid := []struct {
		name     string
		category string
		meta     DesignMetadata
	}{
		{
			name:     "floorplan with details",
			category: CategoryFloorplan,
			meta:     DesignMetadata{Floorplan: &FloorplanDetails{Rooms: 3, AreaSqm: 85.5}},
		},
		{
			name:     "inspiration with style",
			category: CategoryInspiration,
			meta:     DesignMetadata{Inspiration: &InspirationDetails{Style: "scandinavian"}},
		},
	}
	for _, tc := range valid {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.NoError(t, tc.meta.Validate(tc.category))
		})
	}

	invalid := []struct {
		name     string
		category string
		meta     DesignMetadata
	}{
		{name: "unknown category", category: "garden", meta: DesignMetadata{}},
		{name: "floorplan without details", category: CategoryFloorplan, meta: DesignMetadata{}},
		{
			name:     "floorplan with both variants",
			category: CategoryFloorplan,
			meta: DesignMetadata{
				Floorplan:   &FloorplanDetails{Rooms: 3, AreaSqm: 85},
				Inspiration: &InspirationDetails{Style: "modern"},
			},
		},
		{
			name:     "floorplan with zero rooms",
			category: CategoryFloorplan,
			meta:     DesignMetadata{Floorplan: &FloorplanDetails{Rooms: 0, AreaSqm: 85}},
		},
		{
			name:     "floorplan with negative area",
			category: CategoryFloorplan,
			meta:     DesignMetadata{Floorplan: &FloorplanDetails{Rooms: 3, AreaSqm: -1}},
		},
		{name: "inspiration without details", category: CategoryInspiration, meta: DesignMetadata{}},
		{
			name:     "inspiration with floorplan variant",
			category: CategoryInspiration,
			meta: DesignMetadata{
				Floorplan:   &FloorplanDetails{Rooms: 3, AreaSqm: 85},
				Inspiration: &InspirationDetails{Style: "modern"},
			},
		},
		{
			name:     "inspiration with empty style",
			category: CategoryInspiration,
			meta:     DesignMetadata{Inspiration: &InspirationDetails{}},
		},
	}
	for _, tc := range invalid {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.meta.Validate(tc.category)
			require.Error(t, err)
			var appErr *AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, CodeValidation, appErr.Code)
		})
	}
}

func TestIsValidCategory(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidCategory(CategoryFloorplan))
	assert.True(t, IsValidCategory(CategoryInspiration))
	assert.False(t, IsValidCategory(""))
	assert.False(t, IsValidCategory("Floorplan"))
}
