package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coaching-backend/internal/models"
)

func TestGroupVideosCatalogOrder(t *testing.T) {
	videos := []models.Video{
		{ID: "a", ServiceID: "personal"},
		{ID: "b", ServiceID: "career"},
		{ID: "c", ServiceID: "leadership"},
		{ID: "d", ServiceID: "personal"},
	}

	sections := GroupVideos(videos)
	require.Len(t, sections, 2)
	assert.Equal(t, "career", sections[0].ServiceID)
	assert.Equal(t, "Career", sections[0].Title)
	assert.Equal(t, "personal", sections[1].ServiceID)
	assert.Equal(t, "Personal Development", sections[1].Title)
	require.Len(t, sections[1].Videos, 2)
	assert.Equal(t, "a", sections[1].Videos[0].ID)
	assert.Equal(t, "d", sections[1].Videos[1].ID)

	assert.Empty(t, GroupVideos(nil))
}

func TestVideoCatalogServicesKnown(t *testing.T) {
	total := 0
	for _, s := range GroupVideos(VideoCatalog()) {
		total += len(s.Videos)
	}
	assert.Equal(t, len(VideoCatalog()), total)
}
