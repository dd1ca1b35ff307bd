package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicLinkRoundTrip(t *testing.T) {
	link := PublicLink("pantry", "ap-southeast-1", "food-items/food-item-1.jpg")

	assert.Equal(t, "https://pantry.s3.ap-southeast-1.amazonaws.com/food-items/food-item-1.jpg", link)
	assert.Equal(t, "food-items/food-item-1.jpg", ObjectKeyFromLink("pantry", "ap-southeast-1", link))
}

func TestObjectKeyFromLink_ForeignLink(t *testing.T) {
	assert.Equal(t, "", ObjectKeyFromLink("pantry", "ap-southeast-1", "https://example.com/a.jpg"))
	assert.Equal(t, "", ObjectKeyFromLink("pantry", "ap-southeast-1", ""))
}

func TestNewAwsS3_RequiresBucket(t *testing.T) {
	s, err := NewAwsS3(context.Background(), S3Config{Region: "ap-southeast-1"})

	require.ErrorIs(t, err, ErrNotConfigured)
	assert.Nil(t, s)
}
