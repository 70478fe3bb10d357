package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm_manager/internal/blobstore"
	"crm_manager/internal/models"
)

func newBlogStore(t *testing.T) *BlogStore {
	t.Helper()
	s, err := NewBlogStore(blobstore.NewMemoryStore())
	require.NoError(t, err)
	return s
}

func TestAddPostNewestFirst(t *testing.T) {
	s := newBlogStore(t)

	first, err := s.Add(models.BlogPost{Title: "First post"})
	require.NoError(t, err)
	second, err := s.Add(models.BlogPost{Title: "Second post"})
	require.NoError(t, err)

	posts := s.All()
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
}

func TestAddPostZeroesCounters(t *testing.T) {
	s := newBlogStore(t)

	post, err := s.Add(models.BlogPost{Title: "Post", Views: 50, Likes: 10})
	require.NoError(t, err)

	assert.Equal(t, 0, post.Views)
	assert.Equal(t, 0, post.Likes)
	assert.False(t, post.Date.IsZero())
}

func TestCountersOnlyIncrease(t *testing.T) {
	s := newBlogStore(t)

	post, err := s.Add(models.BlogPost{Title: "Post"})
	require.NoError(t, err)

	require.NoError(t, s.IncrementViews(post.ID))
	require.NoError(t, s.IncrementViews(post.ID))
	require.NoError(t, s.Like(post.ID))

	got, err := s.Get(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Views)
	assert.Equal(t, 1, got.Likes)

	assert.ErrorIs(t, s.IncrementViews("post_missing"), ErrNotFound)
}

func TestUpdatePostPreservesCounters(t *testing.T) {
	s := newBlogStore(t)

	post, err := s.Add(models.BlogPost{Title: "Post"})
	require.NoError(t, err)
	require.NoError(t, s.IncrementViews(post.ID))
	require.NoError(t, s.Like(post.ID))

	updated, err := s.Update(post.ID, models.BlogPost{Title: "Post v2", Views: 0, Likes: 0})
	require.NoError(t, err)

	assert.Equal(t, "Post v2", updated.Title)
	assert.Equal(t, 1, updated.Views)
	assert.Equal(t, 1, updated.Likes)
}

func TestDeletePostIsIdempotent(t *testing.T) {
	s := newBlogStore(t)

	post, err := s.Add(models.BlogPost{Title: "Post"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(post.ID))
	require.NoError(t, s.Delete(post.ID))
	assert.Empty(t, s.All())
}
