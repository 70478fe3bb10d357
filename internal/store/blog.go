package store

import (
	"sync"
	"time"

	"crm_manager/internal/blobstore"
	"crm_manager/internal/models"
)

const blogBlob = "blog"

type BlogStore struct {
	mu    sync.Mutex
	blobs blobstore.Store
	posts []models.BlogPost
}

func NewBlogStore(blobs blobstore.Store) (*BlogStore, error) {
	s := &BlogStore{blobs: blobs}
	if err := loadSnapshot(blobs, blogBlob, &s.posts); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *BlogStore) All() []models.BlogPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.BlogPost, len(s.posts))
	copy(out, s.posts)
	return out
}

func (s *BlogStore) Get(id string) (models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, post := range s.posts {
		if post.ID == id {
			return post, nil
		}
	}
	return models.BlogPost{}, ErrNotFound
}

// Add prepends the post so listings come back newest first.
func (s *BlogStore) Add(post models.BlogPost) (models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = newID("post")
	post.Views = 0
	post.Likes = 0
	if post.Date.IsZero() {
		post.Date = time.Now()
	}

	s.posts = append([]models.BlogPost{post}, s.posts...)
	if err := saveSnapshot(s.blobs, blogBlob, s.posts); err != nil {
		return models.BlogPost{}, err
	}
	return post, nil
}

func (s *BlogStore) Update(id string, post models.BlogPost) (models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID != id {
			continue
		}
		post.ID = id
		post.Views = s.posts[i].Views
		post.Likes = s.posts[i].Likes
		s.posts[i] = post
		if err := saveSnapshot(s.blobs, blogBlob, s.posts); err != nil {
			return models.BlogPost{}, err
		}
		return post, nil
	}
	return models.BlogPost{}, ErrNotFound
}

func (s *BlogStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.posts[:0]
	for _, post := range s.posts {
		if post.ID != id {
			kept = append(kept, post)
		}
	}
	s.posts = kept
	return saveSnapshot(s.blobs, blogBlob, s.posts)
}

// IncrementViews bumps the view counter. Counters only ever increase.
func (s *BlogStore) IncrementViews(id string) error {
	return s.increment(id, func(post *models.BlogPost) { post.Views++ })
}

func (s *BlogStore) Like(id string) error {
	return s.increment(id, func(post *models.BlogPost) { post.Likes++ })
}

func (s *BlogStore) increment(id string, bump func(*models.BlogPost)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID == id {
			bump(&s.posts[i])
			return saveSnapshot(s.blobs, blogBlob, s.posts)
		}
	}
	return ErrNotFound
}
