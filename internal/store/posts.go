package store

import (
	"errors"
	"fmt"
	"time"

	"example.com/feedcore/internal/models"
	"github.com/gocql/gocql"
)

const (
	// feedPartition holds every post; the demo API serves one global feed.
	feedPartition  = "global"
	maxCASAttempts = 10

	UserSequence = "users"
	PostSequence = "posts"
)

var ErrSequenceContention = errors.New("id sequence: too many concurrent writers")

// --- Id allocation ---

// NextID hands out positive, increasing ids using lightweight transactions.
// Ids start at 1 so client placeholders (<= 0) never collide.
func (s *Store) NextID(sequence string) (int64, error) {
	for attempt := 0; attempt < maxCASAttempts; attempt++ {
		var current int64
		err := s.Session.Query(
			`SELECT value FROM id_sequences WHERE name = ?`,
			sequence,
		).Scan(&current)

		if err == gocql.ErrNotFound {
			applied, err := s.Session.Query(`
				INSERT INTO id_sequences (name, value)
				VALUES (?, ?) IF NOT EXISTS`,
				sequence, int64(1),
			).MapScanCAS(make(map[string]interface{}))
			if err != nil {
				logg.Error("store", "Failed to seed id sequence", err)
				return 0, err
			}
			if applied {
				return 1, nil
			}
			continue
		}
		if err != nil {
			logg.Error("store", "Failed to read id sequence", err)
			return 0, err
		}

		applied, err := s.Session.Query(`
			UPDATE id_sequences SET value = ?
			WHERE name = ? IF value = ?`,
			current+1, sequence, current,
		).MapScanCAS(make(map[string]interface{}))
		if err != nil {
			logg.Error("store", "Failed to advance id sequence", err)
			return 0, err
		}
		if applied {
			return current + 1, nil
		}
	}
	return 0, fmt.Errorf("%s: %w", sequence, ErrSequenceContention)
}

// --- User operations ---

// GetUserIDByUsername returns 0 without an error when the user does not exist.
func (s *Store) GetUserIDByUsername(username string) (int64, error) {
	var id int64
	err := s.Session.Query(
		`SELECT user_id FROM users_by_username WHERE username = ?`,
		username,
	).Scan(&id)
	if err != nil {
		if err == gocql.ErrNotFound {
			return 0, nil
		}
		logg.Error("store", "Failed to query user by username", err)
		return 0, err
	}
	return id, nil
}

// CreateUser returns the existing id if the username is taken.
func (s *Store) CreateUser(username, email string) (int64, error) {
	existingID, err := s.GetUserIDByUsername(username)
	if err != nil {
		return 0, err
	}
	if existingID != 0 {
		return existingID, nil
	}

	id, err := s.NextID(UserSequence)
	if err != nil {
		return 0, err
	}

	result := make(map[string]interface{})
	applied, err := s.Session.Query(`
		INSERT INTO users_by_username (username, user_id)
		VALUES (?, ?) IF NOT EXISTS`,
		username, id,
	).MapScanCAS(result)
	if err != nil {
		logg.Error("store", "Failed to create username entry", err)
		return 0, err
	}

	if !applied {
		// Another process already created this user
		return s.GetUserIDByUsername(username)
	}

	err = s.Session.Query(`
		INSERT INTO users (user_id, username, email, is_active, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, username, email, true, time.Now().UTC(),
	).Exec()
	if err != nil {
		logg.Error("store", "Failed to create user in main table", err)
		return 0, err
	}

	logg.Info("store", "User created successfully (username anonymized)")
	return id, nil
}

// --- Post operations ---

func (s *Store) AddPost(post models.Post) error {
	if err := s.Session.Query(`
		INSERT INTO posts_by_feed (feed, created_at, post_id, author_id, title, content, likes, comments, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		feedPartition, post.CreatedAt, post.ID, post.AuthorID, post.Title, post.Content,
		post.Likes, post.Comments, post.UpdatedAt,
	).Exec(); err != nil {
		logg.Error("store", "Failed to add post", err)
		return err
	}

	logg.Info("store", "Post added to posts table (post content anonymized)")
	return nil
}

// ListPosts returns the newest posts first.
func (s *Store) ListPosts(limit int) ([]models.Post, error) {
	iter := s.Session.Query(`
		SELECT post_id, author_id, title, content, likes, comments, created_at, updated_at
		FROM posts_by_feed WHERE feed = ? LIMIT ?`,
		feedPartition, limit,
	).Iter()

	res := make([]models.Post, 0, limit)
	var (
		pid, aid        int64
		title, content  string
		likes, comments int
		created         time.Time
		updated         time.Time
	)

	for iter.Scan(&pid, &aid, &title, &content, &likes, &comments, &created, &updated) {
		p := models.Post{
			ID:        pid,
			AuthorID:  aid,
			Title:     title,
			Content:   content,
			Likes:     likes,
			Comments:  comments,
			CreatedAt: created,
		}
		if !updated.IsZero() {
			u := updated
			p.UpdatedAt = &u
		}
		res = append(res, p)
		updated = time.Time{}
	}

	if err := iter.Close(); err != nil {
		logg.Error("store", "Failed to list posts", err)
		return nil, err
	}

	logg.Debug("store", "Posts listed successfully")
	return res, nil
}
