package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"example.com/feedcore/internal/middleware"
	"example.com/feedcore/internal/models"
	"example.com/feedcore/internal/store"
	"example.com/feedcore/internal/validator"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// --- HTTP Handlers ---

// createUserHandler registers a user (or finds the existing one) and issues a token.
// Expects JSON body: {"username": "example", "email": "a@b.co"}
// Returns JSON response: {"user_id": <id>, "token": "..."}
func (s *Server) createUserHandler(w http.ResponseWriter, r *http.Request) {
	type req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	var body req

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logg.Error("http/users", "Invalid request body", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if len(body.Username) == 0 || len(body.Username) > 50 {
		logg.Info("http/users", "Invalid username length")
		http.Error(w, "username must be 1-50 characters", http.StatusBadRequest)
		return
	}
	u := models.User{Username: body.Username, Email: body.Email}
	if body.Email != "" && !u.HasValidEmail() {
		logg.Info("http/users", "Invalid email address")
		http.Error(w, "invalid email address", http.StatusBadRequest)
		return
	}

	userID, err := s.store.CreateUser(body.Username, body.Email)
	if err != nil {
		logg.Error("http/users", "Failed to create user", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	token, err := middleware.IssueToken(s.secret, userID, s.tokenTTL)
	if err != nil {
		logg.Error("http/users", "Failed to generate token", err)
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}
	logg.Info("http/users", "Token issued for user_id="+strconv.FormatInt(userID, 10))

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id": userID,
		"token":   token,
	})
}

// createPostHandler validates and stores a post authored by the token's user.
// Expects JSON body: {"title": "...", "content": "..."}
func (s *Server) createPostHandler(w http.ResponseWriter, r *http.Request) {
	type req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	var body req

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logg.Error("http/posts", "Invalid request body", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		logg.Info("http/posts", "Unauthorized post creation attempt")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := validator.Validate(body.Title, body.Content); err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			logg.Info("http/posts", "Rejected post for user_id="+strconv.FormatInt(userID, 10)+": "+string(verr.Reason))
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := s.store.NextID(store.PostSequence)
	if err != nil {
		logg.Error("http/posts", "Failed to allocate post id", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	post := models.Post{
		ID:        id,
		Title:     body.Title,
		Content:   body.Content,
		AuthorID:  userID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.AddPost(post); err != nil {
		logg.Error("http/posts", "Failed to save post", err)
		http.Error(w, "failed to save post", http.StatusInternalServerError)
		return
	}

	logg.Info("http/posts", "Post created successfully by user_id="+strconv.FormatInt(userID, 10))
	writeJSON(w, http.StatusCreated, post)
}

// listPostsHandler returns the newest posts first.
// Query parameters: ?limit=50
func (s *Server) listPostsHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = min(l, maxListLimit)
	}

	posts, err := s.store.ListPosts(limit)
	if err != nil {
		logg.Error("http/posts", "Failed to list posts", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	logg.Debug("http/posts", "Listed "+strconv.Itoa(len(posts))+" posts")
	writeJSON(w, http.StatusOK, posts)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logg.Error("http", "Failed to encode response", err)
	}
}
