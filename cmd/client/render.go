package client

import (
	"fmt"
	"io"
	"time"

	"example.com/feedcore/internal/models"
	"example.com/feedcore/internal/timefmt"
)

// Render prints the feed one post per line, newest-authored first.
func Render(w io.Writer, posts []models.Post, now time.Time) {
	fmt.Fprintf(w, "Feed (%d posts)\n", len(posts))
	for _, p := range posts {
		fmt.Fprintln(w, line(p, now))
	}
}

func line(p models.Post, now time.Time) string {
	age := timefmt.FormatRelative(p.CreatedAt, now)
	if p.Pending {
		return fmt.Sprintf("  * %s · author #%d · %s · sending", p.Title, p.AuthorID, age)
	}
	return fmt.Sprintf("  #%d %s · author #%d · %s · %s · %s",
		p.ID, p.Title, p.AuthorID, age, count(p.Likes, "like"), count(p.Comments, "comment"))
}

func count(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
