package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/bookmarker/internal/server/models"
)

func printJSON(s *session, v any) error {
	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printAccount(s *session, a *models.PublicAccount) error {
	if s.json {
		return printJSON(s, a)
	}
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", a.ID)
	fmt.Fprintf(tw, "Email:\t%s\n", a.Email)
	if a.FirstName != "" || a.LastName != "" {
		fmt.Fprintf(tw, "Name:\t%s %s\n", a.FirstName, a.LastName)
	}
	fmt.Fprintf(tw, "Created:\t%s\n", formatTime(a.CreatedAt))
	return tw.Flush()
}

func printBookmark(s *session, b *models.Bookmark) error {
	if s.json {
		return printJSON(s, b)
	}
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", b.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", b.Title)
	fmt.Fprintf(tw, "Link:\t%s\n", b.Link)
	if b.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", b.Description)
	}
	fmt.Fprintf(tw, "Updated:\t%s\n", formatTime(b.UpdatedAt))
	return tw.Flush()
}

func printBookmarks(s *session, list []*models.Bookmark) error {
	if s.json {
		return printJSON(s, list)
	}
	if len(list) == 0 {
		fmt.Fprintln(s.out, "no bookmarks")
		return nil
	}
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tLINK")
	for _, b := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.ID, b.Title, b.Link)
	}
	return tw.Flush()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
