package posts

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Direction selects the date order of a listing.
type Direction int

const (
	// Ascending puts the oldest post first.
	Ascending Direction = iota
	// Descending puts the newest post first.
	Descending
)

// ParseDirection maps "asc"/"desc" (and their long forms) to a Direction.
// The empty string is Ascending.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("posts: unknown order %q", value)
	}
}

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// DatePolicy decides what a listing does with posts whose date is missing or
// unparseable.
type DatePolicy string

const (
	// DatePolicyLast keeps such posts and orders them after every dated post.
	DatePolicyLast DatePolicy = "last"
	// DatePolicySkip drops such posts from the listing.
	DatePolicySkip DatePolicy = "skip"
	// DatePolicyFail aborts the listing with ErrUnparseableDate.
	DatePolicyFail DatePolicy = "fail"
)

// ParseDatePolicy validates value, defaulting to DatePolicyLast.
func ParseDatePolicy(value string) (DatePolicy, error) {
	switch policy := DatePolicy(strings.ToLower(strings.TrimSpace(value))); policy {
	case "":
		return DatePolicyLast, nil
	case DatePolicyLast, DatePolicySkip, DatePolicyFail:
		return policy, nil
	default:
		return DatePolicyLast, fmt.Errorf("posts: unknown date policy %q", value)
	}
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
	"2006/01/02",
	time.RFC1123,
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate parses raw with the first matching accepted layout.
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrUnparseableDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, raw)
}

// Compare orders a and b by date in dir. Posts without a usable date sort
// after dated posts in either direction and compare equal to one another.
func Compare(a, b interfaces.Post, dir Direction) int {
	return compareParsed(parsePostDate(a), parsePostDate(b), dir)
}

// SortPosts sorts posts in place by date. Ties keep their input order.
func SortPosts(posts []interfaces.Post, dir Direction) {
	keyed := make([]datedPost, len(posts))
	for i, post := range posts {
		keyed[i] = datedPost{post: post, date: parsePostDate(post)}
	}
	slices.SortStableFunc(keyed, func(a, b datedPost) int {
		return compareParsed(a.date, b.date, dir)
	})
	for i := range keyed {
		posts[i] = keyed[i].post
	}
}

type parsedDate struct {
	time  time.Time
	valid bool
}

type datedPost struct {
	post interfaces.Post
	date parsedDate
}

func parsePostDate(post interfaces.Post) parsedDate {
	t, err := ParseDate(post.FrontMatter.Date)
	if err != nil {
		return parsedDate{}
	}
	return parsedDate{time: t, valid: true}
}

func compareParsed(a, b parsedDate, dir Direction) int {
	switch {
	case !a.valid && !b.valid:
		return 0
	case !a.valid:
		return 1
	case !b.valid:
		return -1
	}
	result := a.time.Compare(b.time)
	if dir == Descending {
		return -result
	}
	return result
}
