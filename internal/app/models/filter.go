package models

import "fmt"

// Filter selects which tasks a list view shows.
type Filter string

const (
	FilterAll         Filter = "all"
	FilterCompleted   Filter = "completed"
	FilterUncompleted Filter = "uncompleted"
)

func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case FilterAll, FilterCompleted, FilterUncompleted:
		return f, nil
	case "":
		return FilterAll, nil
	}
	return "", fmt.Errorf("unknown filter %q (want all, completed or uncompleted)", s)
}

// Completed returns the completion value the filter restricts to, or nil for
// FilterAll.
func (f Filter) Completed() *bool {
	var v bool
	switch f {
	case FilterCompleted:
		v = true
	case FilterUncompleted:
		v = false
	default:
		return nil
	}
	return &v
}

// Matches reports whether the task belongs in a view using this filter.
func (f Filter) Matches(t Task) bool {
	c := f.Completed()
	return c == nil || *c == t.Completed
}

// ParseCompletedQuery interprets the ?completed= query value. Only the
// literals "true" and "false" filter; anything else means no filter.
func ParseCompletedQuery(v string) *bool {
	switch v {
	case "true":
		return FilterCompleted.Completed()
	case "false":
		return FilterUncompleted.Completed()
	}
	return nil
}

// CacheKey names the filter in cache keys.
func CacheKey(completed *bool) string {
	if completed == nil {
		return "all"
	}
	if *completed {
		return "true"
	}
	return "false"
}
