package cadence

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/cadencehq/cadence/pkg/models"
)

// listQuery is the parsed shape of the review console's list parameters.
type listQuery struct {
	status   string // "", "all", or a concrete status
	search   string
	sortKey  string // "date" or "status"
	order    string // "asc" or "desc"
	page     int    // 1-indexed; 0 disables pagination
	pageSize int
}

// parseListQuery validates the list query parameters. Unknown values are
// rejected rather than silently ignored so a console bug surfaces as a 400
// instead of a confusing empty list.
func parseListQuery(values url.Values) (listQuery, error) {
	q := listQuery{
		status:  values.Get("status"),
		search:  values.Get("q"),
		sortKey: values.Get("sort"),
		order:   values.Get("order"),
	}

	switch q.status {
	case "", "all", string(models.StatusPending), string(models.StatusApproved), string(models.StatusDeclined):
	default:
		return listQuery{}, fmt.Errorf("invalid status filter: %q", q.status)
	}

	switch q.sortKey {
	case "":
		q.sortKey = "date"
	case "date", "status":
	default:
		return listQuery{}, fmt.Errorf("invalid sort key: %q", q.sortKey)
	}

	switch q.order {
	case "":
		q.order = "desc"
	case "asc", "desc":
	default:
		return listQuery{}, fmt.Errorf("invalid sort order: %q", q.order)
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return listQuery{}, fmt.Errorf("invalid page: %q", raw)
		}
		q.page = page
	}
	if raw := values.Get("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return listQuery{}, fmt.Errorf("invalid page size: %q", raw)
		}
		q.pageSize = size
	}
	if q.page > 0 && q.pageSize == 0 {
		q.pageSize = 10
	}

	return q, nil
}

// filterSubmissions narrows the list by status and free-text search. The
// search matches case-insensitively against the artist name or release title.
func filterSubmissions(subs []*models.Submission, q listQuery) []*models.Submission {
	if (q.status == "" || q.status == "all") && q.search == "" {
		return subs
	}

	needle := strings.ToLower(q.search)
	out := subs[:0:0]
	for _, sub := range subs {
		if q.status != "" && q.status != "all" && string(sub.Status) != q.status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(sub.ArtistName), needle) &&
			!strings.Contains(strings.ToLower(sub.ReleaseTitle), needle) {
			continue
		}
		out = append(out, sub)
	}
	return out
}

// sortSubmissions orders the list in place. The date key compares submission
// timestamps; the status key compares status strings lexicographically, which
// yields approved < declined < pending and is exactly the ordering the review
// console has always shown.
func sortSubmissions(subs []*models.Submission, q listQuery) {
	less := func(i, j int) bool {
		switch q.sortKey {
		case "status":
			if subs[i].Status != subs[j].Status {
				return subs[i].Status < subs[j].Status
			}
			return subs[i].CreatedAt.Before(subs[j].CreatedAt)
		default:
			return subs[i].CreatedAt.Before(subs[j].CreatedAt)
		}
	}

	if q.order == "desc" {
		original := less
		less = func(i, j int) bool { return original(j, i) }
	}
	sort.SliceStable(subs, less)
}

// paginate slices out the requested page. Pages are 1-indexed; a page past
// the end of the list is an empty result, not an error.
func paginate(subs []*models.Submission, q listQuery) []*models.Submission {
	if q.page == 0 {
		return subs
	}

	start := (q.page - 1) * q.pageSize
	if start >= len(subs) {
		return []*models.Submission{}
	}
	end := start + q.pageSize
	if end > len(subs) {
		end = len(subs)
	}
	return subs[start:end]
}
