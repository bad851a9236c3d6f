package api

import "strconv"

// ListParams are the query parameters list endpoints accept. Zero values are
// left out of the query string.
type ListParams struct {
	Page      int
	Limit     int
	Search    string
	Status    string
	Type      string
	SortBy    string
	SortOrder string
	Extra     map[string]string
}

// Query renders the parameters for resty's SetQueryParams.
func (p ListParams) Query() map[string]string {
	q := make(map[string]string, 7+len(p.Extra))
	if p.Page > 0 {
		q["page"] = strconv.Itoa(p.Page)
	}
	if p.Limit > 0 {
		q["limit"] = strconv.Itoa(p.Limit)
	}
	set := func(k, v string) {
		if v != "" {
			q[k] = v
		}
	}
	set("search", p.Search)
	set("status", p.Status)
	set("type", p.Type)
	set("sortBy", p.SortBy)
	set("sortOrder", p.SortOrder)
	for k, v := range p.Extra {
		set(k, v)
	}
	return q
}
