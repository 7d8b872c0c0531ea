package pagination

// DefaultLimit is the page size used when the client does not ask for one.
const DefaultLimit = 20

// Params embeds into huma input structs for pagination.
type Params struct {
	Cursor string `query:"cursor" doc:"Opaque pagination cursor from the Link header of a previous response"`
	Limit  int    `query:"limit"  doc:"Maximum items per page"                                            default:"20" minimum:"1" maximum:"100"`
}

// PageLimit returns the limit, defaulting to DefaultLimit when unset.
func (p Params) PageLimit() int {
	if p.Limit <= 0 {
		return DefaultLimit
	}
	return p.Limit
}
