package query

import (
	"net/url"
	"strings"

	"github.com/gorilla/schema"
	"github.com/matst80/slask-dashboard/pkg/types"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// Encode serializes the state into the query string sent to every data
// endpoint. Facets come in types.AllFacets order with their values ascending,
// followed by the name filter. An empty state encodes to "".
func Encode(state *types.FilterState) string {
	spec := state.Snapshot()
	return EncodeSpec(&spec)
}

// EncodeSpec serializes a detached spec with the same rules as Encode.
func EncodeSpec(spec *types.FilterSpec) string {
	var b strings.Builder
	add := func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}
	for _, f := range types.AllFacets {
		values, _ := spec.Values(f)
		for _, v := range sorted(values) {
			add(string(f), v)
		}
	}
	if name := spec.NameFilter(); name != "" {
		add(types.NameParam, name)
	}
	return b.String()
}

type form struct {
	Year      []string `schema:"year"`
	Genre     []string `schema:"genre"`
	Platform  []string `schema:"platform"`
	Publisher []string `schema:"publisher"`
	Region    []string `schema:"region"`
	Name      string   `schema:"name"`
}

// Decode parses an encoded query back into a spec. Facets without parameters
// are reported as absent.
func Decode(raw string) (types.FilterSpec, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return types.FilterSpec{}, err
	}
	f := form{}
	if err := decoder.Decode(&f, values); err != nil {
		return types.FilterSpec{}, err
	}
	spec := types.FilterSpec{}
	spec.Set(types.FacetYear, nonEmpty(f.Year))
	spec.Set(types.FacetGenre, nonEmpty(f.Genre))
	spec.Set(types.FacetPlatform, nonEmpty(f.Platform))
	spec.Set(types.FacetPublisher, nonEmpty(f.Publisher))
	spec.Set(types.FacetRegion, nonEmpty(f.Region))
	if name := strings.TrimSpace(f.Name); name != "" {
		spec.Name = &name
	}
	return spec, nil
}

func nonEmpty(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return values
}
