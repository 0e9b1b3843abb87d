package workspace

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestParseRoute(t *testing.T) {
	id := uuid.New()
	cases := []struct {
		path string
		want Route
	}{
		{"", NewDocumentRoute()},
		{"/", NewDocumentRoute()},
		{"/new", NewDocumentRoute()},
		{"/" + id.String(), ExistingRoute(id)},
		{id.String() + "/", ExistingRoute(id)},
		{"/nope", NotFoundRoute("/nope")},
		{"/" + id.String() + "/extra", NotFoundRoute("/" + id.String() + "/extra")},
		{"/" + uuid.Nil.String(), NotFoundRoute("/" + uuid.Nil.String())},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			require.Equal(t, tc.want, ParseRoute(tc.path))
		})
	}
}

func TestRoutePathRoundTrip(t *testing.T) {
	id := uuid.New()
	require.Equal(t, ExistingRoute(id), ParseRoute(ExistingRoute(id).Path()))
	require.Equal(t, NewDocumentRoute(), ParseRoute(NewDocumentRoute().Path()))
	require.Equal(t, "/new", NewDocumentRoute().String())
}
