package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestMoviePayloadValid(t *testing.T) {
	p := MoviePayload{Title: "Dune", ReleaseDate: "2024-03-01", CategoryID: 1}
	assert.Empty(t, p.Validate())
}

func TestMoviePayloadCollectsAllErrors(t *testing.T) {
	// Every invalid field must be reported at once, not just the first.
	p := MoviePayload{Title: "", ReleaseDate: "not-a-date", CategoryID: 0}
	errs := p.Validate()
	assert.ElementsMatch(t, []string{"title", "release_date", "category_id"}, fields(errs))
}

func TestMoviePayloadTitleLengthCountsCharacters(t *testing.T) {
	cases := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"200 ascii accepted", strings.Repeat("a", 200), false},
		{"201 ascii rejected", strings.Repeat("a", 201), true},
		{"200 accented accepted", strings.Repeat("á", 200), false},
		{"201 accented rejected", strings.Repeat("á", 201), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := MoviePayload{Title: tc.title, ReleaseDate: "2024-03-01", CategoryID: 1}
			errs := p.Validate()
			if !tc.wantErr {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Equal(t, "title", errs[0].Field)
			assert.Equal(t, "Title must have at most 200 characters", errs[0].Message)
		})
	}
}

func TestMoviePayloadDescriptionOptional(t *testing.T) {
	p := MoviePayload{Title: "Dune", Description: "", ReleaseDate: "2024-03-01", CategoryID: 1}
	assert.Empty(t, p.Validate())
}

func TestMoviePayloadRejectsBadDate(t *testing.T) {
	p := MoviePayload{Title: "Dune", ReleaseDate: "01/03/2024", CategoryID: 1}
	errs := p.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "release_date", errs[0].Field)
}

func TestUserPayloadValid(t *testing.T) {
	p := UserPayload{Username: "alice99", Email: "alice@example.com", Password: "secret123"}
	assert.Empty(t, p.Validate())
}

func TestUserPayloadCollectsAllErrors(t *testing.T) {
	p := UserPayload{Username: "a!", Email: "nope", Password: "123"}
	errs := p.Validate()
	assert.ElementsMatch(t, []string{"username", "email", "password"}, fields(errs))
}

func TestUserPayloadUsernameRules(t *testing.T) {
	cases := []struct {
		name     string
		username string
		wantMsg  string
	}{
		{"missing", "", "Username is required"},
		{"too short", "ab", "Username must have at least 3 characters"},
		{"non alphanumeric", "al ice", "Username must contain only alphanumeric characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := UserPayload{Username: tc.username, Email: "a@b.co", Password: "secret123"}
			errs := p.Validate()
			require.Len(t, errs, 1)
			assert.Equal(t, tc.wantMsg, errs[0].Message)
		})
	}
}

func TestUserPayloadEmailSyntax(t *testing.T) {
	for _, bad := range []string{"plain", "a@b", "a b@c.com", "@c.com"} {
		p := UserPayload{Username: "alice", Email: bad, Password: "secret123"}
		errs := p.Validate()
		require.Len(t, errs, 1, "email %q should be rejected", bad)
		assert.Equal(t, "email", errs[0].Field)
	}
}

func TestUserPayloadPasswordLengthCountsCharacters(t *testing.T) {
	// Five accented characters span ten bytes but are still too short.
	errs := UserPayload{Username: "alice", Email: "a@b.co", Password: "ñññññ"}.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "Password must have at least 6 characters", errs[0].Message)

	p := UserPayload{Username: "alice", Email: "a@b.co", Password: "ñandú1"}
	assert.Empty(t, p.Validate())
}

func TestWatchedPayload(t *testing.T) {
	assert.Empty(t, WatchedPayload{UserID: 1}.Validate())
	errs := WatchedPayload{UserID: 0}.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "userId", errs[0].Field)
	assert.Len(t, WatchedPayload{UserID: -5}.Validate(), 1)
}
