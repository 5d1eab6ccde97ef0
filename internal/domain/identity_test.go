package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityZeroValueIsAnonymous(t *testing.T) {
	var id Identity
	assert.False(t, id.IsAuthenticated())
	_, ok := id.UserID()
	assert.False(t, ok)
}

func TestAuthenticatedIdentity(t *testing.T) {
	id := Authenticated(42)
	assert.True(t, id.IsAuthenticated())
	uid, ok := id.UserID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), uid)
}

func TestSourceCanBeMutatedBy(t *testing.T) {
	owner := int64(1)

	tests := []struct {
		name     string
		source   Source
		identity Identity
		want     bool
	}{
		{
			name:     "author may mutate",
			source:   Source{AuthorID: &owner},
			identity: Authenticated(1),
			want:     true,
		},
		{
			name:     "other user may not mutate",
			source:   Source{AuthorID: &owner},
			identity: Authenticated(2),
			want:     false,
		},
		{
			name:     "anonymous may not mutate",
			source:   Source{AuthorID: &owner},
			identity: Anonymous(),
			want:     false,
		},
		{
			name:     "ownerless source is mutable by no authenticated user",
			source:   Source{AuthorID: nil},
			identity: Authenticated(1),
			want:     false,
		},
		{
			name:     "ownerless source is mutable by no anonymous caller",
			source:   Source{AuthorID: nil},
			identity: Anonymous(),
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.source.CanBeMutatedBy(tt.identity))
		})
	}
}
