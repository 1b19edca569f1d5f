package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostIsAuthoredBy(t *testing.T) {
	post := Post{Id: 1, Author: User{Id: 7, Username: "auth"}}

	tests := []struct {
		name string
		user *User
		want bool
	}{
		{"author", &User{Id: 7}, true},
		{"other user", &User{Id: 8}, false},
		{"anonymous", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, post.IsAuthoredBy(tt.user))
		})
	}
}

func TestPostGroupSlug(t *testing.T) {
	assert.Equal(t, "", (&Post{}).GroupSlug())
	assert.Equal(t, "test-slug", (&Post{Group: &Group{Slug: "test-slug"}}).GroupSlug())
}
