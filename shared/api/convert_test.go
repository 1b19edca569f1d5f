package api

import (
	"testing"
	"time"

	"github.com/yatube-dev/yatube/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageResponse(t *testing.T) {
	group := &domain.Group{Id: 1, Slug: "test-slug"}
	page := domain.Page{
		Posts: []domain.Post{
			{Id: 2, Text: "t2", Author: domain.User{Username: "auth"}, Group: group, CreatedAt: time.Unix(2, 0)},
			{Id: 1, Text: "t1", Author: domain.User{Username: "auth"}},
		},
		Number:      2,
		NumPages:    3,
		TotalCount:  22,
		HasNext:     true,
		HasPrevious: true,
	}

	resp := NewPageResponse(page)

	assert.Equal(t, 22, resp.Count)
	require.NotNil(t, resp.Next)
	assert.Equal(t, 3, *resp.Next)
	require.NotNil(t, resp.Previous)
	assert.Equal(t, 1, *resp.Previous)
	require.Len(t, resp.Results, 2)
	require.NotNil(t, resp.Results[0].Group)
	assert.Equal(t, "test-slug", *resp.Results[0].Group)
	assert.Nil(t, resp.Results[1].Group)
	assert.Equal(t, "auth", resp.Results[1].Author)
}

func TestNewPageResponse_Edges(t *testing.T) {
	resp := NewPageResponse(domain.Page{Number: 1, NumPages: 1})
	assert.Nil(t, resp.Next)
	assert.Nil(t, resp.Previous)
	assert.Empty(t, resp.Results)
}
