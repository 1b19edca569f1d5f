package api

import (
	"github.com/samber/lo"
	"github.com/yatube-dev/yatube/shared/domain"
)

func NewGroupResponse(g domain.Group) GroupResponse {
	return GroupResponse{Id: g.Id, Title: g.Title, Slug: g.Slug, Description: g.Description}
}

func NewPostResponse(p domain.Post) PostResponse {
	resp := PostResponse{
		Id:        p.Id,
		Text:      p.Text,
		Author:    p.Author.Username,
		CreatedAt: p.CreatedAt,
	}
	if p.Group != nil {
		resp.Group = lo.ToPtr(p.Group.Slug)
	}
	return resp
}

func NewPageResponse(page domain.Page) PageResponse {
	resp := PageResponse{
		Count:    page.TotalCount,
		Page:     page.Number,
		NumPages: page.NumPages,
		Results:  lo.Map(page.Posts, func(p domain.Post, _ int) PostResponse { return NewPostResponse(p) }),
	}
	if page.HasNext {
		resp.Next = lo.ToPtr(page.NextNumber())
	}
	if page.HasPrevious {
		resp.Previous = lo.ToPtr(page.PreviousNumber())
	}
	return resp
}

func NewGroupListResponse(groups []domain.Group) GroupListResponse {
	return GroupListResponse{Groups: lo.Map(groups, func(g domain.Group, _ int) GroupResponse { return NewGroupResponse(g) })}
}
