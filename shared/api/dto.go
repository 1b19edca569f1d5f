package api

import (
	"encoding/json"
	"time"

	"github.com/yatube-dev/yatube/shared/domain"
)

// Request DTOs shared by HTML forms and the JSON API

// PostForm is the create/edit payload. Group is optional.
type PostForm struct {
	Text  string          `json:"text" validate:"required"`
	Group *domain.GroupId `json:"group,omitempty"`
}

// PostPatchRequest only changes the fields present in the body.
// "group": null detaches the post from its group.
type PostPatchRequest struct {
	Text  *string    `json:"text"`
	Group OptionalId `json:"group"`
}

// OptionalId tells an absent key apart from an explicit null.
type OptionalId struct {
	Set   bool
	Value *int64
}

func (o *OptionalId) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type CreateGroupRequest struct {
	Title       string `json:"title" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description"`
}

// Response DTOs

type GroupResponse struct {
	Id          domain.GroupId    `json:"id"`
	Title       domain.GroupTitle `json:"title"`
	Slug        domain.GroupSlug  `json:"slug"`
	Description string            `json:"description"`
}

type PostResponse struct {
	Id        domain.PostId     `json:"id"`
	Text      domain.PostText   `json:"text"`
	Author    domain.Username   `json:"author"`
	Group     *domain.GroupSlug `json:"group"`
	CreatedAt time.Time         `json:"pub_date"`
}

type PageResponse struct {
	Count    int            `json:"count"`
	Page     int            `json:"page"`
	NumPages int            `json:"num_pages"`
	Next     *int           `json:"next"`
	Previous *int           `json:"previous"`
	Results  []PostResponse `json:"results"`
}

type GroupListResponse struct {
	Groups []GroupResponse `json:"groups"`
}
