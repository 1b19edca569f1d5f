package domain

import "time"

// GroupId is nil for posts outside of any group.
type PostCreationData struct {
	Text     PostText
	AuthorId UserId
	GroupId  *GroupId
}

// Replaces both text and group; a nil GroupId detaches the post from its group.
type PostUpdateData struct {
	Id      PostId
	Text    PostText
	GroupId *GroupId
}

type Post struct {
	Id        PostId
	Text      PostText
	Author    User
	Group     *Group
	CreatedAt time.Time
}

func (p *Post) IsAuthoredBy(user *User) bool {
	return user != nil && p.Author.Id == user.Id
}

func (p *Post) GroupSlug() GroupSlug {
	if p.Group == nil {
		return ""
	}
	return p.Group.Slug
}
