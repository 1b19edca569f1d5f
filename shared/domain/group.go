package domain

// to iterate thru layers: handler -> service -> storage
type GroupCreationData struct {
	Title       GroupTitle
	Slug        GroupSlug
	Description string
}

type Group struct {
	Id          GroupId    `db:"id"`
	Title       GroupTitle `db:"title"`
	Slug        GroupSlug  `db:"slug"`
	Description string     `db:"description"`
}
