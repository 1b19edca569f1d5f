package domain

// Page is one slice of an ordered post listing.
// A page past the end has no posts but still reports the totals.
type Page struct {
	Posts       []Post
	Number      int
	NumPages    int
	TotalCount  int
	HasNext     bool
	HasPrevious bool
}

func (p Page) NextNumber() int     { return p.Number + 1 }
func (p Page) PreviousNumber() int { return p.Number - 1 }

type GroupPage struct {
	Group Group
	Page  Page
}

type ProfilePage struct {
	Author    User
	Page      Page
	PostCount int
}
