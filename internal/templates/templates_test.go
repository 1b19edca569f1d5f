package templates

import (
	"bytes"
	"html/template"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	templates, err := Load(nil)
	require.NoError(t, err)

	for _, name := range []string{
		"posts/index.html",
		"posts/group_list.html",
		"posts/profile.html",
		"posts/post_detail.html",
		"posts/create_post.html",
		"about/author.html",
		"about/tech.html",
		"users/login.html",
		"users/signup.html",
		"core/404.html",
		"core/429.html",
	} {
		assert.Contains(t, templates, name)
	}
	assert.NotContains(t, templates, "base.html")
	assert.NotContains(t, templates, "includes/partials.html")
}

func TestLoadOverridesMarkdown(t *testing.T) {
	templates, err := Load(template.FuncMap{
		"markdown": func(string) template.HTML { return "<em>rendered</em>" },
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = templates["posts/post_detail.html"].Execute(&buf, map[string]any{
		"Data": map[string]any{
			"Post":      map[string]any{"Id": 1, "Text": "*hi*", "CreatedAt": time.Now(), "Group": nil},
			"Profile":   map[string]any{"Username": "auth"},
			"PostCount": 1,
			"CanEdit":   false,
		},
		"Common": map[string]any{"User": nil, "CSRFToken": "", "Error": ""},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<em>rendered</em>")
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, template.HTML("a &lt;b&gt;<br>c"), plainText("a <b>\nc"))
}

func TestDict(t *testing.T) {
	m, err := dict("Post", 1, "ShowAuthor", true)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Post": 1, "ShowAuthor": true}, m)

	_, err = dict("odd")
	assert.Error(t, err)

	_, err = dict(1, 2)
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "05 Mar 2024", formatDate(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)))
}
