// Command yatubectl manages groups and users directly against the database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/yatube-dev/yatube/internal/setup"
	"github.com/yatube-dev/yatube/internal/storage/sql"
	"github.com/yatube-dev/yatube/shared/config"
	"github.com/yatube-dev/yatube/shared/domain"
	"github.com/yatube-dev/yatube/shared/logger"
)

const usage = `usage: yatubectl [-config_folder dir] <command>

commands:
  group create -title T -slug S [-description D]
  group list
  user create -username U -password P
  user list
  post list [-group slug] [-author username]
`

func main() {
	_ = godotenv.Load()

	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.MustLoad(configFolder)
	logger.Initialize("warn", false)

	storage, err := setup.OpenStore(cfg.Private.Database, sql.LightweightConnectionConfig())
	if err != nil {
		fail(err)
	}
	defer storage.Close()

	deps, err := setup.Build(cfg, storage)
	if err != nil {
		fail(err)
	}

	if err := run(context.Background(), deps, args[0], args[1], args[2:]); err != nil {
		fail(err)
	}
}

func run(ctx context.Context, deps *setup.Dependencies, noun, verb string, args []string) error {
	switch noun + " " + verb {
	case "group create":
		fs := flag.NewFlagSet("group create", flag.ExitOnError)
		title := fs.String("title", "", "group title")
		slug := fs.String("slug", "", "unique slug used in /group/<slug>/")
		description := fs.String("description", "", "group description")
		fs.Parse(args)

		group, err := deps.Groups.Create(ctx, domain.GroupCreationData{Title: *title, Slug: *slug, Description: *description})
		if err != nil {
			return err
		}
		color.Green.Printf("created group %q (id %d)\n", group.Slug, group.Id)
		return nil

	case "group list":
		groups, err := deps.Groups.GetAll(ctx)
		if err != nil {
			return err
		}
		table := newTable("Id", "Slug", "Title", "Description")
		for _, g := range groups {
			table.Append([]string{strconv.FormatInt(g.Id, 10), g.Slug, g.Title, g.Description})
		}
		table.Render()
		return nil

	case "user create":
		fs := flag.NewFlagSet("user create", flag.ExitOnError)
		username := fs.String("username", "", "username")
		password := fs.String("password", "", "password")
		fs.Parse(args)

		user, err := deps.Auth.Signup(ctx, domain.Credentials{Username: *username, Password: *password})
		if err != nil {
			return err
		}
		color.Green.Printf("created user %q (id %d)\n", user.Username, user.Id)
		return nil

	case "user list":
		users, err := deps.Auth.Users(ctx)
		if err != nil {
			return err
		}
		table := newTable("Id", "Username", "Joined")
		for _, u := range users {
			table.Append([]string{strconv.FormatInt(u.Id, 10), u.Username, u.CreatedAt.Format("2006-01-02 15:04")})
		}
		table.Render()
		return nil

	case "post list":
		fs := flag.NewFlagSet("post list", flag.ExitOnError)
		group := fs.String("group", "", "only posts of this group slug")
		author := fs.String("author", "", "only posts by this username")
		fs.Parse(args)

		posts, err := listPosts(ctx, deps, *group, *author)
		if err != nil {
			return err
		}
		table := newTable("Id", "Author", "Group", "Published", "Text")
		for _, p := range posts {
			table.Append([]string{
				strconv.FormatInt(p.Id, 10),
				p.Author.Username,
				p.GroupSlug(),
				p.CreatedAt.Format("2006-01-02 15:04"),
				excerpt(p.Text, 40),
			})
		}
		table.Render()
		return nil
	}

	flag.Usage()
	os.Exit(2)
	return nil
}

func listPosts(ctx context.Context, deps *setup.Dependencies, group, author string) ([]domain.Post, error) {
	var (
		posts []domain.Post
		err   error
	)
	switch {
	case group != "":
		posts, err = deps.Posts.ByGroup(ctx, group)
	case author != "":
		posts, _, err = deps.Posts.ByAuthor(ctx, author)
	default:
		posts, err = deps.Posts.All(ctx)
	}
	if err != nil {
		return nil, err
	}
	if group != "" && author != "" {
		posts = lo.Filter(posts, func(p domain.Post, _ int) bool { return p.Author.Username == author })
	}
	return posts, nil
}

func newTable(header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	return table
}

func excerpt(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "…"
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, color.Red.Sprintf("error: %v", err))
	os.Exit(1)
}
