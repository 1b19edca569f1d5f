package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yatube-dev/yatube/shared/config"
	"github.com/yatube-dev/yatube/shared/errors"
)

var (
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
)

type PostValidator struct {
	maxLen int
}

func NewPostValidator(cfg config.Public) *PostValidator {
	return &PostValidator{maxLen: cfg.PostTextMaxLen}
}

// Text rejects blank posts. Whitespace-only counts as blank.
func (v *PostValidator) Text(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.Validation("text: this field is required")
	}
	if v.maxLen > 0 && utf8.RuneCountInString(text) > v.maxLen {
		return errors.Validation(fmt.Sprintf("text: must be at most %d characters", v.maxLen))
	}
	return nil
}

type GroupValidator struct {
	titleMaxLen int
	slugMaxLen  int
}

func NewGroupValidator(cfg config.Public) *GroupValidator {
	return &GroupValidator{titleMaxLen: cfg.GroupTitleMaxLen, slugMaxLen: cfg.GroupSlugMaxLen}
}

func (v *GroupValidator) Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.Validation("title: this field is required")
	}
	if v.titleMaxLen > 0 && utf8.RuneCountInString(title) > v.titleMaxLen {
		return errors.Validation(fmt.Sprintf("title: must be at most %d characters", v.titleMaxLen))
	}
	return nil
}

func (v *GroupValidator) Slug(slug string) error {
	if slug == "" {
		return errors.Validation("slug: this field is required")
	}
	if v.slugMaxLen > 0 && utf8.RuneCountInString(slug) > v.slugMaxLen {
		return errors.Validation(fmt.Sprintf("slug: must be at most %d characters", v.slugMaxLen))
	}
	if !slugRe.MatchString(slug) {
		return errors.Validation("slug: only latin letters, digits, hyphens and underscores are allowed")
	}
	return nil
}

type UserValidator struct {
	usernameMaxLen int
	passwordMinLen int
}

func NewUserValidator(cfg config.Public) *UserValidator {
	return &UserValidator{usernameMaxLen: cfg.UsernameMaxLen, passwordMinLen: cfg.PasswordMinLen}
}

func (v *UserValidator) Username(username string) error {
	if username == "" {
		return errors.Validation("username: this field is required")
	}
	if v.usernameMaxLen > 0 && utf8.RuneCountInString(username) > v.usernameMaxLen {
		return errors.Validation(fmt.Sprintf("username: must be at most %d characters", v.usernameMaxLen))
	}
	if !usernameRe.MatchString(username) {
		return errors.Validation("username: letters, digits and @/./+/-/_ only")
	}
	return nil
}

func (v *UserValidator) Password(password string) error {
	if utf8.RuneCountInString(password) < v.passwordMinLen {
		return errors.Validation(fmt.Sprintf("password: must be at least %d characters", v.passwordMinLen))
	}
	return nil
}
