package tags

import (
	"fmt"
	"regexp"
	"strings"
)

const separator = "."

var tagPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+(\.[A-Za-z0-9_-]+)*$`)

// Tag is a hierarchical, dot separated item identifier such as
// "Item.Weapon.Sword".
type Tag string

// Parse returns s as a Tag, or an error if it is not a well formed tag.
func Parse(s string) (Tag, error) {
	t := Tag(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t Tag) String() string {
	return string(t)
}

// Validate returns an error describing why the tag is malformed.
func (t Tag) Validate() error {
	if t == "" {
		return fmt.Errorf("tag must be set")
	}
	if !tagPattern.MatchString(string(t)) {
		return fmt.Errorf("tag %q is invalid", string(t))
	}
	return nil
}

func (t Tag) IsValid() bool {
	return t.Validate() == nil
}

// Parent returns the tag one level up, or "" for a root tag.
func (t Tag) Parent() Tag {
	i := strings.LastIndex(string(t), separator)
	if i < 0 {
		return ""
	}
	return t[:i]
}

// Depth returns the number of segments in the tag.
func (t Tag) Depth() int {
	if t == "" {
		return 0
	}
	return strings.Count(string(t), separator) + 1
}

// MatchesTag reports whether t is other or a descendant of other.
// "Item.Weapon.Sword" matches "Item.Weapon" but not "Item.Weap".
func (t Tag) MatchesTag(other Tag) bool {
	if other == "" {
		return false
	}
	if t == other {
		return true
	}
	return strings.HasPrefix(string(t), string(other)+separator)
}

func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t), nil
}

func (t *Tag) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
