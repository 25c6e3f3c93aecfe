package models

import (
	"errors"
	"fmt"
)

// ErrInvalidCase is wrapped by every validation failure.
var ErrInvalidCase = errors.New("invalid case")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidCase, fmt.Sprintf(format, args...))
}

// Validate checks that the rooms form a single binary tree rooted at the
// entrance and that every link names a clue and a suspect.
func (c *Case) Validate() error {
	if len(c.Rooms) == 0 {
		return invalid("no rooms")
	}

	byName := make(map[string]int, len(c.Rooms))
	for i, r := range c.Rooms {
		if r.Name == "" {
			return invalid("room %d has no name", i)
		}
		if _, dup := byName[r.Name]; dup {
			return invalid("duplicate room %q", r.Name)
		}
		byName[r.Name] = i
	}

	entrance := c.EntranceName()
	if _, ok := byName[entrance]; !ok {
		return invalid("entrance %q is not a room", entrance)
	}

	parent := make(map[string]string, len(c.Rooms))
	for _, r := range c.Rooms {
		for _, child := range []string{r.Left, r.Right} {
			if child == "" {
				continue
			}
			if _, ok := byName[child]; !ok {
				return invalid("room %q leads to unknown room %q", r.Name, child)
			}
			if child == entrance {
				return invalid("entrance %q cannot be entered from %q", entrance, r.Name)
			}
			if p, taken := parent[child]; taken {
				return invalid("room %q is reachable from both %q and %q", child, p, r.Name)
			}
			parent[child] = r.Name
		}
	}

	// With one parent per room and none for the entrance, reaching every room
	// from the entrance rules out cycles.
	seen := make(map[string]bool, len(c.Rooms))
	stack := []string{entrance}
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		seen[name] = true
		r := c.Rooms[byName[name]]
		for _, child := range []string{r.Left, r.Right} {
			if child != "" && !seen[child] {
				stack = append(stack, child)
			}
		}
	}
	for _, r := range c.Rooms {
		if !seen[r.Name] {
			return invalid("room %q is unreachable from %q", r.Name, entrance)
		}
	}

	for i, l := range c.Links {
		if l.Clue == "" || l.Suspect == "" {
			return invalid("link %d needs both clue and suspect", i)
		}
	}
	return nil
}
