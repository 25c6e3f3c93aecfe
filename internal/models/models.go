package models

// Case is the static definition of an investigation: the mansion map and the
// clue -> suspect links seeded before play.
type Case struct {
	Title       string     `yaml:"title"`
	ShortName   string     `yaml:"short_name"` // e.g., "mansion"
	Description string     `yaml:"description"`
	Entrance    string     `yaml:"entrance,omitempty"` // defaults to the first room
	Rooms       []RoomSpec `yaml:"rooms"`
	Links       []LinkSpec `yaml:"links"`
}

// RoomSpec describes one room. Left and Right name child rooms.
type RoomSpec struct {
	Name  string `yaml:"name"`
	Clue  string `yaml:"clue,omitempty"`
	Left  string `yaml:"left,omitempty"`
	Right string `yaml:"right,omitempty"`
}

// LinkSpec ties a clue to the suspect it points at.
type LinkSpec struct {
	Clue    string `yaml:"clue"`
	Suspect string `yaml:"suspect"`
}

// EntranceName is the room play starts in.
func (c *Case) EntranceName() string {
	if c.Entrance != "" {
		return c.Entrance
	}
	if len(c.Rooms) == 0 {
		return ""
	}
	return c.Rooms[0].Name
}
