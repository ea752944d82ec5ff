package naming

import "fmt"

type TextColor string

const (
	ColorJoke     TextColor = "joke"
	ColorPlayer   TextColor = "player"
	ColorItem     TextColor = "item"
	ColorLocation TextColor = "location"
	ColorGuardian TextColor = "guardian"
)

// Colorizer wraps text in a game's color markup.
type Colorizer interface {
	Colorize(text string, color TextColor) string
}

type plainColors struct{}

func (plainColors) Colorize(text string, _ TextColor) string { return text }

type tagColors struct {
	palette map[TextColor]string
}

func (c tagColors) Colorize(text string, color TextColor) string {
	hex, ok := c.palette[color]
	if !ok {
		return text
	}
	return "&push;&main-color=" + hex + ";" + text + "&pop;"
}

var (
	Plain  Colorizer = plainColors{}
	Prime1 Colorizer = tagColors{palette: map[TextColor]string{
		ColorJoke:     "#45F731",
		ColorPlayer:   "#d4cc33",
		ColorItem:     "#c300ff",
		ColorLocation: "#89a1ff",
		ColorGuardian: "#c300ff",
	}}
	Prime2 Colorizer = tagColors{palette: map[TextColor]string{
		ColorJoke:     "#45F731",
		ColorPlayer:   "#d4cc33",
		ColorItem:     "#FF6705B3",
		ColorLocation: "#FF3333",
		ColorGuardian: "#FF3333",
	}}
)

func ColorizerFor(name string) (Colorizer, error) {
	switch name {
	case "", "plain":
		return Plain, nil
	case "prime1":
		return Prime1, nil
	case "prime2":
		return Prime2, nil
	}
	return nil, fmt.Errorf("unknown colorizer %q", name)
}
