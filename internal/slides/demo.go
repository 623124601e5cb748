package slides

import "fmt"

var demoTopics = []string{
	"Resize the terminal to cross a breakpoint.",
	"Press l or h to move one group.",
	"Space pauses autoplay.",
	"n shows each card's slide number.",
	"T cycles the color theme.",
	"Looping pads the strip with clones on both sides.",
	"Reaching a clone teleports back without animation.",
	"A short last group snaps to the end of the list.",
	"items_file is reloaded when it changes on disk.",
	"Logs go to ~/.local/state/marquee/marquee.log.",
	"Run with -debug to log every teleport.",
	"? lists every key.",
}

// Demo returns the deck shown when no slides are configured.
func Demo() []Slide {
	out := make([]Slide, len(demoTopics))
	for i, body := range demoTopics {
		out[i] = Slide{Title: fmt.Sprintf("Slide %d", i+1), Body: body}
	}
	return out
}
