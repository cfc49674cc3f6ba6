package scriptgen

import (
	"trendforge/internal/domain/script"
)

// Template holds the canned copy for one content format. The Hook field
// may contain a {description} placeholder filled with the top trend.
type Template struct {
	Style       string
	Hook        string
	MainContent string
	Visuals     string
}

var templates = map[script.ContentType]Template{
	script.ContentTutorial: {
		Style:       "educational",
		Hook:        "I've developed a unique approach to {description}. Here's my original tutorial!",
		MainContent: "Based on my experience, here's my personal step-by-step guide...",
		Visuals:     "Original demonstration with unique perspective",
	},
	script.ContentStorytelling: {
		Style:       "narrative",
		Hook:        "Let me share my personal experience with {description}...",
		MainContent: "Here's what happened and what I learned...",
		Visuals:     "Original footage with emotional storytelling",
	},
}

// templateFor returns the template for a content type, falling back to the
// tutorial template for formats without canned copy.
func templateFor(contentType script.ContentType) Template {
	if template, ok := templates[contentType]; ok {
		return template
	}
	return templates[script.ContentTutorial]
}
