package scriptgen

import (
	"strings"

	"trendforge/internal/domain/script"
	"trendforge/internal/service/transcript"
)

// Scene durations follow the standard short-video arc: a five second hook,
// brief introduction, the bulk of the runtime on content, then a closer.
const (
	hookDuration         = 5
	introductionDuration = 10
	mainContentDuration  = 35
	callToActionDuration = 10
)

// Generator builds scripts from content templates and transcript analysis
type Generator struct{}

// New creates a script generator
func New() *Generator {
	return &Generator{}
}

// FromTrends generates a script for a content type around the current top
// trend, using only template copy.
func (g *Generator) FromTrends(contentType script.ContentType, topTrend string) script.Script {
	template := templateFor(contentType)

	return script.Script{Scenes: []script.Scene{
		{
			Role:      script.RoleHook,
			Duration:  hookDuration,
			Voiceover: strings.ReplaceAll(template.Hook, "{description}", topTrend),
			Visual:    "Dynamic visuals",
		},
		{
			Role:      script.RoleIntroduction,
			Duration:  introductionDuration,
			Voiceover: "Context setting",
			Visual:    "Personal connection",
		},
		{
			Role:      script.RoleMainContent,
			Duration:  mainContentDuration,
			Voiceover: template.MainContent,
			Visual:    template.Visuals,
		},
		{
			Role:      script.RoleCallToAction,
			Duration:  callToActionDuration,
			Voiceover: "Engagement prompt",
			Visual:    "Community building",
		},
	}}
}

// FromAnalysis generates an original script from a source transcript's
// analysis. Hook and call to action are rephrased from the source segments
// when available; template copy fills the gaps.
func (g *Generator) FromAnalysis(contentType script.ContentType, analysis transcript.Analysis) script.Script {
	template := templateFor(contentType)

	hook := template.Hook
	if len(analysis.Hooks) > 0 {
		hook = "I've discovered a unique way to " + strings.ToLower(analysis.Hooks[0])
	}

	mainContent := template.MainContent
	if len(analysis.KeyPoints) > 0 {
		mainContent = "Let me show you my personal approach: " + strings.Join(analysis.KeyPoints, " Next, ")
	}

	callToAction := "Don't forget to follow for more unique content like this!"
	if analysis.CallToAction != "" {
		callToAction = "If you found this helpful, " + strings.ToLower(analysis.CallToAction)
	}

	return script.Script{Scenes: []script.Scene{
		{
			Role:      script.RoleHook,
			Duration:  hookDuration,
			Voiceover: hook,
			Visual:    "Dynamic visuals with text overlay",
		},
		{
			Role:      script.RoleIntroduction,
			Duration:  introductionDuration,
			Voiceover: "I'm excited to share my personal experience with this",
			Visual:    "Creator speaking or demonstrating",
		},
		{
			Role:      script.RoleMainContent,
			Duration:  mainContentDuration,
			Voiceover: mainContent,
			Visual:    "Step-by-step demonstration",
		},
		{
			Role:      script.RoleCallToAction,
			Duration:  callToActionDuration,
			Voiceover: callToAction,
			Visual:    "Engaging end screen",
		},
	}}
}
