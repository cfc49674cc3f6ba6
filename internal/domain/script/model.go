package script

// ContentType identifies the content format a script is generated for
type ContentType string

const (
	ContentTutorial      ContentType = "tutorial"
	ContentStorytelling  ContentType = "storytelling"
	ContentTrendingSound ContentType = "trending_sound"
	ContentTransition    ContentType = "transition"
	ContentPOV           ContentType = "pov"
	ContentDuet          ContentType = "duet"
)

// SceneRole tags the function a scene serves within a script
type SceneRole string

const (
	RoleHook         SceneRole = "hook"
	RoleIntroduction SceneRole = "introduction"
	RoleMainContent  SceneRole = "main_content"
	RoleCallToAction SceneRole = "call_to_action"
)

// Scene is one segment of a generated script
type Scene struct {
	Role      SceneRole `json:"role"`
	Duration  int       `json:"duration"`
	Voiceover string    `json:"voiceover"`
	Visual    string    `json:"visual"`
}

// Script is an ordered sequence of scenes. Immutable after creation;
// one script is produced per pipeline run.
type Script struct {
	Scenes []Scene `json:"scenes"`
}

// Voiceover returns the concatenated voiceover text of all scenes,
// in scene order, separated by single spaces.
func (s Script) Voiceover() string {
	text := ""
	for i, scene := range s.Scenes {
		if i > 0 {
			text += " "
		}
		text += scene.Voiceover
	}
	return text
}
