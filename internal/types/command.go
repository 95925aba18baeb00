package types

// Command is a saved shell command shown in the launcher.
type Command struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Command     string `json:"command"`
	Icon        string `json:"icon"`
}

// IconSource tells the frontend where an icon file lives.
type IconSource string

const (
	IconSourceUser    IconSource = "user"
	IconSourceBundled IconSource = "bundled"
)

// ResolvedIcon is the result of icon lookup for a command. URL is served
// by the webview asset server; Path is set for user icons only.
type ResolvedIcon struct {
	File   string     `json:"file"`
	URL    string     `json:"url"`
	Path   string     `json:"path,omitempty"`
	Source IconSource `json:"source"`
}
