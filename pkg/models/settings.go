package models

// Settings represents the application configuration
type Settings struct {
	Documents DocumentsSettings `yaml:"documents"`
	Share     ShareSettings     `yaml:"share"`
	Picker    PickerSettings    `yaml:"picker"`
	UI        UISettings        `yaml:"ui"`
}

// DocumentsSettings controls where saved files are written
type DocumentsSettings struct {
	Dir string `yaml:"dir"` // empty means the per-user data directory
}

// ShareSettings controls what happens to a file after it is saved
type ShareSettings struct {
	Method string `yaml:"method"` // "clipboard", "open" or "none"
}

// PickerSettings controls the open-file browser
type PickerSettings struct {
	StartDir   string `yaml:"start_dir"`
	ShowHidden bool   `yaml:"show_hidden"`
	TextOnly   bool   `yaml:"text_only"`
}

// UISettings controls UI preferences
type UISettings struct {
	Wrap bool `yaml:"wrap"`
}

const (
	ShareClipboard = "clipboard"
	ShareOpen      = "open"
	ShareNone      = "none"
)

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Documents: DocumentsSettings{
			Dir: "",
		},
		Share: ShareSettings{
			Method: ShareClipboard,
		},
		Picker: PickerSettings{
			StartDir:   "",
			ShowHidden: false,
			TextOnly:   true,
		},
		UI: UISettings{
			Wrap: true,
		},
	}
}
