package config

// UIConfig holds user interface configuration.
type UIConfig struct {
	// Theme is "light", "dark" or "auto" (detect from the terminal)
	Theme string `json:"theme" yaml:"theme"`

	// Title is shown in the header bar
	Title string `json:"title" yaml:"title"`

	// Intro is Markdown rendered above the form
	Intro string `json:"intro" yaml:"intro"`

	// InputPlaceholder is shown in the empty query input
	InputPlaceholder string `json:"input_placeholder" yaml:"input_placeholder"`

	// TriggerLabel is the text of the trigger control
	TriggerLabel string `json:"trigger_label" yaml:"trigger_label"`
}

// DefaultIntro points at the HMRC publication the dataset is exported from.
const DefaultIntro = `Enter an ISIN No, and we will check if there's a corresponding record in our
[List of reporting funds A to Z](https://assets.publishing.service.gov.uk/media/66c44db32e8f04b086cdf40b/approved-offshore-reporting-funds-list.ods)
of [Approved offshore reporting funds](https://www.gov.uk/government/publications/offshore-funds-list-of-reporting-funds).`

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Theme:            "auto",
		Title:            "Reporting Fund Lookup",
		Intro:            DefaultIntro,
		InputPlaceholder: "AB12CD3FG456",
		TriggerLabel:     "Calculate",
	}
}
