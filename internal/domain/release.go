package domain

// Release holds the metadata of a tag cut by the release workflow.
type Release struct {
	Previous *Version
	Version  *Version
	TagName  string
	Message  string
}
