package topics

// Renderer turns raw topic content into what gets printed. The format
// argument is the topic file's extension, so one renderer can treat
// markdown and plain text differently.
type Renderer interface {
	Render(content, format string) string
}

// PlainRenderer prints topic content exactly as written.
type PlainRenderer struct{}

// Render returns content untouched, whatever its format.
func (r *PlainRenderer) Render(content, format string) string {
	return content
}
