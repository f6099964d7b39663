package types

// kind of body served for a resource
type ContentType int

const (
	HTML ContentType = iota
	GIF
	JPEG
	PNG
)

// returns the MIME string written in the Content-Type header
func (c ContentType) String() string {
	switch c {
	case GIF:
		return "image/gif"
	case JPEG:
		return "image/jpeg"
	case PNG:
		return "image/png"
	default:
		return "text/html"
	}
}

// image bodies are streamed as raw bytes instead of rendered line by line
func (c ContentType) IsImage() bool {
	return c == GIF || c == JPEG || c == PNG
}
