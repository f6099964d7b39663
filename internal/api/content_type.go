package api

import (
	"strings"

	"github.com/ColeHoward/WebWorker/internal/types"
)

// checked in order, first match wins
var contentTypeRules = []struct {
	marker      string
	contentType types.ContentType
}{
	{".gif", types.GIF},
	{".jpeg", types.JPEG},
	{".png", types.PNG},
}

// ContentTypeOf classifies a resource path by case-insensitive substring
// match against the image extension markers. Paths matching none of them are
// served as HTML, whatever their extension.
func ContentTypeOf(path string) types.ContentType {
	for _, rule := range contentTypeRules {
		if indexFold(path, rule.marker) >= 0 {
			return rule.contentType
		}
	}
	return types.HTML
}

// byte offset of the first case-insensitive match of substr in s, or -1
func indexFold(s, substr string) int {
	n := len(substr)
	for i := 0; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}
