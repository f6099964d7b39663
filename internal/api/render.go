package api

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ColeHoward/WebWorker/internal/types"
)

var ErrResourceMissing = errors.New("resource missing")

// layout substituted for the date tag inside served pages
const TagDateLayout = "Mon Jan 02 15:04:05 MST 2006"

const notFoundBody = "<html><head></head><body>\n" +
	"<h3>Error: 404 Not Found</h3>" +
	"</body></html>\n"

// template tags, matched case-insensitively; the first rule whose marker
// occurs in a line rewrites that line
var tagRules = []struct {
	marker  string
	rewrite func(line string, tc tagContext) string
}{
	{
		marker: "<cs371date>",
		rewrite: func(line string, tc tagContext) string {
			return replaceFold(line, "<cs371date>", tc.now.Format(TagDateLayout)+"<br>")
		},
	},
	{
		marker: "<cs371server>",
		rewrite: func(_ string, tc tagContext) string {
			return tc.identification
		},
	},
}

type tagContext struct {
	now            time.Time
	identification string
}

// writes response bodies after the header block
type Renderer struct {
	// replaces any line carrying the server tag
	Identification string
	Now            func() time.Time
}

// Render writes the body for ct. HTML resources are rewritten line by line,
// a missing HTML resource gets the 404 page, and images are copied byte for
// byte. An image with no open resource fails with ErrResourceMissing.
func (r *Renderer) Render(w io.Writer, ct types.ContentType, res *Resource) error {
	if ct.IsImage() {
		if !res.Exists() {
			return ErrResourceMissing
		}
		if _, err := io.Copy(w, res.Reader()); err != nil {
			return fmt.Errorf("copying image: %w", err)
		}
		return nil
	}

	if !res.Exists() {
		_, err := io.WriteString(w, notFoundBody)
		return err
	}
	return r.renderText(w, res.Reader())
}

func (r *Renderer) renderText(w io.Writer, src io.Reader) error {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	tc := tagContext{now: now(), identification: r.Identification}

	reader := bufio.NewReader(src)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			if _, werr := io.WriteString(w, renderLine(line, tc)); werr != nil {
				return werr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading page: %w", err)
		}
	}
}

// rewrites one line, keeping the terminator it was read with
func renderLine(line string, tc tagContext) string {
	content := strings.TrimSuffix(line, "\n")
	content = strings.TrimSuffix(content, "\r")
	eol := line[len(content):]

	for _, rule := range tagRules {
		if indexFold(content, rule.marker) >= 0 {
			return rule.rewrite(content, tc) + eol
		}
	}
	return line
}

// replaces every case-insensitive occurrence of old in s
func replaceFold(s, old, repl string) string {
	var b strings.Builder
	for {
		i := indexFold(s, old)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		b.WriteString(repl)
		s = s[i+len(old):]
	}
}
