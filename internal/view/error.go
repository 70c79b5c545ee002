package view

import (
	"strconv"

	"github.com/a-h/templ"
)

// ErrorPage renders a full error page.
func ErrorPage(username string, status int, title, detail string) templ.Component {
	return Layout(title, username, component(func(h *htmlWriter) {
		h.raw(`<h2>`)
		h.text(strconv.Itoa(status) + " " + title)
		h.raw(`</h2><p>`)
		h.text(detail)
		h.raw(`</p><a href="/">Back to listings</a>`)
	}))
}
