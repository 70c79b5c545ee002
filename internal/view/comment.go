package view

import (
	"github.com/a-h/templ"
	"github.com/msomdec/auction-house/internal/domain"
	"github.com/msomdec/auction-house/internal/service"
)

// CommentPage renders the comment form above the existing comments.
func CommentPage(username string, d *service.ListingDetail, msg string) templ.Component {
	l := d.Listing
	return Layout("Comments on "+l.Title, username, component(func(h *htmlWriter) {
		h.rawf(`<h2>Comments on <a href="/display/%s">`, id(l.ID))
		h.text(l.Title)
		h.raw(`</a></h2><p><strong>Current price:</strong> $`)
		h.text(d.Price.String())
		h.raw(`</p>`)
		h.render(CommentForm(l.ID, msg))
		h.render(CommentList(d.Comments))
	}))
}

// CommentForm posts a comment. Datastar requests get the refreshed list back
// over SSE instead of a redirect. msg is shown above the text area.
func CommentForm(listingID int64, msg string) templ.Component {
	return component(func(h *htmlWriter) {
		h.rawf(`<form id="comment-form" action="/comment/%s" method="post" data-on:submit__prevent="@post('/comment/%s', {contentType: 'form'})">`,
			id(listingID), id(listingID))
		message(h, msg)
		h.raw(`<textarea name="content" placeholder="Write a comment"></textarea>`)
		h.raw(`<input type="submit" value="Post"></form>`)
	})
}

// CommentList renders comments, newest first.
func CommentList(comments []domain.Comment) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<ul id="comments">`)
		for _, c := range comments {
			h.raw(`<li><strong>`)
			h.text(c.WriterName)
			h.raw(`</strong> <small>`)
			h.text(c.CreatedAt.Format(timeFormat))
			h.raw(`</small><p>`)
			h.text(c.Content)
			h.raw(`</p></li>`)
		}
		h.raw(`</ul>`)
	})
}
