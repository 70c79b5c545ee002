package view

import (
	"github.com/a-h/templ"
	"github.com/msomdec/auction-house/internal/domain"
	"github.com/msomdec/auction-house/internal/service"
)

const timeFormat = "Jan 2, 2006, 3:04 PM"

// ListingsPage renders a list of listings under a heading. It backs the
// index, the watchlist and the selling list.
func ListingsPage(username, heading string, listings []domain.Listing) templ.Component {
	return Layout(heading, username, component(func(h *htmlWriter) {
		h.raw(`<h2>`)
		h.text(heading)
		h.raw(`</h2>`)
		if len(listings) == 0 {
			h.raw(`<p>No listings.</p>`)
			return
		}
		for _, l := range listings {
			h.raw(`<div class="listing">`)
			h.rawf(`<h3><a href="/display/%s">`, id(l.ID))
			h.text(l.Title)
			h.raw(`</a>`)
			if l.Finished {
				h.raw(` <span class="closed">(closed)</span>`)
			}
			h.raw(`</h3><p>`)
			h.text(l.Description)
			h.raw(`</p><p><strong>Price:</strong> $`)
			h.text(l.CurrentPrice.String())
			h.raw(`</p><p>Listed by `)
			h.text(l.SellerName)
			h.raw(`</p></div>`)
		}
	}))
}

// CreatePage renders the listing form, refilled after a validation error.
func CreatePage(username, msg, title, description, startBid string) templ.Component {
	return Layout("Create Listing", username, component(func(h *htmlWriter) {
		h.raw(`<h2>Create Listing</h2>`)
		message(h, msg)
		h.raw(`<form action="/create" method="post">`)
		h.rawf(`<div><input autofocus type="text" name="title" placeholder="Title" maxlength="200" value="%s"></div>`, attr(title))
		h.raw(`<div><textarea name="description" placeholder="Description">`)
		h.text(description)
		h.raw(`</textarea></div>`)
		h.rawf(`<div><input type="number" name="startBid" placeholder="Starting bid" min="0" step="0.01" value="%s"></div>`, attr(startBid))
		h.raw(`<input type="submit" value="Create"></form>`)
	}))
}

// DisplayPage renders an open listing. With bidForm set it also shows the
// bid form, which is how /placebid is rendered.
func DisplayPage(username string, d *service.ListingDetail, msg string, bidForm bool) templ.Component {
	l := d.Listing
	return Layout(l.Title, username, component(func(h *htmlWriter) {
		h.raw(`<h2>`)
		h.text(l.Title)
		h.raw(`</h2><p>`)
		h.text(l.Description)
		h.raw(`</p><p><strong>Current price:</strong> $`)
		h.text(d.Price.String())
		h.raw(`</p><p>Listed by `)
		h.text(l.SellerName)
		h.raw(`</p>`)
		message(h, msg)

		if username != "" {
			h.render(WatchButton(l.ID, d.Watching))
			switch {
			case d.Owner:
				h.rawf(`<p><a href="/close/%s">Close this auction</a></p>`, id(l.ID))
			case bidForm:
				h.rawf(`<form action="/placebid/%s" method="post">`, id(l.ID))
				h.raw(`<input type="number" name="yourbid" min="0" step="0.01" placeholder="Your bid">`)
				h.raw(`<input type="submit" value="Place Bid"></form>`)
			default:
				h.rawf(`<p><a href="/placebid/%s">Place a bid</a></p>`, id(l.ID))
			}
			h.rawf(`<p><a href="/comment/%s">Write a comment</a></p>`, id(l.ID))
		}

		h.raw(`<h3>Bids</h3>`)
		if len(d.Bids) == 0 {
			h.raw(`<p>No bids yet.</p>`)
		} else {
			h.raw(`<ul>`)
			for _, b := range d.Bids {
				h.raw(`<li>`)
				h.text(b.BidderName)
				h.raw(`: $`)
				h.text(b.Amount.String())
				h.raw(`</li>`)
			}
			h.raw(`</ul>`)
		}

		h.raw(`<h3>Comments</h3>`)
		h.render(CommentList(d.Comments))
	}))
}

// ClosedPage renders the summary of a finished auction.
func ClosedPage(username string, l *domain.Listing, price domain.Money, winner *domain.Bid) templ.Component {
	return Layout(l.Title, username, component(func(h *htmlWriter) {
		h.raw(`<h2>`)
		h.text(l.Title)
		h.raw(` <span class="closed">(closed)</span></h2><p>`)
		h.text(l.Description)
		h.raw(`</p><p><strong>Final price:</strong> $`)
		h.text(price.String())
		h.raw(`</p><p id="winner">`)
		if winner != nil {
			h.raw(`Winner: <strong>`)
			h.text(winner.BidderName)
			h.raw(`</strong>`)
		} else {
			h.raw(`No bids were placed. There is no winner.`)
		}
		h.raw(`</p>`)
	}))
}

// WatchButton is the watchlist toggle. Datastar requests replace it in place;
// without JavaScript the form posts and redirects.
func WatchButton(listingID int64, watching bool) templ.Component {
	return component(func(h *htmlWriter) {
		label := "Add to Watchlist"
		if watching {
			label = "Remove from Watchlist"
		}
		h.rawf(`<form id="watch-toggle" action="/changewl/%s" method="post" data-on:submit__prevent="@post('/changewl/%s', {contentType: 'form'})">`,
			id(listingID), id(listingID))
		h.rawf(`<input type="submit" value="%s"></form>`, label)
	})
}
