package view

import "github.com/a-h/templ"

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// Layout wraps a page body with the document head and the navigation bar.
// username is empty for anonymous visitors.
func Layout(title, username string, body templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(` | Auctions</title>`)
		h.rawf(`<script type="module" src="%s"></script>`, datastarScript)
		h.raw(`<style>body{font-family:sans-serif;margin:0 2rem}nav a{margin-right:1rem}.listing{border:1px solid #ddd;padding:1rem;margin:1rem 0}.message{color:#b00020}.closed{color:#666}</style>`)
		h.raw(`</head><body><h1>Auctions</h1><div>`)
		if username != "" {
			h.raw(`Signed in as <strong>`)
			h.text(username)
			h.raw(`</strong>.`)
		} else {
			h.raw(`Not signed in.`)
		}
		h.raw(`</div><nav><a href="/">Active Listings</a>`)
		if username != "" {
			h.raw(`<a href="/watchlist">Watchlist</a><a href="/sellinglist">Selling</a><a href="/create">Create Listing</a><a href="/logout">Log Out</a>`)
		} else {
			h.raw(`<a href="/login">Log In</a><a href="/register">Register</a>`)
		}
		h.raw(`</nav><hr><main>`)
		h.render(body)
		h.raw(`</main></body></html>`)
	})
}

func message(h *htmlWriter, msg string) {
	if msg != "" {
		h.raw(`<p class="message">`)
		h.text(msg)
		h.raw(`</p>`)
	}
}
