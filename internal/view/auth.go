package view

import "github.com/a-h/templ"

// LoginPage renders the login form. next is the local path to return to.
func LoginPage(msg, next string) templ.Component {
	return Layout("Log In", "", component(func(h *htmlWriter) {
		h.raw(`<h2>Login</h2>`)
		message(h, msg)
		h.raw(`<form action="/login" method="post">`)
		h.rawf(`<input type="hidden" name="next" value="%s">`, attr(next))
		h.raw(`<div><input autofocus type="text" name="username" placeholder="Username"></div>`)
		h.raw(`<div><input type="password" name="password" placeholder="Password"></div>`)
		h.raw(`<input type="submit" value="Login"></form>`)
		h.raw(`Don't have an account? <a href="/register">Register here.</a>`)
	}))
}

// RegisterPage renders the registration form, keeping the entered username
// and email after a failed attempt.
func RegisterPage(msg, username, email string) templ.Component {
	return Layout("Register", "", component(func(h *htmlWriter) {
		h.raw(`<h2>Register</h2>`)
		message(h, msg)
		h.raw(`<form action="/register" method="post">`)
		h.rawf(`<div><input autofocus type="text" name="username" placeholder="Username" value="%s"></div>`, attr(username))
		h.rawf(`<div><input type="email" name="email" placeholder="Email Address" value="%s"></div>`, attr(email))
		h.raw(`<div><input type="password" name="password" placeholder="Password"></div>`)
		h.raw(`<div><input type="password" name="confirmation" placeholder="Confirm Password"></div>`)
		h.raw(`<input type="submit" value="Register"></form>`)
		h.raw(`Already have an account? <a href="/login">Log In here.</a>`)
	}))
}
