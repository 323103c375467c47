package mail

import "fmt"

// wrapEmail puts body into the shared storefront email frame.
func wrapEmail(body string) string {
	return fmt.Sprintf(`
	<div class="email" style="
		border: 1px solid black;
		padding: 20px;
		font-family: sans-serif;
		line-height: 2;
		font-size: 20px;
	">
		<h2>Hello There!</h2>
		<p>%s</p>
		<p>Cheers, the Storefront team</p>
	</div>
	`, body)
}

// ResetEmailHTML renders the password-reset email pointing at the frontend
// reset page with the token embedded in the link.
func ResetEmailHTML(frontendURL, resetToken string) string {
	link := fmt.Sprintf("%s/reset?resetToken=%s", frontendURL, resetToken)
	return wrapEmail(fmt.Sprintf(
		`Your password reset token is here!<br/><br/><a href=%q>Click here to reset your password</a>`,
		link,
	))
}
