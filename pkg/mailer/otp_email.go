package mailer

import (
	"bytes"
	"html/template"
)

const otpSubject = "Password Reset OTP"

var otpTemplate = template.Must(template.New("otp").Parse(`
<h1>Password Reset OTP</h1>
<p>You requested a password reset.</p>
<h2 style="font-size: 24px; background-color: #f0f0f0; padding: 10px; text-align: center;">{{.Code}}</h2>
<p>This OTP expires in {{.Expiry}}.</p>
`))

// OTPEmail renders the password-reset email. Returns subject, plain-text
// fallback, and HTML body.
func OTPEmail(code, expiry string) (subject, text, html string) {
	var buf bytes.Buffer
	_ = otpTemplate.Execute(&buf, struct{ Code, Expiry string }{code, expiry})
	text = "Your password reset OTP is " + code + ". It expires in " + expiry + "."
	return otpSubject, text, buf.String()
}
