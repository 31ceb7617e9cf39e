// Package contact decides whether a participant's phone or email is usable
// for a text or mail action and builds the matching links.
//
// The predicates only gate actions. Stored values are never rewritten.
package contact

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`^\+?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4,6}$`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@(?:[A-Za-z0-9-]+\.)+[A-Za-z]{2,4}$`)
)

// IsValidPhone accepts North American style numbers such as 555-123-4567,
// (555) 123.4567 or +5551234567.
func IsValidPhone(s string) bool {
	return s != "" && phonePattern.MatchString(s)
}

// IsValidEmail accepts local@domain.tld with a two to four letter TLD.
func IsValidEmail(s string) bool {
	return s != "" && emailPattern.MatchString(s)
}

// SMSLink returns an sms: link that pre-fills message, or "" when phone is not valid.
func SMSLink(phone, message string) string {
	if !IsValidPhone(phone) {
		return ""
	}
	return "sms:+1" + escape(phone) + "&body=" + escape(message)
}

// MailLink returns a mailto: link, or "" when email is not valid.
func MailLink(email, subject, message string) string {
	if !IsValidEmail(email) {
		return ""
	}

	link := "mailto:" + email
	var params []string
	if subject != "" {
		params = append(params, "subject="+escape(subject))
	}
	if message != "" {
		params = append(params, "body="+escape(message))
	}
	if len(params) > 0 {
		link += "?" + strings.Join(params, "&")
	}
	return link
}

// escape percent-encodes s for use inside a link, spaces as %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
