// Package redact removes credentials, SQL text, file paths and host names from
// strings before they are logged. Error responses never carry raw errors; the
// API layer logs them through Error.
package redact

import "regexp"

// Placeholders substituted for redacted text.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	StackPlaceholder      = "[STACK_TRACE_REDACTED]"
	PathPlaceholder       = "[REDACTED_PATH]"
	HostPlaceholder       = "[REDACTED_HOST]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules run in order; paths are replaced before host names so file names
// such as leitner.db are not mistaken for hosts.
var rules = []rule{
	{
		regexp.MustCompile(`(?i)\b(?:postgres(?:ql)?|pgx|file)://[^@\s]+@`),
		CredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)(?:password|passwd|pwd)\s*[=:]\s*['"]?[^'"&\s]+`),
		CredentialPlaceholder,
	},
	{
		regexp.MustCompile(
			`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE|INDEX)(?:[\s\w,*()='"?$]+)?`,
		),
		SQLPlaceholder,
	},
	{
		regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`),
		StackPlaceholder,
	},
	{
		regexp.MustCompile(`(/[\w.-]+){2,}`),
		PathPlaceholder,
	},
	{
		regexp.MustCompile(
			`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`,
		),
		HostPlaceholder,
	},
}

// String redacts sensitive information from input.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
