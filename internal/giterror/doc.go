// Package giterror classifies GitHub API error messages (authentication,
// missing repository, rate limiting, network failures) and turns them into
// short hints for the user. Classification is by message text because the
// executor reports transport failures and API error lists as plain strings.
package giterror
