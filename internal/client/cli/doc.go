// Package cli implements the bookmarker command-line client.
//
// Every invocation runs one command against the HTTP API:
//
//	bookmarker signup --email me@example.com
//	bookmarker signin --email me@example.com
//	bookmarker me
//	bookmarker me edit --first-name Ada
//	bookmarker bookmarks list
//	bookmarker bookmarks add --title Go --link https://go.dev
//	bookmarker bookmarks get <id>
//	bookmarker bookmarks edit --title "The Go site" <id>
//	bookmarker bookmarks rm <id>
//	bookmarker signout
//
// signin stores the access token in the token file; the other commands read
// it from there. Command flags go before positional arguments. Passwords
// are prompted for without echo unless --password is given.
package cli
