// Package api exposes the memo service over HTTP. It parses and validates
// requests, calls service.MemoService, and renders memos and errors as
// JSON. Error kinds map to status codes in one place (StatusForKind) so
// every endpoint reports failures the same way.
package api
