/*
Minimal client for the Mastodon REST API, covering what the tavern bots need.

[APIClient] wraps an [http.Client] and provides JSON helpers for GET ([APIClient.Get]) and POST ([APIClient.Post]) endpoints under the instance host. Authentication is pluggable through [AuthMethod]; [BearerAuth] implements the OAuth access token flow used by bot accounts.

Non-successful responses are parsed into [APIError], which includes the HTTP status code and the 'error' and 'error_description' fields of the Mastodon error entity. It is intended to be used with [errors.As] in calling code.

Paginated endpoints are exposed as pagers ([APIClient.NotificationsPager], [APIClient.PublicTimelinePager]) which follow the 'Link' response header. Each call to FetchPage returns the next page; the pager keeps the cursor internally and never re-fetches a page.

The client does not retry by itself. Retries, timeouts and tracing are properties of the [http.Client] handed to it (see the robusthttp package). An optional [rate.Limiter] paces outgoing requests.
*/
package mastodon
