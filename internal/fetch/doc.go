// Package fetch performs HTTP retrieval of topic pages.
//
// # Components
//
//   - Client: a browser-impersonating HTTP client with request pacing
//   - Fetcher: the per-page retry/backoff state machine
//
// # Browser impersonation
//
// The target site actively blocks generic automated clients, so the
// Client must present a TLS handshake and header fingerprint consistent
// with a mainstream browser. We stack the cloudflare-bp round tripper on
// the transport and send a fixed Chrome-like header set with every
// request.
//
// # Pacing and backoff
//
// Two different waits exist and must not be confused:
//   - the courtesy delay is rate-limiting policy, applied between all
//     successive requests through a shared rate.Limiter (the very first
//     request of a session is not delayed)
//   - backoff is error handling, applied only after 429/403 responses,
//     growing linearly with the attempt number
package fetch
