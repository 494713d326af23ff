// Package ratelimit gates how fast vercel-env-push starts CLI invocations.
//
// A Limiter is created once per push and shared by every operation of both
// sync phases. Admission blocks until a slot is free; it never drops work.
package ratelimit
