// Package advisor produces move suggestions for the automated participant.
//
// Two implementations conform to the Advisor interface:
//
// Local applies a fixed priority policy: win if possible, block the
// opponent's win, take the center, take a corner, take any open cell. It is
// deterministic up to the pseudo-random choice among equally ranked cells
// and always returns a legal move while one exists.
//
// Remote consults an OpenAI chat model first, bounded by a timeout, and
// falls back to the Local policy on any error, timeout, or illegal
// suggestion. Remote failures are never surfaced to callers; the fallback
// guarantees a legal move.
//
// The implementation is selected once at startup and injected into the game
// service; callers never branch on which advisor is active.
package advisor
