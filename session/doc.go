// Package session synthesizes session identities and their metadata
// envelopes. The Namer produces stable, human-readable identifiers of the
// form {platform}_{context_slug}_{date}; the Composer builds the structured
// metadata attached to a session at creation time. Both detect the hosting
// platform on every call and are otherwise deterministic for a given clock.
package session
