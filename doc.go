// Package notely is the Composition Root for the notely client.
//
// It wires a REST notes backend client, the persisted session, the notes
// collection and the view controller that the terminal interface and the
// command line render.
//
// Philosophy:
//
// The backend owns every note. The client keeps only what it needs to draw
// the screen: the bearer token (the one piece of persisted state), the
// profile, and the result of the latest search. Mutations never patch the
// local list; they refetch it.
//
// Features:
//
//   - **Single persisted value**: the token lives under the key "token" in a
//     YAML session file (or in memory with `WithEphemeral`).
//   - **Reactive stores**: signing in or out is published on a broker; the
//     profile and the note list follow it.
//   - **Fresh results only**: a list response that was overtaken by a newer
//     search is discarded.
//   - **Fixed error phrases**: backend failures surface as one message per
//     operation, never the server's detail.
//
// Usage:
//
//	client := notely.New(
//		notely.WithBaseURL("http://localhost:8000/api"),
//		notely.WithLogger(logger),
//	)
//	if err := client.Start(ctx); err != nil {
//		return err
//	}
//	err := client.Login(ctx, "alice", "secret")
package notely
