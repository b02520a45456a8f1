// Package cli provides the interactive GuessCode command-line client.
//
// It wires configuration, local credential storage, the API client, the
// presence channel, and an interactive REPL. Typical flow: hydrate the
// session from the stored credential, then execute user commands.
//
// Key features:
//   - Login / Register / Logout
//   - Whoami (profile, presence state, token expiry)
//   - Browse katas and the leaderboard
//   - Reload the profile after server-side changes
//
// The REPL is started via App.Root(ctx), which blocks until the user
// exits. See App and runREPL for details.
package cli
