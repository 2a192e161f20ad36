// Package session owns the client-side authentication state of the rental
// marketplace client.
//
// A Manager is constructed explicitly at the application's composition point
// and handed to every consumer. It is the only writer of the session state
// and of the persistent store keys that back it (access_token, user_type,
// user_data).
//
// # Lifecycle
//
//	UNINITIALIZED --Start--> LOADING --restore ok--> AUTHENTICATED
//	                                 --no token / restore failed--> UNAUTHENTICATED
//	UNAUTHENTICATED --Login ok--> AUTHENTICATED
//	AUTHENTICATED   --Logout / token rejected--> UNAUTHENTICATED
//
// A restored token is provisional until the role's profile endpoint accepts
// it; the cached profile is only exposed as Snapshot.Placeholder while
// loading.
//
// # Concurrency
//
// Manager is safe for concurrent use. Every mutating call captures the
// session generation when it begins and commits only if the generation is
// unchanged, so a Logout issued while a Login or Start is in flight wins.
// Subscribers are called synchronously in commit order and must not call
// mutating Manager methods from the callback.
//
// # Errors
//
// Remote failures never escape raw: operations return *Error values whose
// Kind is one of the package sentinels (ErrInvalidCredentials,
// ErrRegistration, ErrProfileLoad, ErrNetwork, ErrStaleToken, ...) and whose
// Message is fit for display.
package session
