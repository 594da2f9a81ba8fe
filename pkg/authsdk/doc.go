// Package authsdk is a Go client for the authd HTTP API.
//
// The client owns a cookie jar, so the session established by Login is
// carried automatically on subsequent calls:
//
//	client := authsdk.NewClient("http://localhost:8080")
//	if err := client.Register(ctx, "alice", "secret"); err != nil { ... }
//	principal, err := client.Login(ctx, "alice", "secret")
//	setup, err := client.SetupTOTP(ctx)
//	bearer, err := client.VerifyTOTP(ctx, code)
//
// API failures are returned as *APIError carrying the HTTP status and the
// server's error code.
package authsdk
