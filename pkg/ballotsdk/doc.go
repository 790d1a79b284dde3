// Package ballotsdk is the Go client for the ballot REST API.
//
// It carries the wire types shared with the server, the API error type, and
// two entry points:
//
//	client := ballotsdk.NewSDKClient("http://localhost:8080")
//	list, err := client.ListProposals(ctx, ballotsdk.ListProposalsParams{Status: "active"})
//
//	session, err := client.Login(ctx, "Hari")
//	vote, err := session.CastVote(ctx, list[0].ID, "yes")
//
// Anonymous reads live on SDKClient. Everything that acts as a user lives on
// Session, which sends the bearer token issued at login.
package ballotsdk
