// Package account exposes the logged-in identity consulted when building
// outgoing cookie headers and when seeding the browsing surface.
//
// A Provider answers two questions: which user is active, and which cookie
// header carries that user's session. Both return "" when nobody is logged in.
//
//	sess := account.NewSession()
//	sess.Login("U1", "ngaPassportUid=U1; ngaPassportCid=token")
//	uid := sess.UserID() // "U1"
//	sess.Logout()
//
// Static is a fixed Provider, handy in tests and for the CLI.
package account
