// Package camera serves the surveillance camera inventory. Visibility is
// double-gated: a camera is visible to a user only when it is assigned to
// the user's tenant AND either carries no asset restriction or overlaps
// the asset list being queried.
package camera
