// Package accesslog stores and serves physical access events for tenant
// assets. Real badge readers are out of reach in demo mode, so a
// generator produces a realistic history: business-hours weighted
// timestamps, a small denial rate, and occasional escorted visits.
package accesslog
