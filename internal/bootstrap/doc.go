// Package bootstrap seeds the portal's in-memory store at startup.
//
// The portal holds no persistent state: every boot recreates the demo
// facility, tenants, users, cameras, and announcements from fixed seed
// records, then generates synthetic access logs, environmental readings,
// and power readings for each tenant's footprint.
//
// Seeding order matters — locations and zones first, then tenants and
// their assets, then everything that references them.
package bootstrap
