// Package power stores and serves per-rack power consumption readings on
// dual A/B feeds. The generator covers a full year: seven days of hourly
// readings shaped by a time-of-day curve, preceded by weekly averages
// carrying seasonal swing and a slow growth trend.
package power
