// Package announcement manages facility notices shown on the portal
// dashboard. Visibility is either public or targeted at specific tenants;
// listings sort by severity first, then recency.
package announcement
