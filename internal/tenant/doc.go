// Package tenant manages customer companies and the colocation assets
// (cages and racks) assigned to them. Every data query in the portal is
// scoped by tenant; the asset assignments here are the source of truth
// for what a tenant may see.
package tenant
