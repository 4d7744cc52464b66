// Package facility models the physical data centers: locations and the
// zones within them, including each zone's cages, racks, and
// environmental sensor inventory. Zone sensor lists drive the
// environmental reading generator.
package facility
