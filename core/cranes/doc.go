// Package cranes schedules the cargo cranes that load barrels onto the docked
// ship.
//
// Each crane cycles between seeking a barrel (negative progress counting up to
// zero) and carrying it to the ship (progress counting up to the load duration).
// Every tick the group re-elects which cranes run, preferring the ones closest
// to finishing their current cycle, so that work already done is not thrown away
// when the crane budget shrinks and grows.
package cranes
