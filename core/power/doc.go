// Package power balances the platform's electrical demand against the wind
// farm and the capacity-limited thermal plant.
//
// Whatever the turbines cannot cover is drawn from the thermal plant through
// the frequency inverters. When that exceeds the plant's capacity the arbiter
// sheds crane load first and pump load second.
package power
