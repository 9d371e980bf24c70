// Package model defines the data structures used throughout roundboard.
//
// # RoundRecord
//
// A [RoundRecord] is the result of one day. It always holds exactly
// [RoundCount] rounds; a round without a result is an explicit empty
// [Round], never a missing entry:
//
//	type RoundRecord struct {
//	    Rounds       [8]Round   // position significant, round 1..8
//	    CreatedAt    time.Time  // first creation for the date key
//	    LastEditedAt *time.Time // set only by a manual edit
//	}
//
// Every non-empty round carries three digits and a checksum digit,
// (d0+d1+d2) mod 10, see [Checksum].
//
// # Catalog
//
// The [Catalog] maps a YYYY-MM-DD date key to its record and is the unit of
// persistence: it is read and written whole.
//
// # Config
//
// The [Config] struct holds application configuration, stored as an ini file
// in the application data directory. See [DefaultConfig].
package model
