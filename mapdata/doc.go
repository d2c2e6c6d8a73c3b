// SPDX-License-Identifier: MIT

// Package mapdata reads and writes universe dumps and fetches fresh ones
// from the EVE Swagger Interface (ESI).
//
// A dump is one JSON document, optionally gzip-compressed:
//
//	{
//	  "systems":   {"30000142": {"name": "Jita", "stargates": [50001248, ...]}, ...},
//	  "stargates": {"50001248": {"destination": {"system_id": 30000144}}, ...}
//	}
//
// A system without a "stargates" key carries no gate data; its SystemSpec
// has nil Stargates and starmap.New drops it by default. Specs are sorted by
// system id so that loading the same dump always yields the same Map.
package mapdata
