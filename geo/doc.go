// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package geo resolves a coarse location for a request.

Providers are tried in order by Chain:

 1. HeaderProvider reads the edge geolocation headers (CF-IPCountry, CF-IPCity).
 2. LookupProvider asks an external JSON service such as ip-api.com.

When every provider comes back empty or fails, Chain returns Unknown().
Lookup failures are never surfaced to the client.
*/
package geo
