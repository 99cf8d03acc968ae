// Package filters provides utilities for filtering Meraki clients.
package filters

import (
	"sort"

	"github.com/austinhawthorne/migrate-meraki2nile/pkg/meraki"
)

// Wired returns only clients with a non-empty switchport, i.e. clients
// connected through a switch rather than wirelessly.
func Wired(clients []meraki.Client) []meraki.Client {
	var wired []meraki.Client
	for _, c := range clients {
		if c.Switchport != "" {
			wired = append(wired, c)
		}
	}
	return wired
}

// DistinctVLANs returns the distinct VLAN IDs among the given clients in
// ascending order. Clients without a VLAN are skipped.
func DistinctVLANs(clients []meraki.Client) []int {
	seen := make(map[int]struct{})
	for _, c := range clients {
		if c.VLAN == nil {
			continue
		}
		seen[*c.VLAN] = struct{}{}
	}
	vlans := make([]int, 0, len(seen))
	for v := range seen {
		vlans = append(vlans, v)
	}
	sort.Ints(vlans)
	return vlans
}
