// Package output writes the Nile migration CSV.
package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/austinhawthorne/migrate-meraki2nile/pkg/meraki"
)

// Format holds the fixed column layout and the constant field values of the
// Nile migration CSV. Fields not derivable from Meraki data are emitted as
// these constants on every row.
type Format struct {
	Header      []string
	AllowState  string
	Description string
	LockToPort  string
	Site        string
	Building    string
	Floor       string
	StaticIP    string
	IPAddress   string
	PassiveIP   string
}

// DefaultFormat is the import format expected by Nile.
var DefaultFormat = Format{
	Header: []string{
		"MAC Address (Required)",
		"Segment (Required for allow state)",
		"Lock to Port (Optional)",
		"Site (Optional)",
		"Building (Optional)",
		"Floor (Optional)",
		"Allow or Deny (Required)",
		"Description (Optional)",
		"Static IP (Optional)",
		"IP Address (Optional)",
		"Passive IP (Optional)",
	},
	AllowState:  "Allow",
	Description: "Imported from migration CSV",
	StaticIP:    "No",
	PassiveIP:   "No",
}

// WriteMigrationCSV writes the header followed by one row per wired client,
// deduplicated by (MAC, VLAN) with the first occurrence winning and retrieval
// order preserved. The segment column comes from segmentByVLAN, defaulting to
// "" for clients whose VLAN is absent or unmapped. Returns the number of data
// rows written.
func WriteMigrationCSV(w io.Writer, clients []meraki.Client, segmentByVLAN map[int]string) (int, error) {
	writer := csv.NewWriter(w)

	if err := writer.Write(DefaultFormat.Header); err != nil {
		return 0, err
	}

	seen := make(map[string]struct{})
	rows := 0
	for _, c := range clients {
		if c.Switchport == "" {
			continue
		}

		key := dedupKey(c)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		segment := ""
		if c.VLAN != nil {
			segment = segmentByVLAN[*c.VLAN]
		}

		row := []string{
			c.MAC,
			segment,
			DefaultFormat.LockToPort,
			DefaultFormat.Site,
			DefaultFormat.Building,
			DefaultFormat.Floor,
			DefaultFormat.AllowState,
			DefaultFormat.Description,
			DefaultFormat.StaticIP,
			DefaultFormat.IPAddress,
			DefaultFormat.PassiveIP,
		}
		if err := writer.Write(row); err != nil {
			return rows, err
		}
		rows++
	}

	writer.Flush()
	return rows, writer.Error()
}

// dedupKey builds the (MAC, VLAN) deduplication key. An absent VLAN is its
// own key value, distinct from every numeric VLAN.
func dedupKey(c meraki.Client) string {
	if c.VLAN == nil {
		return c.MAC + "|"
	}
	return fmt.Sprintf("%s|%d", c.MAC, *c.VLAN)
}
