package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/austinhawthorne/migrate-meraki2nile/pkg/meraki"
)

const wantHeader = "MAC Address (Required),Segment (Required for allow state)," +
	"Lock to Port (Optional),Site (Optional),Building (Optional),Floor (Optional)," +
	"Allow or Deny (Required),Description (Optional),Static IP (Optional)," +
	"IP Address (Optional),Passive IP (Optional)"

func vlanPtr(v int) *int { return &v }

func writeCSV(t *testing.T, clients []meraki.Client, mapping map[int]string) (int, []string) {
	t.Helper()
	var buf bytes.Buffer
	rows, err := WriteMigrationCSV(&buf, clients, mapping)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	return rows, lines
}

func TestWriteMigrationCSV_Header(t *testing.T) {
	rows, lines := writeCSV(t, nil, nil)
	assert.Equal(t, 0, rows)
	require.Len(t, lines, 1)
	assert.Equal(t, wantHeader, lines[0])
}

func TestWriteMigrationCSV_MappedSegmentRow(t *testing.T) {
	clients := []meraki.Client{
		{MAC: "00:11:22:33:44:55", VLAN: vlanPtr(10), Switchport: "1"},
	}
	rows, lines := writeCSV(t, clients, map[int]string{10: "Engineering"})
	assert.Equal(t, 1, rows)
	require.Len(t, lines, 2)
	assert.Equal(t, "00:11:22:33:44:55,Engineering,,,,,Allow,Imported from migration CSV,No,,No", lines[1])
}

func TestWriteMigrationCSV_SkipsWirelessClients(t *testing.T) {
	clients := []meraki.Client{
		{MAC: "00:00:00:00:00:01", VLAN: vlanPtr(10)},
		{MAC: "00:00:00:00:00:02", VLAN: vlanPtr(10), Switchport: "3"},
	}
	rows, lines := writeCSV(t, clients, map[int]string{10: "Corp"})
	assert.Equal(t, 1, rows)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "00:00:00:00:00:02,"))
}

func TestWriteMigrationCSV_DedupesByMACAndVLAN(t *testing.T) {
	clients := []meraki.Client{
		{MAC: "X", VLAN: vlanPtr(5), Switchport: "1", Description: "first"},
		{MAC: "X", VLAN: vlanPtr(5), Switchport: "2", Description: "second"},
		{MAC: "X", VLAN: vlanPtr(6), Switchport: "1"},
	}
	rows, lines := writeCSV(t, clients, map[int]string{5: "A", 6: "B"})
	assert.Equal(t, 2, rows, "same (MAC, VLAN) pair is written once, a different VLAN is not a duplicate")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "X,A,"), "first occurrence wins")
	assert.True(t, strings.HasPrefix(lines[2], "X,B,"))
}

func TestWriteMigrationCSV_AbsentVLANHasEmptySegment(t *testing.T) {
	clients := []meraki.Client{
		{MAC: "00:00:00:00:00:01", Switchport: "1"},
	}
	rows, lines := writeCSV(t, clients, map[int]string{10: "Corp"})
	assert.Equal(t, 1, rows)
	require.Len(t, lines, 2)
	assert.Equal(t, "00:00:00:00:00:01,,,,,,Allow,Imported from migration CSV,No,,No", lines[1])
}

func TestWriteMigrationCSV_UnmappedVLANHasEmptySegment(t *testing.T) {
	clients := []meraki.Client{
		{MAC: "00:00:00:00:00:01", VLAN: vlanPtr(99), Switchport: "1"},
	}
	_, lines := writeCSV(t, clients, map[int]string{10: "Corp"})
	require.Len(t, lines, 2)
	assert.Equal(t, "00:00:00:00:00:01,,,,,,Allow,Imported from migration CSV,No,,No", lines[1])
}

func TestWriteMigrationCSV_AbsentVLANDistinctFromNumericVLAN(t *testing.T) {
	clients := []meraki.Client{
		{MAC: "X", Switchport: "1"},
		{MAC: "X", VLAN: vlanPtr(5), Switchport: "1"},
	}
	rows, _ := writeCSV(t, clients, map[int]string{5: "A"})
	assert.Equal(t, 2, rows, "(X, none) and (X, 5) are different pairs")
}

func TestWriteMigrationCSV_PreservesRetrievalOrder(t *testing.T) {
	clients := []meraki.Client{
		{MAC: "cc", VLAN: vlanPtr(1), Switchport: "1"},
		{MAC: "aa", VLAN: vlanPtr(1), Switchport: "1"},
		{MAC: "bb", VLAN: vlanPtr(1), Switchport: "1"},
	}
	_, lines := writeCSV(t, clients, nil)
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "cc,"))
	assert.True(t, strings.HasPrefix(lines[2], "aa,"))
	assert.True(t, strings.HasPrefix(lines[3], "bb,"))
}

func TestWriteMigrationCSV_UniquePairsProperty(t *testing.T) {
	clients := []meraki.Client{
		{MAC: "a", VLAN: vlanPtr(1), Switchport: "1"},
		{MAC: "a", VLAN: vlanPtr(1), Switchport: "2"},
		{MAC: "a", VLAN: vlanPtr(2), Switchport: "1"},
		{MAC: "b", VLAN: vlanPtr(1), Switchport: "1"},
		{MAC: "b", Switchport: "1"},
		{MAC: "b", Switchport: "2"},
	}
	rows, lines := writeCSV(t, clients, nil)
	assert.Equal(t, 4, rows, "one row per distinct (MAC, VLAN) pair")
	require.Len(t, lines, 5)

	var macs []string
	for _, line := range lines[1:] {
		macs = append(macs, strings.SplitN(line, ",", 2)[0])
	}
	assert.Equal(t, []string{"a", "a", "b", "b"}, macs)
}
